package repository

import (
	"context"
	"errors"

	"productpioneer/internal/app/pioneer/entity"
)

// ErrInvalidID возвращается когда идентификатор не парсится в ObjectID
var ErrInvalidID = errors.New("invalid id")

// UserRepository определяет методы каталога пользователей в MongoDB
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)
	UpdateRole(ctx context.Context, email string, role string) error
	UpdateMembership(ctx context.Context, email string, membership string) error
	Delete(ctx context.Context, email string) error
	Count(ctx context.Context) (int64, error)
}

// ProductRepository определяет методы хранилища продуктов в MongoDB
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByOwner(ctx context.Context, email string) ([]entity.Product, error)
	CountByOwner(ctx context.Context, email string) (int64, error)
	Update(ctx context.Context, id string, req *entity.UpdateProductRequest) error
	Delete(ctx context.Context, id string) error
	GetAllRanked(ctx context.Context) ([]entity.Product, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	Vote(ctx context.Context, id string, voterEmail string) error
	Report(ctx context.Context, id string) error
	GetReported(ctx context.Context) ([]entity.Product, error)
	MakeFeatured(ctx context.Context, id string) error
	GetFeatured(ctx context.Context) ([]entity.Product, error)
	GetTrending(ctx context.Context) ([]entity.Product, error)
	Search(ctx context.Context, page, size int64, term string) ([]entity.Product, error)
	CountSearch(ctx context.Context, term string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// ReviewRepository определяет методы хранилища отзывов в MongoDB
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByProductID(ctx context.Context, productID string) ([]entity.Review, error)
	Count(ctx context.Context) (int64, error)
}

// CouponRepository определяет методы хранилища промокодов в MongoDB
type CouponRepository interface {
	Create(ctx context.Context, coupon *entity.Coupon) error
	GetAll(ctx context.Context) ([]entity.Coupon, error)
	GetByCode(ctx context.Context, code string) (*entity.Coupon, error)
	Update(ctx context.Context, id string, req *entity.UpdateCouponRequest) error
	Delete(ctx context.Context, id string) error
}
