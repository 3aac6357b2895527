package repository

import (
	"context"
	"errors"
	"fmt"

	"productpioneer/internal/app/pioneer/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrCouponNotFound = errors.New("coupon not found")
)

type couponRepository struct {
	collection *mongo.Collection
}

// NewCouponRepository создает новый репозиторий промокодов
func NewCouponRepository(db *mongo.Database) CouponRepository {
	return &couponRepository{
		collection: db.Collection("coupons"),
	}
}

// Create создает новый промокод. Уникальность couponCode не
// контролируется - при дубликатах выигрывает первый найденный
func (r *couponRepository) Create(ctx context.Context, coupon *entity.Coupon) error {
	result, err := r.collection.InsertOne(ctx, coupon)
	if err != nil {
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		coupon.ID = oid
	}

	return nil
}

// GetAll получает все промокоды
func (r *couponRepository) GetAll(ctx context.Context) ([]entity.Coupon, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find coupons: %w", err)
	}
	defer cursor.Close(ctx)

	var coupons []entity.Coupon
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, fmt.Errorf("failed to decode coupons: %w", err)
	}

	return coupons, nil
}

// GetByCode получает промокод по коду
func (r *couponRepository) GetByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	filter := bson.M{"couponCode": code}

	var coupon entity.Coupon
	err := r.collection.FindOne(ctx, filter).Decode(&coupon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return &coupon, nil
}

// Update обновляет промокод, в $set попадают только переданные поля
func (r *couponRepository) Update(ctx context.Context, id string, req *entity.UpdateCouponRequest) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	set := bson.M{}
	if req.CouponCode != nil {
		set["couponCode"] = *req.CouponCode
	}
	if req.DiscountPercent != nil {
		set["discountPercent"] = *req.DiscountPercent
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.ExpiryDate != nil {
		set["expiryDate"] = *req.ExpiryDate
	}

	if len(set) == 0 {
		return nil
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update coupon: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrCouponNotFound
	}

	return nil
}

// Delete удаляет промокод
func (r *couponRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrCouponNotFound
	}

	return nil
}
