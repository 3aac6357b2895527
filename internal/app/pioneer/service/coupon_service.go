package service

import (
	"context"
	"errors"
	"fmt"

	"productpioneer/internal/app/pioneer/entity"
	"productpioneer/internal/app/pioneer/repository"
)

var (
	// ErrInvalidCoupon - промокод не найден по коду
	ErrInvalidCoupon  = errors.New("invalid coupon")
	ErrCouponNotFound = errors.New("coupon not found")
)

// CouponService обрабатывает бизнес-логику промокодов
type CouponService struct {
	couponRepo repository.CouponRepository
}

// NewCouponService создает новый сервис промокодов
func NewCouponService(couponRepo repository.CouponRepository) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
	}
}

// CreateCoupon создает новый промокод
func (s *CouponService) CreateCoupon(ctx context.Context, req *entity.CreateCouponRequest) (*entity.Coupon, error) {
	coupon := &entity.Coupon{
		CouponCode:      req.CouponCode,
		DiscountPercent: req.DiscountPercent,
		Description:     req.Description,
		ExpiryDate:      req.ExpiryDate,
	}

	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	return coupon, nil
}

// GetAllCoupons получает все промокоды
func (s *CouponService) GetAllCoupons(ctx context.Context) ([]entity.Coupon, error) {
	coupons, err := s.couponRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get coupons: %w", err)
	}

	return coupons, nil
}

// UpdateCoupon обновляет переданные поля промокода
func (s *CouponService) UpdateCoupon(ctx context.Context, id string, req *entity.UpdateCouponRequest) error {
	if err := s.couponRepo.Update(ctx, id, req); err != nil {
		if errors.Is(err, repository.ErrCouponNotFound) {
			return ErrCouponNotFound
		}
		if errors.Is(err, repository.ErrInvalidID) {
			return ErrInvalidID
		}
		return fmt.Errorf("failed to update coupon: %w", err)
	}

	return nil
}

// DeleteCoupon удаляет промокод
func (s *CouponService) DeleteCoupon(ctx context.Context, id string) error {
	if err := s.couponRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCouponNotFound) {
			return ErrCouponNotFound
		}
		if errors.Is(err, repository.ErrInvalidID) {
			return ErrInvalidID
		}
		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	return nil
}

// GetDiscount возвращает процент скидки по коду.
// Неизвестный код - ErrInvalidCoupon
func (s *CouponService) GetDiscount(ctx context.Context, code string) (int, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrCouponNotFound) {
			return 0, ErrInvalidCoupon
		}
		return 0, fmt.Errorf("failed to get coupon: %w", err)
	}

	return coupon.DiscountPercent, nil
}
