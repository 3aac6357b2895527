package service

import (
	"context"
	"fmt"

	"productpioneer/internal/app/pioneer/entity"
	"productpioneer/internal/app/pioneer/repository"
)

// StatsService собирает сводные счетчики для админской панели
type StatsService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
}

// NewStatsService создает новый сервис статистики
func NewStatsService(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
) *StatsService {
	return &StatsService{
		userRepo:    userRepo,
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
	}
}

// GetStatistics возвращает количество пользователей, продуктов и отзывов
func (s *StatsService) GetStatistics(ctx context.Context) (*entity.Statistics, error) {
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	totalProducts, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	totalReviews, err := s.reviewRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	return &entity.Statistics{
		TotalUsers:    totalUsers,
		TotalProducts: totalProducts,
		TotalReviews:  totalReviews,
	}, nil
}
