package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"productpioneer/internal/app/pioneer/entity"
	"productpioneer/internal/app/pioneer/repository"
	"productpioneer/internal/app/pioneer/util"
	"productpioneer/pkg/logger"
	"productpioneer/pkg/metrics"
)

const EventReviewCreated = "REVIEW_CREATED"

// ReviewService обрабатывает бизнес-логику отзывов
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	publisher  util.MessagePublisher
}

// NewReviewService создает новый сервис отзывов с внедрением зависимостей
func NewReviewService(reviewRepo repository.ReviewRepository, publisher util.MessagePublisher) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		publisher:  publisher,
	}
}

// CreateReview создает отзыв и публикует событие REVIEW_CREATED.
// Существование продукта не проверяется (поведение исходной системы)
func (s *ReviewService) CreateReview(ctx context.Context, req *entity.CreateReviewRequest) (*entity.Review, error) {
	review := &entity.Review{
		ProductID:   req.ProductID,
		Rating:      req.Rating,
		Description: req.Description,
		Reviewer: entity.Reviewer{
			Name:  req.ReviewerName,
			Email: req.ReviewerEmail,
			Image: req.ReviewerImage,
		},
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	metrics.ReviewsCreated.Inc()

	event := entity.ProductEvent{
		EventType: EventReviewCreated,
		ProductID: review.ProductID,
		Timestamp: time.Now().UnixMilli(),
	}
	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal review event")
		return review, nil
	}
	if err := s.publisher.PublishMessage(ctx, review.ProductID, eventData); err != nil {
		// Отзыв уже создан, проблемы с Kafka не критичны
		logger.Error().Err(err).Msg("failed to publish review event")
	}

	return review, nil
}

// GetReviewsByProduct получает все отзывы по ID продукта
func (s *ReviewService) GetReviewsByProduct(ctx context.Context, productID string) ([]entity.Review, error) {
	reviews, err := s.reviewRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	return reviews, nil
}
