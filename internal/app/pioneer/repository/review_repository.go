package repository

import (
	"context"
	"fmt"
	"time"

	"productpioneer/internal/app/pioneer/entity"
	"productpioneer/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type reviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository создает новый репозиторий отзывов
// Автоматически создает индекс по productId для быстрой выборки
func NewReviewRepository(db *mongo.Database) ReviewRepository {
	collection := db.Collection("reviews")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "productId", Value: 1},
		},
		Options: options.Index().SetName("product_id_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		logger.Warn().Err(err).Msg("failed to create index on productId")
	}

	return &reviewRepository{
		collection: collection,
	}
}

// Create создает новый отзыв. Существование продукта не проверяется:
// отзывы переживают удаление продукта (поведение исходной системы)
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	review.Timestamp = time.Now().UnixMilli()

	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}

	return nil
}

// GetByProductID получает все отзывы по ID продукта
func (r *reviewRepository) GetByProductID(ctx context.Context, productID string) ([]entity.Review, error) {
	filter := bson.M{"productId": productID}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []entity.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return reviews, nil
}

// Count возвращает общее число отзывов для статистики
func (r *reviewRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}
