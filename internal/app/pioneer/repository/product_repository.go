package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"productpioneer/internal/app/pioneer/entity"
	"productpioneer/pkg/logger"
	"productpioneer/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrProductNotFound = errors.New("product not found")
	// ErrAlreadyVoted возвращается когда email голосующего уже есть в votedBy
	ErrAlreadyVoted = errors.New("already voted")
)

const serviceName = "product-pioneer"

// Лимиты витрин главной страницы (из исходной выдачи)
const (
	featuredLimit = 4
	trendingLimit = 6
)

type productRepository struct {
	collection *mongo.Collection
}

// NewProductRepository создает новый репозиторий продуктов
// Создает индексы под основные запросы: владелец, статус, время создания
func NewProductRepository(db *mongo.Database) ProductRepository {
	collection := db.Collection("products")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "productOwner.email", Value: 1}},
			Options: options.Index().SetName("owner_email_idx"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "votes", Value: -1}},
			Options: options.Index().SetName("status_votes_idx"),
		},
		{
			Keys:    bson.D{{Key: "featured", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("featured_timestamp_idx"),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn().Err(err).Msg("failed to create product indexes")
	}

	return &productRepository{
		collection: collection,
	}
}

// Create вставляет продукт. Timestamp (unix millis) проставляется здесь,
// чтобы порядок по времени создания задавал сервер, а не клиент
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	product.Timestamp = time.Now().UnixMilli()

	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		return fmt.Errorf("failed to create product: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}

	return nil
}

// GetByID получает продукт по ID
func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	filter := bson.M{"_id": objectID}

	var product entity.Product
	err = r.collection.FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// GetByOwner получает все продукты владельца
// Использует индекс owner_email_idx
func (r *productRepository) GetByOwner(ctx context.Context, email string) ([]entity.Product, error) {
	filter := bson.M{"productOwner.email": email}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []entity.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// CountByOwner считает продукты владельца для проверки квоты unverified
func (r *productRepository) CountByOwner(ctx context.Context, email string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"productOwner.email": email})
	if err != nil {
		return 0, fmt.Errorf("failed to count products by owner: %w", err)
	}
	return count, nil
}

// Update обновляет продукт. В $set попадают только разрешенные поля
// из DTO - статус, голоса и жалобы через этот путь менять нельзя
func (r *productRepository) Update(ctx context.Context, id string, req *entity.UpdateProductRequest) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Image != nil {
		set["image"] = *req.Image
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.ExternalLink != nil {
		set["externalLink"] = *req.ExternalLink
	}
	if req.Tags != nil {
		set["tags"] = req.Tags
	}

	if len(set) == 0 {
		return nil
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return fmt.Errorf("failed to update product: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete удаляет продукт
func (r *productRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrProductNotFound
	}

	return nil
}

// GetAllRanked возвращает все продукты, Pending впереди остальных.
// Внутри каждой части порядок хранения не меняется (стабильной сортировки
// по вторичному ключу в исходной выдаче не было)
func (r *productRepository) GetAllRanked(ctx context.Context) ([]entity.Product, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpAggregate, "products")
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.M{
			"isPending": bson.M{
				"$cond": bson.M{
					"if":   bson.M{"$eq": bson.A{"$status", entity.StatusPending}},
					"then": 1,
					"else": 0,
				},
			},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "isPending", Value: -1}}}},
		{{Key: "$project", Value: bson.M{"isPending": 0}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpAggregate)
		return nil, fmt.Errorf("failed to aggregate products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []entity.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// UpdateStatus проставляет решение модератора
func (r *productRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return fmt.Errorf("failed to update product status: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Vote атомарно засчитывает голос. Проверка "еще не голосовал" и
// push+inc выполняются одним условным обновлением: фильтр с $ne
// отсекает повторный голос даже при конкурентных запросах одного voter
func (r *productRepository) Vote(ctx context.Context, id string, voterEmail string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	filter := bson.M{
		"_id":     objectID,
		"votedBy": bson.M{"$ne": voterEmail},
	}
	update := bson.M{
		"$push": bson.M{"votedBy": voterEmail},
		"$inc":  bson.M{"votes": 1},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return fmt.Errorf("failed to vote for product: %w", err)
	}

	if result.MatchedCount == 0 {
		// Либо продукта нет, либо голос уже засчитан - различаем чтением
		err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Err()
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrProductNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check product: %w", err)
		}
		return ErrAlreadyVoted
	}

	return nil
}

// Report увеличивает счетчик жалоб. Без дедупликации по отправителю
// и без верхней границы - повторные жалобы все считаются
func (r *productRepository) Report(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$inc": bson.M{"reported": 1}},
	)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return fmt.Errorf("failed to report product: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}

	return nil
}

// GetReported возвращает продукты, на которые хоть раз жаловались.
// Фильтр по существованию поля: продукт со сброшенным в 0 счетчиком
// остается в выборке
func (r *productRepository) GetReported(ctx context.Context) ([]entity.Product, error) {
	filter := bson.M{"reported": bson.M{"$exists": true}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find reported products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []entity.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// MakeFeatured помечает продукт как featured. Только обновление:
// несуществующий ID дает ErrProductNotFound, новая запись не создается
func (r *productRepository) MakeFeatured(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"featured": true}},
	)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return fmt.Errorf("failed to make product featured: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}

	return nil
}

// GetFeatured возвращает 4 последних featured продукта
func (r *productRepository) GetFeatured(ctx context.Context) ([]entity.Product, error) {
	filter := bson.M{"featured": true}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(featuredLimit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find featured products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []entity.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// GetTrending возвращает 6 принятых продуктов с наибольшим числом голосов
func (r *productRepository) GetTrending(ctx context.Context) ([]entity.Product, error) {
	filter := bson.M{"status": entity.StatusAccepted}
	opts := options.Find().
		SetSort(bson.D{{Key: "votes", Value: -1}}).
		SetLimit(trendingLimit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find trending products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []entity.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// Search возвращает страницу принятых продуктов.
// page 1-индексирован на интерфейсе, skip = (page-1)*size
func (r *productRepository) Search(ctx context.Context, page, size int64, term string) ([]entity.Product, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpFind, "products")
	defer timer.ObserveDuration()

	filter := searchFilter(term)
	opts := options.Find().
		SetSkip((page - 1) * size).
		SetLimit(size)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpFind)
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []entity.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// CountSearch считает принятые продукты под тем же фильтром что и Search,
// без пагинации - клиент делит на size сам
func (r *productRepository) CountSearch(ctx context.Context, term string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, searchFilter(term))
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// Count возвращает общее число продуктов для статистики
func (r *productRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// searchFilter строит фильтр витрины: только Accepted, при наличии
// поискового запроса - регистронезависимое вхождение в текст любого тега
func searchFilter(term string) bson.M {
	filter := bson.M{"status": entity.StatusAccepted}
	if term != "" {
		pattern := regexp.QuoteMeta(strings.ToLower(term))
		filter["tags.text"] = bson.M{
			"$in": bson.A{primitive.Regex{Pattern: pattern, Options: "i"}},
		}
	}
	return filter
}
