package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"productpioneer/internal/app/pioneer/entity"
	"productpioneer/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository создает новый репозиторий пользователей
// Автоматически создает индекс по email - все выборки идут по этому ключу
func NewUserRepository(db *mongo.Database) UserRepository {
	collection := db.Collection("users")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "email", Value: 1},
		},
		Options: options.Index().SetName("email_idx").SetUnique(true),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		// Логируем ошибку, но не прерываем работу - индекс может уже существовать
		logger.Warn().Err(err).Msg("failed to create index on email")
	}

	return &userRepository{
		collection: collection,
	}
}

// Create добавляет пользователя. Идемпотентность по email: если запись
// уже есть, возвращает ErrUserAlreadyExists и ничего не вставляет
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	filter := bson.M{"email": user.Email}

	err := r.collection.FindOne(ctx, filter).Err()
	if err == nil {
		return ErrUserAlreadyExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		// Уникальный индекс закрывает гонку двух одновременных регистраций
		if mongo.IsDuplicateKeyError(err) {
			return ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}

	return nil
}

// GetByEmail получает пользователя по email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	filter := bson.M{"email": email}

	var user entity.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetAll получает всех пользователей (только для админской панели)
func (r *userRepository) GetAll(ctx context.Context) ([]entity.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []entity.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	return users, nil
}

// UpdateRole меняет роль пользователя. Отсутствие записи не считается
// ошибкой - исходная система отвечала успехом с matchedCount 0
func (r *userRepository) UpdateRole(ctx context.Context, email string, role string) error {
	filter := bson.M{"email": email}
	update := bson.M{"$set": bson.M{"role": role}}

	if _, err := r.collection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}

	return nil
}

// UpdateMembership меняет membership пользователя после оплаты подписки
func (r *userRepository) UpdateMembership(ctx context.Context, email string, membership string) error {
	filter := bson.M{"email": email}
	update := bson.M{"$set": bson.M{"membership": membership}}

	if _, err := r.collection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to update user membership: %w", err)
	}

	return nil
}

// Delete удаляет пользователя по email
func (r *userRepository) Delete(ctx context.Context, email string) error {
	filter := bson.M{"email": email}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Count возвращает общее число пользователей для статистики
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
