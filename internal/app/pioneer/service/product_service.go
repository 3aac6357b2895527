package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"productpioneer/internal/app/pioneer/entity"
	"productpioneer/internal/app/pioneer/repository"
	"productpioneer/internal/app/pioneer/util"
	"productpioneer/pkg/logger"
	"productpioneer/pkg/metrics"
)

var (
	ErrProductNotFound = errors.New("product not found")
	// ErrAlreadyVoted - повторный голос одного email за один продукт
	ErrAlreadyVoted = errors.New("already voted")
	// ErrQuotaExceeded - unverified владелец пытается добавить второй продукт
	ErrQuotaExceeded = errors.New("submission quota exceeded")
	// ErrInvalidID - идентификатор в пути не является валидным ObjectID
	ErrInvalidID = errors.New("invalid id")
)

// Типы событий жизненного цикла продукта
const (
	EventProductCreated       = "PRODUCT_CREATED"
	EventProductStatusUpdated = "PRODUCT_STATUS_UPDATED"
)

// Размер страницы поиска по умолчанию, если клиент не передал size
const defaultPageSize = 20

// ProductService обрабатывает бизнес-логику продуктов
// Координирует репозитории, квоту membership и Kafka producer
type ProductService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	publisher   util.MessagePublisher
}

// NewProductService создает новый сервис продуктов с внедрением зависимостей
func NewProductService(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	publisher util.MessagePublisher,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

// CreateProduct добавляет продукт от имени владельца из токена.
// Квота: unverified владелец с хотя бы одним продуктом получает
// ErrQuotaExceeded. Квота проверяется только здесь - после апгрейда
// membership существующие продукты не пересчитываются
func (s *ProductService) CreateProduct(ctx context.Context, ownerEmail string, req *entity.CreateProductRequest) (*entity.Product, error) {
	owner, err := s.userRepo.GetByEmail(ctx, ownerEmail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}

	if owner.Membership == entity.MembershipUnverified {
		count, err := s.productRepo.CountByOwner(ctx, ownerEmail)
		if err != nil {
			return nil, fmt.Errorf("failed to count owner products: %w", err)
		}
		if count > 0 {
			return nil, ErrQuotaExceeded
		}
	}

	ownerName := req.OwnerName
	if ownerName == "" {
		ownerName = owner.Name
	}
	ownerImage := req.OwnerImage
	if ownerImage == "" {
		ownerImage = owner.Photo
	}

	product := &entity.Product{
		Name:         req.Name,
		Image:        req.Image,
		Description:  req.Description,
		ExternalLink: req.ExternalLink,
		Tags:         req.Tags,
		ProductOwner: entity.ProductOwner{
			Name:  ownerName,
			Email: ownerEmail,
			Image: ownerImage,
		},
		Status: entity.StatusPending,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	metrics.ProductsSubmitted.Inc()

	s.publishProductEvent(ctx, entity.ProductEvent{
		EventType:  EventProductCreated,
		ProductID:  product.ID.Hex(),
		OwnerEmail: ownerEmail,
		Status:     product.Status,
		Timestamp:  time.Now().UnixMilli(),
	})

	return product, nil
}

// GetOwnProducts получает продукты владельца. Email всегда берется из
// токена - чужие продукты через эту операцию не видны
func (s *ProductService) GetOwnProducts(ctx context.Context, ownerEmail string) ([]entity.Product, error) {
	products, err := s.productRepo.GetByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	return products, nil
}

// GetProduct получает продукт по ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		if errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrInvalidID
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// UpdateProduct обновляет разрешенные поля продукта
func (s *ProductService) UpdateProduct(ctx context.Context, id string, req *entity.UpdateProductRequest) error {
	if err := s.productRepo.Update(ctx, id, req); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		if errors.Is(err, repository.ErrInvalidID) {
			return ErrInvalidID
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

// DeleteProduct удаляет продукт. Отзывы на него остаются
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		if errors.Is(err, repository.ErrInvalidID) {
			return ErrInvalidID
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// GetAllRanked возвращает очередь модерации: Pending впереди остальных
func (s *ProductService) GetAllRanked(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.GetAllRanked(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get ranked products: %w", err)
	}

	return products, nil
}

// UpdateStatus проставляет решение модератора и публикует событие
func (s *ProductService) UpdateStatus(ctx context.Context, id string, req *entity.UpdateStatusRequest) error {
	if err := s.productRepo.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		if errors.Is(err, repository.ErrInvalidID) {
			return ErrInvalidID
		}
		return fmt.Errorf("failed to update status: %w", err)
	}

	metrics.ProductsByStatusUpdates.WithLabelValues(req.Status).Inc()

	s.publishProductEvent(ctx, entity.ProductEvent{
		EventType: EventProductStatusUpdated,
		ProductID: id,
		Status:    req.Status,
		Timestamp: time.Now().UnixMilli(),
	})

	return nil
}

// Vote засчитывает голос за продукт. Повторный голос того же email
// дает ErrAlreadyVoted без изменения счетчиков
func (s *ProductService) Vote(ctx context.Context, id string, voterEmail string) error {
	if err := s.productRepo.Vote(ctx, id, voterEmail); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		if errors.Is(err, repository.ErrAlreadyVoted) {
			return ErrAlreadyVoted
		}
		if errors.Is(err, repository.ErrInvalidID) {
			return ErrInvalidID
		}
		return fmt.Errorf("failed to vote: %w", err)
	}

	metrics.VotesCast.Inc()
	return nil
}

// Report фиксирует жалобу на продукт
func (s *ProductService) Report(ctx context.Context, id string) error {
	if err := s.productRepo.Report(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		if errors.Is(err, repository.ErrInvalidID) {
			return ErrInvalidID
		}
		return fmt.Errorf("failed to report product: %w", err)
	}

	metrics.ReportsFiled.Inc()
	return nil
}

// GetReported возвращает продукты с жалобами для панели модератора
func (s *ProductService) GetReported(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.GetReported(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get reported products: %w", err)
	}

	return products, nil
}

// MakeFeatured помечает продукт как featured независимо от статуса модерации
func (s *ProductService) MakeFeatured(ctx context.Context, id string) error {
	if err := s.productRepo.MakeFeatured(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		if errors.Is(err, repository.ErrInvalidID) {
			return ErrInvalidID
		}
		return fmt.Errorf("failed to make product featured: %w", err)
	}

	return nil
}

// GetFeatured возвращает витрину featured продуктов
func (s *ProductService) GetFeatured(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.GetFeatured(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get featured products: %w", err)
	}

	return products, nil
}

// GetTrending возвращает витрину самых популярных принятых продуктов
func (s *ProductService) GetTrending(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.GetTrending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get trending products: %w", err)
	}

	return products, nil
}

// SearchProducts возвращает страницу принятых продуктов по поисковому
// запросу. Некорректные page/size приводятся к рабочим значениям
func (s *ProductService) SearchProducts(ctx context.Context, page, size int64, term string) ([]entity.Product, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}

	products, err := s.productRepo.Search(ctx, page, size, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return products, nil
}

// CountProducts считает принятые продукты под текущим фильтром поиска
func (s *ProductService) CountProducts(ctx context.Context, term string) (int64, error) {
	count, err := s.productRepo.CountSearch(ctx, term)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}

// publishProductEvent отправляет событие в Kafka.
// Ошибка логируется и не прерывает запрос - запись в MongoDB уже сделана
func (s *ProductService) publishProductEvent(ctx context.Context, event entity.ProductEvent) {
	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", event.EventType).Msg("failed to marshal product event")
		return
	}

	if err := s.publisher.PublishMessage(ctx, event.ProductID, eventData); err != nil {
		logger.Error().Err(err).Str("event_type", event.EventType).Msg("failed to publish product event")
	}
}
