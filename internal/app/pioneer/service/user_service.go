package service

import (
	"context"
	"errors"
	"fmt"

	"productpioneer/internal/app/pioneer/entity"
	"productpioneer/internal/app/pioneer/repository"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserService обрабатывает бизнес-логику каталога пользователей
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService создает новый сервис пользователей с внедрением зависимостей
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUser регистрирует пользователя при первом входе.
// Идемпотентность по email: повторный вызов возвращает ErrUserAlreadyExists,
// дубликат не создается
func (s *UserService) CreateUser(ctx context.Context, req *entity.CreateUserRequest) (*entity.User, error) {
	membership := req.Membership
	if membership == "" {
		membership = entity.MembershipUnverified
	}

	user := &entity.User{
		Name:       req.Name,
		Email:      req.Email,
		Photo:      req.Photo,
		Membership: membership,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUser получает пользователя по email
func (s *UserService) GetUser(ctx context.Context, email string) (*entity.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetAllUsers получает всех пользователей (админская панель)
func (s *UserService) GetAllUsers(ctx context.Context) ([]entity.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	return users, nil
}

// UpdateRole меняет роль пользователя. Несуществующий email - no-op
func (s *UserService) UpdateRole(ctx context.Context, email string, req *entity.UpdateUserRoleRequest) error {
	if err := s.userRepo.UpdateRole(ctx, email, req.Role); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}

	return nil
}

// UpdateMembership меняет membership после оплаты подписки
func (s *UserService) UpdateMembership(ctx context.Context, email string, req *entity.UpdateMembershipRequest) error {
	if err := s.userRepo.UpdateMembership(ctx, email, req.Membership); err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}

	return nil
}

// DeleteUser удаляет пользователя по email
func (s *UserService) DeleteUser(ctx context.Context, email string) error {
	if err := s.userRepo.Delete(ctx, email); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
