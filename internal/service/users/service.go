package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
	sessionStore "github.com/m04kA/SMC-EventLedger/internal/infra/storage/session"
	userRepo "github.com/m04kA/SMC-EventLedger/internal/infra/storage/user"
	"github.com/m04kA/SMC-EventLedger/internal/service/users/models"
)

// bcrypt принимает не более 72 байт пароля
const maxPasswordBytes = 72

// Service сервис пользователей и сессий
type Service struct {
	userRepo          UserRepository
	sessions          SessionStore
	minPasswordLength int
	bcryptCost        int
	dummyHash         []byte
	logger            Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(
	userRepo UserRepository,
	sessions SessionStore,
	minPasswordLength int,
	bcryptCost int,
	logger Logger,
) *Service {
	if minPasswordLength <= 0 {
		minPasswordLength = domain.DefaultMinPasswordLength
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	// Хеш для сравнения при неизвестном email, чтобы ответ занимал столько же времени
	dummyHash, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)

	return &Service{
		userRepo:          userRepo,
		sessions:          sessions,
		minPasswordLength: minPasswordLength,
		bcryptCost:        bcryptCost,
		dummyHash:         dummyHash,
		logger:            logger,
	}
}

// Register регистрирует пользователя
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, error) {
	email := domain.NormalizeEmail(req.Email)
	s.logger.Info("Register: registering user email=%s", email)

	if err := s.validateRegistration(req.Name, email, req.Password); err != nil {
		s.logger.Warn("Register: validation failed for email=%s: %v", email, err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			s.logger.Warn("Register: email=%s already registered", email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: repository error: %v", err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: successfully registered user id=%s", user.ID)
	return models.FromDomainUser(user), nil
}

// Login проверяет пароль и открывает сессию
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.SessionResponse, error) {
	email := domain.NormalizeEmail(req.Email)
	s.logger.Info("Login: login attempt email=%s", email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
			s.logger.Warn("Login: unknown email=%s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for user id=%s", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		s.logger.Error("Login: failed to create session for user id=%s: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Login - create session: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user id=%s logged in", user.ID)
	return &models.SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      *models.FromDomainUser(user),
	}, nil
}

// Logout закрывает сессию
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		s.logger.Error("Logout: failed to delete session: %v", err)
		return fmt.Errorf("%w: Logout - delete session: %v", ErrInternal, err)
	}
	return nil
}

// Authenticate возвращает ID пользователя по токену сессии
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", ErrUnauthorized
	}

	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			return "", ErrUnauthorized
		}
		s.logger.Error("Authenticate: failed to resolve session: %v", err)
		return "", fmt.Errorf("%w: Authenticate - resolve session: %v", ErrInternal, err)
	}

	return userID, nil
}

// Me возвращает данные текущего пользователя
func (s *Service) Me(ctx context.Context, userID string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Me: user id=%s not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("Me: repository error for user id=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: Me - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainUser(user), nil
}

func (s *Service) validateRegistration(name, email, password string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxTextFieldLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxTextFieldLength)
	}

	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}

	if utf8.RuneCountInString(password) < s.minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, s.minPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, maxPasswordBytes)
	}

	return nil
}
