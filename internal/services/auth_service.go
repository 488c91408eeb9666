package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/maynagashev/cinecatalog/internal/repository"
	"github.com/maynagashev/cinecatalog/models"
)

// AuthService определяет интерфейс для сервиса аутентификации.
type AuthService interface {
	// Register создает пользователя и возвращает его вместе с токеном.
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error)
	// Login проверяет учетные данные и возвращает пользователя с новым токеном.
	Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error)
}

// Убедимся, что authService удовлетворяет интерфейсу AuthService.
var _ AuthService = (*authService)(nil)

type authService struct {
	userRepo repository.UserRepository
	hasher   Hasher
	tokens   *TokenManager
}

// NewAuthService создает новый экземпляр сервиса аутентификации.
func NewAuthService(userRepo repository.UserRepository, hasher Hasher, tokens *TokenManager) AuthService {
	return &authService{userRepo: userRepo, hasher: hasher, tokens: tokens}
}

// Register регистрирует нового пользователя.
func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error) {
	if err := validateRequest(req); err != nil {
		return nil, "", err
	}

	// Явная проверка до вставки, чтобы вернуть клиенту понятную ошибку
	_, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		log.Warnf("[AuthService] Попытка регистрации с занятым email: %s", req.Email)
		return nil, "", ErrEmailTaken
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, "", errInternal("проверка email", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, "", &ValidationError{Field: "password", Message: "password is too long"}
		}
		return nil, "", errInternal("хеширование пароля", err)
	}

	user, err := s.userRepo.CreateUser(ctx, &models.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", errInternal("создание пользователя", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", errInternal("выдача токена", err)
	}

	user.PasswordHash = ""
	log.WithField("user_id", user.ID).Info("[AuthService] Пользователь успешно зарегистрирован")
	return user, token, nil
}

// Login аутентифицирует пользователя и возвращает JWT токен.
func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	if err := validateRequest(req); err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Время ответа не должно выдавать, зарегистрирован ли email
			s.hasher.VerifyDummy(req.Password)
			log.Infof("[AuthService] Попытка входа несуществующего пользователя: %s", req.Email)
			return nil, "", ErrInvalidCredentials // Общая ошибка для несуществующего пользователя и неверного пароля
		}
		return nil, "", errInternal("поиск пользователя", err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		log.WithField("user_id", user.ID).Info("[AuthService] Неверный пароль")
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", errInternal("выдача токена", err)
	}

	user.PasswordHash = ""
	log.WithField("user_id", user.ID).Info("[AuthService] Пользователь успешно аутентифицирован")
	return user, token, nil
}
