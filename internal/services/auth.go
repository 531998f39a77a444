package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/config"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"

	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	SignUp(ctx context.Context, payload dto.SignUpDTO) (*entities.User, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, error)
	GetUserByID(ctx context.Context, userID string) (*entities.User, error)
}

// AuthService ведёт учёт неудачных попыток входа в Redis. Без Redis
// (cacheRepo == nil) блокировка по попыткам отключена.
type AuthService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	logger    *zap.Logger
	cfg       *config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		cfg:       cfg,
	}
}

func (s *AuthService) SignUp(ctx context.Context, payload dto.SignUpDTO) (*entities.User, error) {
	_, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: пользователь с email %s", apperrors.ErrConflict, payload.Email)
	case !errors.Is(err, apperrors.ErrUserNotFound):
		return nil, err
	}

	hash, err := hashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.CreateUser(ctx, entities.User{
		Email:        payload.Email,
		DisplayName:  payload.DisplayName,
		PasswordHash: hash,
	})
	if err != nil {
		s.logger.Error("Ошибка при регистрации пользователя", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Пользователь зарегистрирован", zap.String("userID", user.ID))
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		if apperrors.IsNotConfigured(err) {
			return nil, err
		}
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := s.checkLockout(ctx, user.ID); err != nil {
		return nil, err
	}
	if err := checkPassword(user.PasswordHash, payload.Password); err != nil {
		s.handleFailedLoginAttempt(ctx, user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}
	s.resetLoginAttempts(ctx, user.ID)
	return user, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*entities.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		s.logger.Warn("GetUserByID: не удалось найти пользователя", zap.String("userID", userID), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (s *AuthService) checkLockout(ctx context.Context, userID string) error {
	if s.cacheRepo == nil {
		return nil
	}
	// Если ключ существует — аккаунт заблокирован
	if _, err := s.cacheRepo.Get(ctx, fmt.Sprintf(constants.CacheKeyLockout, userID)); err == nil {
		return apperrors.ErrAccountLocked
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, userID string) {
	if s.cacheRepo == nil {
		return
	}
	attemptsKey := fmt.Sprintf(constants.CacheKeyLoginAttempts, userID)
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		s.logger.Warn("Не удалось увеличить счётчик попыток входа", zap.String("userID", userID), zap.Error(err))
		return
	}
	if attempts == 1 {
		_, _ = s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration)
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		lockoutKey := fmt.Sprintf(constants.CacheKeyLockout, userID)
		_ = s.cacheRepo.Set(ctx, lockoutKey, strconv.FormatInt(attempts, 10), s.cfg.LockoutDuration)
		_ = s.cacheRepo.Del(ctx, attemptsKey)
		s.logger.Warn("Аккаунт временно заблокирован", zap.String("userID", userID), zap.Int64("attempts", attempts))
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, userID string) {
	if s.cacheRepo == nil {
		return
	}
	_ = s.cacheRepo.Del(ctx,
		fmt.Sprintf(constants.CacheKeyLoginAttempts, userID),
		fmt.Sprintf(constants.CacheKeyLockout, userID),
	)
}
