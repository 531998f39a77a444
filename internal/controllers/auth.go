package controllers

import (
	"net/http"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/services"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthController struct {
	authService services.AuthServiceInterface
	jwtSvc      service.JWTService
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, jwtSvc service.JWTService, logger *zap.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		jwtSvc:      jwtSvc,
		logger:      logger,
	}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *AuthController) SignUp(c echo.Context) error {
	var payload dto.SignUpDTO
	if err := bindPayload(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	user, err := ctrl.authService.SignUp(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, utils.WrapError(err, "Не удалось зарегистрироваться", nil))
	}
	return ctrl.generateTokensAndRespond(c, user, "Регистрация прошла успешно", http.StatusCreated)
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := bindPayload(c, &payload); err != nil {
		ctrl.logger.Error("Login: ошибка привязки данных", zap.Error(err))
		return ctrl.errorResponse(c, err)
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	user, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		ctrl.logger.Warn("Login: ошибка авторизации", zap.String("email", payload.Email), zap.Error(err))
		return ctrl.errorResponse(c, utils.WrapError(err, "Не удалось войти", nil))
	}
	return ctrl.generateTokensAndRespond(c, user, "Авторизация прошла успешно", http.StatusOK)
}

func (ctrl *AuthController) RefreshToken(c echo.Context) error {
	var payload dto.RefreshTokenDTO
	if err := bindPayload(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	claims, err := ctrl.jwtSvc.ValidateToken(payload.RefreshToken)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	if !claims.IsRefreshToken {
		return ctrl.errorResponse(c, apperrors.ErrTokenIsNotRefresh)
	}

	user, err := ctrl.authService.GetUserByID(c.Request().Context(), claims.UserID)
	if err != nil {
		return ctrl.errorResponse(c, utils.WrapError(err, "Не удалось обновить токены", nil))
	}
	return ctrl.generateTokensAndRespond(c, user, "Токены успешно обновлены", http.StatusOK)
}

// Me - текущая сессия.
func (ctrl *AuthController) Me(c echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(c.Request().Context())
	if err != nil {
		ctrl.logger.Error("Не удалось получить userID из контекста в защищенном маршруте")
		return ctrl.errorResponse(c, err)
	}
	user, err := ctrl.authService.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return ctrl.errorResponse(c, utils.WrapError(err, "Не удалось получить пользователя", nil))
	}
	return utils.SuccessResponse(c, toUserDTO(user), "Профиль пользователя получен", http.StatusOK)
}

func (ctrl *AuthController) generateTokensAndRespond(c echo.Context, user *entities.User, message string, code int) error {
	accessToken, refreshToken, err := ctrl.jwtSvc.GenerateTokens(user.ID)
	if err != nil {
		ctrl.logger.Error("Не удалось сгенерировать токены", zap.String("userID", user.ID), zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось сгенерировать токены", err, nil))
	}
	return utils.SuccessResponse(c, dto.AuthResponseDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserDTO(user),
	}, message, code)
}

func toUserDTO(user *entities.User) dto.UserDTO {
	return dto.UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}
}
