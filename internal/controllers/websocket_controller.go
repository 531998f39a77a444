package controllers

import (
	"context"
	"net/http"

	"gearguard/internal/docstore"
	db "gearguard/internal/infrastructure/bd"
	"gearguard/internal/repositories"
	"gearguard/internal/resources"
	"gearguard/internal/services"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"
	"gearguard/pkg/utils"
	appwebsocket "gearguard/pkg/websocket"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveServices - сервисы, на коллекции которых можно подписаться.
type LiveServices struct {
	Equipment   services.EquipmentServiceInterface
	Teams       services.TeamServiceInterface
	Requests    services.MaintenanceRequestServiceInterface
	Categories  services.CategoryServiceInterface
	WorkCenters services.WorkCenterServiceInterface
}

type liveCollection struct {
	allowed db.AllowedFields
	watch   func(ctx context.Context, client *appwebsocket.Client, q docstore.Query, id string)
}

type WebSocketController struct {
	hub         *appwebsocket.Hub
	jwtService  service.JWTService
	collections map[string]liveCollection
	logger      *zap.Logger
}

func NewWebSocketController(hub *appwebsocket.Hub, jwtService service.JWTService, svc LiveServices, logger *zap.Logger) *WebSocketController {
	c := &WebSocketController{
		hub:        hub,
		jwtService: jwtService,
		logger:     logger,
	}

	equipment := liveCollection{repositories.EquipmentAllowedFields, func(ctx context.Context, cl *appwebsocket.Client, q docstore.Query, id string) {
		if id != "" {
			streamSnapshots(ctx, cl, resources.WatchItem(ctx, svc.Equipment.SubscribeEquipment, id), c.logger)
			return
		}
		streamSnapshots(ctx, cl, resources.WatchList(ctx, svc.Equipment.SubscribeEquipments, q), c.logger)
	}}
	teams := liveCollection{repositories.TeamAllowedFields, func(ctx context.Context, cl *appwebsocket.Client, q docstore.Query, id string) {
		if id != "" {
			streamSnapshots(ctx, cl, resources.WatchItem(ctx, svc.Teams.SubscribeTeam, id), c.logger)
			return
		}
		streamSnapshots(ctx, cl, resources.WatchList(ctx, svc.Teams.SubscribeTeams, q), c.logger)
	}}
	requests := liveCollection{repositories.MaintenanceRequestAllowedFields, func(ctx context.Context, cl *appwebsocket.Client, q docstore.Query, id string) {
		if id != "" {
			streamSnapshots(ctx, cl, resources.WatchItem(ctx, svc.Requests.SubscribeMaintenanceRequest, id), c.logger)
			return
		}
		streamSnapshots(ctx, cl, resources.WatchList(ctx, svc.Requests.SubscribeMaintenanceRequests, q), c.logger)
	}}
	categories := liveCollection{repositories.CategoryAllowedFields, func(ctx context.Context, cl *appwebsocket.Client, q docstore.Query, id string) {
		if id != "" {
			streamSnapshots(ctx, cl, resources.WatchItem(ctx, svc.Categories.SubscribeCategory, id), c.logger)
			return
		}
		streamSnapshots(ctx, cl, resources.WatchList(ctx, svc.Categories.SubscribeCategories, q), c.logger)
	}}
	workCenters := liveCollection{repositories.WorkCenterAllowedFields, func(ctx context.Context, cl *appwebsocket.Client, q docstore.Query, id string) {
		if id != "" {
			streamSnapshots(ctx, cl, resources.WatchItem(ctx, svc.WorkCenters.SubscribeWorkCenter, id), c.logger)
			return
		}
		streamSnapshots(ctx, cl, resources.WatchList(ctx, svc.WorkCenters.SubscribeWorkCenters, q), c.logger)
	}}

	// Принимаем и имена коллекций, и сегменты REST-путей.
	c.collections = map[string]liveCollection{
		constants.CollectionEquipment:  equipment,
		constants.CollectionTeams:      teams,
		constants.CollectionRequests:   requests,
		"requests":                     requests,
		constants.CollectionCategories: categories,
		constants.CollectionWorkCenter: workCenters,
		"work-centers":                 workCenters,
	}
	return c
}

// ServeWs: /ws?token=...&collection=...&id=...&filter[field]=...
func (c *WebSocketController) ServeWs(ctx echo.Context) error {
	tokenString := ctx.QueryParam("token")
	if tokenString == "" {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}
	claims, err := c.jwtService.ValidateToken(tokenString)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if claims.IsRefreshToken {
		return utils.ErrorResponse(ctx, apperrors.ErrTokenIsNotAccess, c.logger)
	}

	name := ctx.QueryParam("collection")
	collection, ok := c.collections[name]
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("неизвестная коллекция %q", name), c.logger)
	}
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	q, err := db.ApplyListParams(docstore.Query{}, filter, collection.allowed)
	if err == nil {
		err = q.Validate()
	}
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Error("WebSocket: не удалось улучшить соединение", zap.Error(err))
		return nil
	}

	client := appwebsocket.NewClient(c.hub, conn, claims.UserID, c.logger)
	if !c.hub.Add(client) {
		_ = conn.Close()
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx.Request().Context())
	defer cancel()

	go client.WritePump()
	go collection.watch(runCtx, client, q, ctx.QueryParam("id"))

	c.logger.Info("WebSocket: клиент подключен",
		zap.String("userID", claims.UserID),
		zap.String("collection", name),
		zap.String("id", ctx.QueryParam("id")),
	)
	client.ReadPump()
	return nil
}

// streamSnapshots отправляет клиенту каждый новый снимок, пока соединение живо.
func streamSnapshots[T any](ctx context.Context, client *appwebsocket.Client, live *resources.Live[T], logger *zap.Logger) {
	defer live.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case <-client.Done():
			return
		case <-live.Changes():
			state := live.State()
			if state.Err != nil {
				httpErr := utils.WrapError(state.Err, "Ошибка подписки", nil)
				logger.Warn("WebSocket: ошибка подписки", zap.Error(state.Err))
				_ = client.SendEnvelope(appwebsocket.MessageTypeError, appwebsocket.ErrorPayload{Code: httpErr.Code, Message: httpErr.Message})
				continue
			}
			_ = client.SendEnvelope(appwebsocket.MessageTypeSnapshot, state.Data)
		}
	}
}
