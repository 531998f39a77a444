package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/docstore"
	"gearguard/internal/listeners"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/pkg/config"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/middleware"
	"gearguard/pkg/service"
	appwebsocket "gearguard/pkg/websocket"
)

type Loggers struct {
	Main      *zap.Logger
	Auth      *zap.Logger
	Equipment *zap.Logger
	Request   *zap.Logger
}

// NewLoggers раздаёт один логгер всем подсистемам, помечая их полем "module".
func NewLoggers(base *zap.Logger) *Loggers {
	return &Loggers{
		Main:      base,
		Auth:      base.With(zap.String("module", "auth")),
		Equipment: base.With(zap.String("module", "equipment")),
		Request:   base.With(zap.String("module", "request")),
	}
}

// Dependencies - инфраструктура, собранная в main.
type Dependencies struct {
	Store         docstore.Store
	Subscriptions *docstore.Subscriptions
	// Cache может быть nil: без Redis блокировка входа отключена.
	Cache     repositories.CacheRepositoryInterface
	Bus       *eventbus.Bus
	Hub       *appwebsocket.Hub
	JWT       service.JWTService
	Clock     clockwork.Clock
	Validator *validator.Validate
	Config    *config.Config
	// SetupErr - результат проверки конфигурации хранилища.
	SetupErr error
}

type Services struct {
	Equipment   services.EquipmentServiceInterface
	Import      *services.EquipmentImportService
	Teams       services.TeamServiceInterface
	Requests    services.MaintenanceRequestServiceInterface
	Categories  services.CategoryServiceInterface
	WorkCenters services.WorkCenterServiceInterface
	Auth        services.AuthServiceInterface
	Dashboard   services.DashboardServiceInterface
}

// BuildServices собирает репозитории, сервисы и слушателей шины. Используется
// и HTTP-сервером, и командами CLI.
func BuildServices(deps Dependencies, loggers *Loggers) *Services {
	// --- 1. РЕПОЗИТОРИИ ---
	equipmentRepo := repositories.NewEquipmentRepository(deps.Store, deps.Subscriptions, loggers.Equipment)
	requestRepo := repositories.NewMaintenanceRequestRepository(deps.Store, deps.Subscriptions, loggers.Request)
	teamRepo := repositories.NewTeamRepository(deps.Store, deps.Subscriptions, loggers.Main)
	categoryRepo := repositories.NewCategoryRepository(deps.Store, deps.Subscriptions, loggers.Main)
	workCenterRepo := repositories.NewWorkCenterRepository(deps.Store, deps.Subscriptions, loggers.Main)
	userRepo := repositories.NewUserRepository(deps.Store, loggers.Auth)

	// --- 2. СЕРВИСЫ ---
	s := &Services{
		Equipment:   services.NewEquipmentService(equipmentRepo, requestRepo, loggers.Equipment),
		Teams:       services.NewTeamService(teamRepo, loggers.Main),
		Requests:    services.NewMaintenanceRequestService(requestRepo, equipmentRepo, deps.Bus, deps.Clock, loggers.Request),
		Categories:  services.NewCategoryService(categoryRepo, loggers.Main),
		WorkCenters: services.NewWorkCenterService(workCenterRepo, loggers.Main),
	}
	authCfg := config.Default().Auth
	if deps.Config != nil {
		authCfg = deps.Config.Auth
	}
	s.Auth = services.NewAuthService(userRepo, deps.Cache, loggers.Auth, &authCfg)
	s.Import = services.NewEquipmentImportService(s.Equipment, deps.Validator, loggers.Equipment)
	s.Dashboard = services.NewDashboardService(s.Equipment, s.Teams, s.Requests, s.Categories, s.WorkCenters, deps.Clock, loggers.Main)

	// --- 3. СЛУШАТЕЛИ ---
	if deps.Bus != nil {
		listeners.NewEquipmentListener(s.Equipment, loggers.Equipment).Register(deps.Bus)
	}
	return s
}

func InitRouter(e *echo.Echo, deps Dependencies, loggers *Loggers) *Services {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	svc := BuildServices(deps, loggers)

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(deps.JWT, loggers.Auth)
	secureGroup := api.Group("", authMW.Auth)

	driver := ""
	if deps.Config != nil {
		driver = deps.Config.Store.Driver
	}

	runSetupRouter(api, controllers.NewSetupController(driver, deps.SetupErr))
	runAuthRouter(api, secureGroup, controllers.NewAuthController(svc.Auth, deps.JWT, loggers.Auth))
	runEquipmentRouter(secureGroup, controllers.NewEquipmentController(svc.Equipment, svc.Import, loggers.Equipment))
	runTeamRouter(secureGroup, controllers.NewTeamController(svc.Teams, loggers.Main))
	runMaintenanceRequestRouter(secureGroup, controllers.NewMaintenanceRequestController(svc.Requests, loggers.Request))
	runCategoryRouter(secureGroup, controllers.NewCategoryController(svc.Categories, loggers.Main))
	runWorkCenterRouter(secureGroup, controllers.NewWorkCenterController(svc.WorkCenters, loggers.Main))
	runDashboardRouter(secureGroup, controllers.NewDashboardController(svc.Dashboard, loggers.Main))

	if deps.Hub != nil {
		wsCtrl := controllers.NewWebSocketController(deps.Hub, deps.JWT, controllers.LiveServices{
			Equipment:   svc.Equipment,
			Teams:       svc.Teams,
			Requests:    svc.Requests,
			Categories:  svc.Categories,
			WorkCenters: svc.WorkCenters,
		}, loggers.Main)
		e.GET("/ws", wsCtrl.ServeWs)
	}

	loggers.Main.Info("InitRouter: Создание маршрутов завершено")
	return svc
}
