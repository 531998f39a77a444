package routes

import (
	"gearguard/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runDashboardRouter(secureGroup *echo.Group, ctrl *controllers.DashboardController) {
	secureGroup.GET("/dashboard", ctrl.GetDashboard)
}

// Состояние настройки доступно без авторизации: без хранилища войти нельзя.
func runSetupRouter(api *echo.Group, ctrl *controllers.SetupController) {
	api.GET("/setup", ctrl.GetSetupStatus)
}
