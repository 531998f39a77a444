package routes

import (
	"gearguard/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runMaintenanceRequestRouter(secureGroup *echo.Group, ctrl *controllers.MaintenanceRequestController) {
	secureGroup.GET("/requests", ctrl.GetMaintenanceRequests)
	secureGroup.POST("/requests", ctrl.CreateMaintenanceRequest)
	secureGroup.GET("/requests/overdue", ctrl.GetOverdueRequests)
	secureGroup.GET("/requests/:id", ctrl.FindMaintenanceRequest)
	secureGroup.PUT("/requests/:id", ctrl.UpdateMaintenanceRequest)
	secureGroup.PATCH("/requests/:id/stage", ctrl.ChangeStage)
	secureGroup.DELETE("/requests/:id", ctrl.DeleteMaintenanceRequest)
}
