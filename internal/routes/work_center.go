package routes

import (
	"gearguard/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runWorkCenterRouter(secureGroup *echo.Group, ctrl *controllers.WorkCenterController) {
	secureGroup.GET("/work-centers", ctrl.GetWorkCenters)
	secureGroup.POST("/work-centers", ctrl.CreateWorkCenter)
	secureGroup.GET("/work-centers/:id", ctrl.FindWorkCenter)
	secureGroup.PUT("/work-centers/:id", ctrl.UpdateWorkCenter)
	secureGroup.DELETE("/work-centers/:id", ctrl.DeleteWorkCenter)
}
