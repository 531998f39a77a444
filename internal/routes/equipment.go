package routes

import (
	"gearguard/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runEquipmentRouter(secureGroup *echo.Group, ctrl *controllers.EquipmentController) {
	secureGroup.GET("/equipment", ctrl.GetEquipments)
	secureGroup.POST("/equipment", ctrl.CreateEquipment)
	// статичные пути до /:id
	secureGroup.GET("/equipment/export", ctrl.ExportEquipment)
	secureGroup.POST("/equipment/import", ctrl.ImportEquipment)
	secureGroup.GET("/equipment/:id", ctrl.FindEquipment)
	secureGroup.GET("/equipment/:id/requests", ctrl.GetEquipmentRequests)
	secureGroup.PUT("/equipment/:id", ctrl.UpdateEquipment)
	secureGroup.DELETE("/equipment/:id", ctrl.DeleteEquipment)
}
