package routes

import (
	"gearguard/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runCategoryRouter(secureGroup *echo.Group, ctrl *controllers.CategoryController) {
	secureGroup.GET("/categories", ctrl.GetCategories)
	secureGroup.POST("/categories", ctrl.CreateCategory)
	secureGroup.GET("/categories/:id", ctrl.FindCategory)
	secureGroup.PUT("/categories/:id", ctrl.UpdateCategory)
	secureGroup.DELETE("/categories/:id", ctrl.DeleteCategory)
}
