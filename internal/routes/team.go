package routes

import (
	"gearguard/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runTeamRouter(secureGroup *echo.Group, ctrl *controllers.TeamController) {
	secureGroup.GET("/teams", ctrl.GetTeams)
	secureGroup.POST("/teams", ctrl.CreateTeam)
	secureGroup.GET("/teams/:id", ctrl.FindTeam)
	secureGroup.PUT("/teams/:id", ctrl.UpdateTeam)
	secureGroup.DELETE("/teams/:id", ctrl.DeleteTeam)
}
