package routes

import (
	"gearguard/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runAuthRouter(api *echo.Group, secureGroup *echo.Group, authCtrl *controllers.AuthController) {
	auth := api.Group("/auth")
	auth.POST("/sign-up", authCtrl.SignUp)
	auth.POST("/sign-in", authCtrl.Login)
	auth.POST("/refresh", authCtrl.RefreshToken)

	secureGroup.GET("/auth/me", authCtrl.Me)
}
