package routes

import (
	"github.com/gin-gonic/gin"

	"taxi_orders/internal/controllers"
)

func AuthRoutes(r *gin.Engine) {
	r.GET("/register", controllers.RegisterPage)
	r.POST("/register", controllers.RegisterUser)
	r.GET("/login", controllers.LoginPage)
	r.POST("/login", controllers.LoginUser)
	r.GET("/logout", controllers.LogoutUser)
}
