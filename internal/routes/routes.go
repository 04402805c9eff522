package routes

import (
	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"taxi_orders/internal/middleware"
	"taxi_orders/internal/web"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlogger.SetLogger())
	r.Use(middleware.Sessions())
	r.SetHTMLTemplate(web.Templates())

	AuthRoutes(r)
	APIRoutes(r)
	WebRoutes(r)

	return r
}
