package routes

import (
	"github.com/gin-gonic/gin"

	"taxi_orders/internal/controllers"
	"taxi_orders/internal/middleware"
)

// APIRoutes exposes each entity as a REST collection under /api/v1.
// Every route requires a bearer token; object-level permissions are
// enforced in the controllers.
func APIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	api.Use(middleware.RequireAuth())
	{
		api.GET("/aggregators/", controllers.ListAggregators)
		api.POST("/aggregators/", controllers.CreateAggregator)
		api.GET("/aggregators/:id/", controllers.GetAggregator)
		api.PUT("/aggregators/:id/", controllers.UpdateAggregator)
		api.DELETE("/aggregators/:id/", controllers.DeleteAggregator)

		api.GET("/taxi_drivers/", controllers.ListTaxiDrivers)
		api.POST("/taxi_drivers/", controllers.CreateTaxiDriver)
		api.GET("/taxi_drivers/:id/", controllers.GetTaxiDriver)
		api.PUT("/taxi_drivers/:id/", controllers.UpdateTaxiDriver)
		api.DELETE("/taxi_drivers/:id/", controllers.DeleteTaxiDriver)

		api.GET("/taxi_driver_aggregators/", controllers.ListAffiliations)
		api.POST("/taxi_driver_aggregators/", controllers.CreateAffiliation)
		api.GET("/taxi_driver_aggregators/:id/", controllers.GetAffiliation)
		api.PUT("/taxi_driver_aggregators/:id/", controllers.UpdateAffiliation)
		api.DELETE("/taxi_driver_aggregators/:id/", controllers.DeleteAffiliation)

		api.GET("/orders/", controllers.ListOrders)
		api.POST("/orders/", controllers.CreateOrder)
		api.GET("/orders/:id/", controllers.GetOrder)
		api.PUT("/orders/:id/", controllers.UpdateOrder)
		api.DELETE("/orders/:id/", controllers.DeleteOrder)
	}
}
