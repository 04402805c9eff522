package routes

import (
	"github.com/gin-gonic/gin"

	"taxi_orders/internal/controllers"
)

// WebRoutes registers the server-rendered pages. List and detail pages
// are open; the form handlers decide per-request what the visitor may
// do, so they carry no auth middleware.
func WebRoutes(r *gin.Engine) {
	r.GET("/", controllers.MainPage)

	r.GET("/aggregators/", controllers.AggregatorsPage)
	r.GET("/aggregator/:id/", controllers.AggregatorPage)
	r.GET("/create_aggregator/", controllers.CreateAggregatorForm)
	r.POST("/create_aggregator/", controllers.CreateAggregatorSubmit)
	r.GET("/update_aggregator/:id/", controllers.UpdateAggregatorForm)
	r.POST("/update_aggregator/:id/", controllers.UpdateAggregatorSubmit)
	r.GET("/delete_aggregator/:id/", controllers.DeleteAggregatorAction)

	r.GET("/taxi_drivers/", controllers.TaxiDriversPage)
	r.GET("/taxi_driver/:id/", controllers.TaxiDriverPage)
	r.GET("/create_taxi_driver/", controllers.CreateTaxiDriverForm)
	r.POST("/create_taxi_driver/", controllers.CreateTaxiDriverSubmit)
	r.GET("/update_taxi_driver/:id/", controllers.UpdateTaxiDriverForm)
	r.POST("/update_taxi_driver/:id/", controllers.UpdateTaxiDriverSubmit)
	r.GET("/delete_taxi_driver/:id/", controllers.DeleteTaxiDriverAction)

	r.GET("/orders/", controllers.OrdersPage)
	r.GET("/order/:id/", controllers.OrderPage)
	r.GET("/create_order/", controllers.CreateOrderForm)
	r.POST("/create_order/", controllers.CreateOrderSubmit)
	r.GET("/update_order/:id/", controllers.UpdateOrderForm)
	r.POST("/update_order/:id/", controllers.UpdateOrderSubmit)
	r.GET("/delete_order/:id/", controllers.DeleteOrderAction)
}
