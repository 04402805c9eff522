package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxi_orders/internal/config"
	"taxi_orders/internal/middleware"
	"taxi_orders/internal/models"
)

// pageContext adds the pieces every rendered page shares: pending
// flash messages and the login state.
func pageContext(c *gin.Context, data gin.H) gin.H {
	_, loggedIn := middleware.SessionPrincipal(c)
	data["Messages"] = middleware.Flashes(c)
	data["LoggedIn"] = loggedIn
	return data
}

func MainPage(c *gin.Context) {
	c.HTML(http.StatusOK, "main.html", pageContext(c, gin.H{
		"Title": "Taxi orders",
	}))
}

func AggregatorsPage(c *gin.Context) {
	var aggregators []models.Aggregator
	config.DB.Order("name").Find(&aggregators)
	c.HTML(http.StatusOK, "aggregators.html", pageContext(c, gin.H{
		"Title":       "Aggregators",
		"Aggregators": aggregators,
	}))
}

func AggregatorPage(c *gin.Context) {
	var aggregator models.Aggregator
	if err := config.DB.Preload("TaxiDrivers.TaxiDriver").
		First(&aggregator, "id = ?", c.Param("id")).Error; err != nil {
		c.String(http.StatusNotFound, "Aggregator not found")
		return
	}
	c.HTML(http.StatusOK, "aggregator.html", pageContext(c, gin.H{
		"Title":      "Aggregator",
		"Aggregator": aggregator,
	}))
}

func TaxiDriversPage(c *gin.Context) {
	var drivers []models.TaxiDriver
	config.DB.Order("last_name, first_name").Find(&drivers)
	c.HTML(http.StatusOK, "taxi_drivers.html", pageContext(c, gin.H{
		"Title":       "Taxi drivers",
		"TaxiDrivers": drivers,
	}))
}

func TaxiDriverPage(c *gin.Context) {
	var driver models.TaxiDriver
	if err := config.DB.Preload("Aggregators.Aggregator").Preload("Orders").
		First(&driver, "id = ?", c.Param("id")).Error; err != nil {
		c.String(http.StatusNotFound, "Taxi driver not found")
		return
	}
	c.HTML(http.StatusOK, "taxi_driver.html", pageContext(c, gin.H{
		"Title":      "Taxi driver",
		"TaxiDriver": driver,
	}))
}

func OrdersPage(c *gin.Context) {
	var orders []models.Order
	config.DB.Order("date").Find(&orders)
	c.HTML(http.StatusOK, "orders.html", pageContext(c, gin.H{
		"Title":  "Orders",
		"Orders": orders,
	}))
}

func OrderPage(c *gin.Context) {
	var order models.Order
	if err := config.DB.Preload("TaxiDriver").
		First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.String(http.StatusNotFound, "Order not found")
		return
	}
	c.HTML(http.StatusOK, "order.html", pageContext(c, gin.H{
		"Title": "Order",
		"Order": order,
	}))
}
