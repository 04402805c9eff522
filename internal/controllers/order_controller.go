package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"taxi_orders/internal/config"
	"taxi_orders/internal/models"
	"taxi_orders/internal/permissions"
	"taxi_orders/internal/validation"
)

type orderInput struct {
	Name               string          `json:"name"`
	Date               *time.Time      `json:"date"`
	Cost               decimal.Decimal `json:"cost"`
	PickupAddress      string          `json:"pickup_address"`
	DestinationAddress string          `json:"destination_address"`
	TaxiDriver         string          `json:"taxi_driver"`
}

// ListOrders returns every order, oldest ride first.
func ListOrders(c *gin.Context) {
	var orders []models.Order
	if err := config.DB.Order("date").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func GetOrder(c *gin.Context) {
	var order models.Order
	if err := config.DB.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// CreateOrder validates the payload, then enforces the one-order
// limit for non-staff callers. Non-staff orders must be bound to a
// driver the caller owns.
func CreateOrder(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var input orderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order := models.Order{
		Name:               input.Name,
		Cost:               input.Cost,
		PickupAddress:      input.PickupAddress,
		DestinationAddress: input.DestinationAddress,
		TaxiDriverID:       input.TaxiDriver,
	}
	if input.Date != nil {
		order.Date = *input.Date
	} else {
		order.Date = time.Now().UTC()
	}

	var resolveErr string
	if !p.IsStaff {
		driverID, derr := resolveOwnedDriver(p, input.TaxiDriver)
		if derr == "" {
			order.TaxiDriverID = driverID
		} else {
			resolveErr = derr
		}
	}

	errs := validation.Order(config.DB, &order)
	if resolveErr != "" {
		delete(errs, "taxi_driver")
		errs.Add("taxi_driver", resolveErr)
	}
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	if !p.IsStaff && userHasOrder(p.ID) {
		c.JSON(http.StatusConflict, gin.H{"error": "You already created an order"})
		return
	}

	if err := config.DB.Create(&order).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": validation.Errors{"name": {"Already exists"}}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create order: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, order)
}

// UpdateOrder replaces the order's fields. The permitted caller is the
// owner of the currently assigned driver, or staff.
func UpdateOrder(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var order models.Order
	if err := config.DB.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	owner, err := permissions.Owner(config.DB, &order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not resolve owner: " + err.Error()})
		return
	}
	if !permissions.Allow(c.Request.Method, p, owner) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to modify this order"})
		return
	}

	var input orderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order.Name = input.Name
	order.Cost = input.Cost
	order.PickupAddress = input.PickupAddress
	order.DestinationAddress = input.DestinationAddress
	order.TaxiDriverID = input.TaxiDriver
	if input.Date != nil {
		order.Date = *input.Date
	}
	if errs := validation.Order(config.DB, &order); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	if err := config.DB.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update order: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

func DeleteOrder(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var order models.Order
	if err := config.DB.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	owner, err := permissions.Owner(config.DB, &order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not resolve owner: " + err.Error()})
		return
	}
	if !permissions.Allow(c.Request.Method, p, owner) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to delete this order"})
		return
	}

	if err := config.DB.Delete(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete order: " + err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// resolveOwnedDriver picks the driver a non-staff order is bound to.
// Owning no driver is an error; owning several requires the payload to
// name one of them explicitly.
func resolveOwnedDriver(p permissions.Principal, requested string) (string, string) {
	var drivers []models.TaxiDriver
	if err := config.DB.Select("id").Where("user_id = ?", p.ID).Find(&drivers).Error; err != nil {
		return "", "Could not resolve your taxi drivers"
	}
	if len(drivers) == 0 {
		return "", "You don't own a taxi driver"
	}
	if requested == "" {
		if len(drivers) == 1 {
			return drivers[0].ID, ""
		}
		return "", "Specify one of your taxi drivers"
	}
	for _, d := range drivers {
		if d.ID == requested {
			return requested, ""
		}
	}
	return "", "Must reference a taxi driver you own"
}

// userHasOrder reports whether any order is already attributable to the
// user through a driver they own.
func userHasOrder(userID uint) bool {
	var count int64
	config.DB.Model(&models.Order{}).
		Joins("JOIN taxi_drivers ON taxi_drivers.id = orders.taxi_driver_id").
		Where("taxi_drivers.user_id = ?", userID).
		Count(&count)
	return count > 0
}
