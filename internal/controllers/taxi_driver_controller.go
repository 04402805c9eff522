package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"taxi_orders/internal/config"
	"taxi_orders/internal/models"
	"taxi_orders/internal/permissions"
	"taxi_orders/internal/validation"
)

type taxiDriverInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Car         string `json:"car"`
}

// ListTaxiDrivers returns every driver, surname first like the listing
// pages show them.
func ListTaxiDrivers(c *gin.Context) {
	var drivers []models.TaxiDriver
	if err := config.DB.Order("last_name, first_name").Find(&drivers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch taxi drivers"})
		return
	}
	c.JSON(http.StatusOK, drivers)
}

func GetTaxiDriver(c *gin.Context) {
	var driver models.TaxiDriver
	if err := config.DB.Preload("Aggregators").Preload("Orders").
		First(&driver, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Taxi driver not found"})
		return
	}
	c.JSON(http.StatusOK, driver)
}

// CreateTaxiDriver has no per-user limit; any authenticated user may
// register drivers.
func CreateTaxiDriver(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var input taxiDriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	driver := models.TaxiDriver{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
		Car:         input.Car,
		UserID:      p.ID,
	}
	if errs := validation.TaxiDriver(&driver); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	if err := config.DB.Create(&driver).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create taxi driver: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, driver)
}

func UpdateTaxiDriver(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var driver models.TaxiDriver
	if err := config.DB.First(&driver, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Taxi driver not found"})
		return
	}

	owner, err := permissions.Owner(config.DB, &driver)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not resolve owner: " + err.Error()})
		return
	}
	if !permissions.Allow(c.Request.Method, p, owner) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to modify this taxi driver"})
		return
	}

	var input taxiDriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	driver.FirstName = input.FirstName
	driver.LastName = input.LastName
	driver.PhoneNumber = input.PhoneNumber
	driver.Car = input.Car
	if errs := validation.TaxiDriver(&driver); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	if err := config.DB.Save(&driver).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update taxi driver: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, driver)
}

// DeleteTaxiDriver removes the driver together with its orders and
// affiliation rows.
func DeleteTaxiDriver(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var driver models.TaxiDriver
	if err := config.DB.First(&driver, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Taxi driver not found"})
		return
	}

	owner, err := permissions.Owner(config.DB, &driver)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not resolve owner: " + err.Error()})
		return
	}
	if !permissions.Allow(c.Request.Method, p, owner) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to delete this taxi driver"})
		return
	}

	if err := deleteTaxiDriverCascade(&driver); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete taxi driver: " + err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func deleteTaxiDriverCascade(driver *models.TaxiDriver) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("taxi_driver_id = ?", driver.ID).
			Delete(&models.TaxiDriverAggregator{}).Error; err != nil {
			return err
		}
		if err := tx.Where("taxi_driver_id = ?", driver.ID).
			Delete(&models.Order{}).Error; err != nil {
			return err
		}
		return tx.Delete(driver).Error
	})
}
