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

type aggregatorInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ListAggregators returns every aggregator ordered by name.
func ListAggregators(c *gin.Context) {
	var aggregators []models.Aggregator
	if err := config.DB.Order("name").Find(&aggregators).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch aggregators"})
		return
	}
	c.JSON(http.StatusOK, aggregators)
}

// GetAggregator retrieves one aggregator by ID.
func GetAggregator(c *gin.Context) {
	var aggregator models.Aggregator
	if err := config.DB.Preload("TaxiDrivers").First(&aggregator, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aggregator not found"})
		return
	}
	c.JSON(http.StatusOK, aggregator)
}

// CreateAggregator validates the payload, then enforces the
// one-aggregator-per-user limit for non-staff callers.
func CreateAggregator(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var input aggregatorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	aggregator := models.Aggregator{Name: input.Name, Phone: input.Phone, UserID: p.ID}
	if errs := validation.Aggregator(config.DB, &aggregator); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	if !p.IsStaff && userHasAggregator(p.ID) {
		c.JSON(http.StatusConflict, gin.H{"error": "You already created an aggregator"})
		return
	}

	if err := config.DB.Create(&aggregator).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": validation.Errors{"name": {"Already exists"}}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create aggregator: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, aggregator)
}

// UpdateAggregator replaces the aggregator's fields. Owner or staff only.
func UpdateAggregator(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var aggregator models.Aggregator
	if err := config.DB.First(&aggregator, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aggregator not found"})
		return
	}

	owner, err := permissions.Owner(config.DB, &aggregator)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not resolve owner: " + err.Error()})
		return
	}
	if !permissions.Allow(c.Request.Method, p, owner) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to modify this aggregator"})
		return
	}

	var input aggregatorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	aggregator.Name = input.Name
	aggregator.Phone = input.Phone
	if errs := validation.Aggregator(config.DB, &aggregator); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	if err := config.DB.Save(&aggregator).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update aggregator: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, aggregator)
}

// DeleteAggregator removes the aggregator and its affiliation rows in
// one transaction. Owner or staff only.
func DeleteAggregator(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var aggregator models.Aggregator
	if err := config.DB.First(&aggregator, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aggregator not found"})
		return
	}

	owner, err := permissions.Owner(config.DB, &aggregator)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not resolve owner: " + err.Error()})
		return
	}
	if !permissions.Allow(c.Request.Method, p, owner) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to delete this aggregator"})
		return
	}

	if err := deleteAggregatorCascade(&aggregator); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete aggregator: " + err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func userHasAggregator(userID uint) bool {
	var count int64
	config.DB.Model(&models.Aggregator{}).Where("user_id = ?", userID).Count(&count)
	return count > 0
}

func deleteAggregatorCascade(aggregator *models.Aggregator) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("aggregator_id = ?", aggregator.ID).
			Delete(&models.TaxiDriverAggregator{}).Error; err != nil {
			return err
		}
		return tx.Delete(aggregator).Error
	})
}
