package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxi_orders/internal/config"
	"taxi_orders/internal/models"
	"taxi_orders/internal/permissions"
	"taxi_orders/internal/validation"
)

type affiliationInput struct {
	TaxiDriver string `json:"taxi_driver"`
	Aggregator string `json:"aggregator"`
}

// ListAffiliations returns every driver-aggregator link.
func ListAffiliations(c *gin.Context) {
	var rels []models.TaxiDriverAggregator
	if err := config.DB.Order("aggregator_id, taxi_driver_id").Find(&rels).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch affiliations"})
		return
	}
	c.JSON(http.StatusOK, rels)
}

func GetAffiliation(c *gin.Context) {
	var rel models.TaxiDriverAggregator
	if err := config.DB.First(&rel, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Affiliation not found"})
		return
	}
	c.JSON(http.StatusOK, rel)
}

// CreateAffiliation links a driver to an aggregator. Any authenticated
// user may create links; the pair must be unique.
func CreateAffiliation(c *gin.Context) {
	if _, ok := requirePrincipal(c); !ok {
		return
	}

	var input affiliationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rel := models.TaxiDriverAggregator{TaxiDriverID: input.TaxiDriver, AggregatorID: input.Aggregator}
	if errs := validation.Affiliation(config.DB, &rel); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	if err := config.DB.Create(&rel).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": validation.Errors{"aggregator": {"Already exists"}}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create affiliation: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rel)
}

// UpdateAffiliation replaces the pair. Permission resolves through the
// currently linked driver's owner.
func UpdateAffiliation(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var rel models.TaxiDriverAggregator
	if err := config.DB.First(&rel, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Affiliation not found"})
		return
	}

	owner, err := permissions.Owner(config.DB, &rel)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not resolve owner: " + err.Error()})
		return
	}
	if !permissions.Allow(c.Request.Method, p, owner) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to modify this affiliation"})
		return
	}

	var input affiliationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rel.TaxiDriverID = input.TaxiDriver
	rel.AggregatorID = input.Aggregator
	if errs := validation.Affiliation(config.DB, &rel); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	if err := config.DB.Save(&rel).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update affiliation: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, rel)
}

func DeleteAffiliation(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var rel models.TaxiDriverAggregator
	if err := config.DB.First(&rel, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Affiliation not found"})
		return
	}

	owner, err := permissions.Owner(config.DB, &rel)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not resolve owner: " + err.Error()})
		return
	}
	if !permissions.Allow(c.Request.Method, p, owner) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to delete this affiliation"})
		return
	}

	if err := config.DB.Delete(&rel).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete affiliation: " + err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
