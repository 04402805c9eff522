package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxi_orders/internal/config"
	"taxi_orders/internal/middleware"
	"taxi_orders/internal/models"
	"taxi_orders/internal/permissions"
	"taxi_orders/internal/validation"
)

func renderAggregatorForm(c *gin.Context, title, action string, values gin.H, errs validation.Errors) {
	c.HTML(http.StatusOK, "aggregator_form.html", pageContext(c, gin.H{
		"Title":  title,
		"Action": action,
		"Values": values,
		"Errors": errs,
	}))
}

// CreateAggregatorForm shows the empty form; visitors without a login
// get the flash the original pages showed.
func CreateAggregatorForm(c *gin.Context) {
	if _, ok := middleware.SessionPrincipal(c); !ok {
		middleware.Flash(c, "You must be logged in to create an aggregator")
	}
	renderAggregatorForm(c, "Create aggregator", "/create_aggregator/", gin.H{"Name": "", "Phone": ""}, nil)
}

// CreateAggregatorSubmit runs auth, then the one-per-user limit, then
// validation, re-rendering with the submitted values on any failure.
func CreateAggregatorSubmit(c *gin.Context) {
	values := gin.H{
		"Name":  c.PostForm("name"),
		"Phone": c.PostForm("phone"),
	}

	p, ok := middleware.SessionPrincipal(c)
	if !ok {
		middleware.Flash(c, "You must be logged in to create an aggregator")
		renderAggregatorForm(c, "Create aggregator", "/create_aggregator/", values, nil)
		return
	}

	if !p.IsStaff && userHasAggregator(p.ID) {
		middleware.Flash(c, "You already created an aggregator")
		renderAggregatorForm(c, "Create aggregator", "/create_aggregator/", values, nil)
		return
	}

	aggregator := models.Aggregator{
		Name:   c.PostForm("name"),
		Phone:  c.PostForm("phone"),
		UserID: p.ID,
	}
	if errs := validation.Aggregator(config.DB, &aggregator); len(errs) > 0 {
		renderAggregatorForm(c, "Create aggregator", "/create_aggregator/", values, errs)
		return
	}

	if err := config.DB.Create(&aggregator).Error; err != nil {
		middleware.Flash(c, "Could not create aggregator")
		renderAggregatorForm(c, "Create aggregator", "/create_aggregator/", values, nil)
		return
	}
	c.Redirect(http.StatusFound, "/aggregators/")
}

// UpdateAggregatorForm shows the pre-filled form to the owner or staff;
// anyone else is sent back to the detail page with a denial flash.
func UpdateAggregatorForm(c *gin.Context) {
	var aggregator models.Aggregator
	if err := config.DB.First(&aggregator, "id = ?", c.Param("id")).Error; err != nil {
		c.String(http.StatusNotFound, "Aggregator not found")
		return
	}

	p, _ := middleware.SessionPrincipal(c)
	if !permissions.Allow(http.MethodPost, p, aggregator.UserID) {
		middleware.Flash(c, "You don't have permission to modify this aggregator")
		c.Redirect(http.StatusFound, "/aggregator/"+aggregator.ID+"/")
		return
	}

	renderAggregatorForm(c, "Update aggregator", "/update_aggregator/"+aggregator.ID+"/", gin.H{
		"Name":  aggregator.Name,
		"Phone": aggregator.Phone,
	}, nil)
}

func UpdateAggregatorSubmit(c *gin.Context) {
	var aggregator models.Aggregator
	if err := config.DB.First(&aggregator, "id = ?", c.Param("id")).Error; err != nil {
		c.String(http.StatusNotFound, "Aggregator not found")
		return
	}

	p, _ := middleware.SessionPrincipal(c)
	if !permissions.Allow(c.Request.Method, p, aggregator.UserID) {
		middleware.Flash(c, "You don't have permission to modify this aggregator")
		c.Redirect(http.StatusFound, "/aggregator/"+aggregator.ID+"/")
		return
	}

	values := gin.H{
		"Name":  c.PostForm("name"),
		"Phone": c.PostForm("phone"),
	}
	aggregator.Name = c.PostForm("name")
	aggregator.Phone = c.PostForm("phone")
	if errs := validation.Aggregator(config.DB, &aggregator); len(errs) > 0 {
		renderAggregatorForm(c, "Update aggregator", "/update_aggregator/"+aggregator.ID+"/", values, errs)
		return
	}

	if err := config.DB.Save(&aggregator).Error; err != nil {
		middleware.Flash(c, "Could not update aggregator")
		renderAggregatorForm(c, "Update aggregator", "/update_aggregator/"+aggregator.ID+"/", values, nil)
		return
	}
	c.Redirect(http.StatusFound, "/aggregator/"+aggregator.ID+"/")
}

// DeleteAggregatorAction removes the record for the owner or staff and
// returns to the list; anyone else bounces to the detail page.
func DeleteAggregatorAction(c *gin.Context) {
	var aggregator models.Aggregator
	if err := config.DB.First(&aggregator, "id = ?", c.Param("id")).Error; err != nil {
		c.String(http.StatusNotFound, "Aggregator not found")
		return
	}

	p, _ := middleware.SessionPrincipal(c)
	if !permissions.Allow(http.MethodDelete, p, aggregator.UserID) {
		middleware.Flash(c, "You don't have permission to delete this aggregator")
		c.Redirect(http.StatusFound, "/aggregator/"+aggregator.ID+"/")
		return
	}

	if err := deleteAggregatorCascade(&aggregator); err != nil {
		middleware.Flash(c, "Could not delete aggregator")
		c.Redirect(http.StatusFound, "/aggregator/"+aggregator.ID+"/")
		return
	}
	c.Redirect(http.StatusFound, "/aggregators/")
}
