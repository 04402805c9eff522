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

func renderTaxiDriverForm(c *gin.Context, title, action string, values gin.H, errs validation.Errors) {
	c.HTML(http.StatusOK, "taxi_driver_form.html", pageContext(c, gin.H{
		"Title":  title,
		"Action": action,
		"Values": values,
		"Errors": errs,
	}))
}

func taxiDriverFormValues(c *gin.Context) gin.H {
	return gin.H{
		"FirstName":   c.PostForm("first_name"),
		"LastName":    c.PostForm("last_name"),
		"PhoneNumber": c.PostForm("phone_number"),
		"Car":         c.PostForm("car"),
	}
}

func CreateTaxiDriverForm(c *gin.Context) {
	if _, ok := middleware.SessionPrincipal(c); !ok {
		middleware.Flash(c, "You must be logged in to create a driver")
	}
	renderTaxiDriverForm(c, "Create taxi driver", "/create_taxi_driver/", gin.H{
		"FirstName": "", "LastName": "", "PhoneNumber": "", "Car": "",
	}, nil)
}

func CreateTaxiDriverSubmit(c *gin.Context) {
	values := taxiDriverFormValues(c)

	p, ok := middleware.SessionPrincipal(c)
	if !ok {
		middleware.Flash(c, "You must be logged in to create a driver")
		renderTaxiDriverForm(c, "Create taxi driver", "/create_taxi_driver/", values, nil)
		return
	}

	driver := models.TaxiDriver{
		FirstName:   c.PostForm("first_name"),
		LastName:    c.PostForm("last_name"),
		PhoneNumber: c.PostForm("phone_number"),
		Car:         c.PostForm("car"),
		UserID:      p.ID,
	}
	if errs := validation.TaxiDriver(&driver); len(errs) > 0 {
		renderTaxiDriverForm(c, "Create taxi driver", "/create_taxi_driver/", values, errs)
		return
	}

	if err := config.DB.Create(&driver).Error; err != nil {
		middleware.Flash(c, "Could not create taxi driver")
		renderTaxiDriverForm(c, "Create taxi driver", "/create_taxi_driver/", values, nil)
		return
	}
	c.Redirect(http.StatusFound, "/taxi_drivers/")
}

func UpdateTaxiDriverForm(c *gin.Context) {
	var driver models.TaxiDriver
	if err := config.DB.First(&driver, "id = ?", c.Param("id")).Error; err != nil {
		c.String(http.StatusNotFound, "Taxi driver not found")
		return
	}

	p, _ := middleware.SessionPrincipal(c)
	if !permissions.Allow(http.MethodPost, p, driver.UserID) {
		middleware.Flash(c, "You don't have permission to modify this taxi driver")
		c.Redirect(http.StatusFound, "/taxi_driver/"+driver.ID+"/")
		return
	}

	renderTaxiDriverForm(c, "Update taxi driver", "/update_taxi_driver/"+driver.ID+"/", gin.H{
		"FirstName":   driver.FirstName,
		"LastName":    driver.LastName,
		"PhoneNumber": driver.PhoneNumber,
		"Car":         driver.Car,
	}, nil)
}

func UpdateTaxiDriverSubmit(c *gin.Context) {
	var driver models.TaxiDriver
	if err := config.DB.First(&driver, "id = ?", c.Param("id")).Error; err != nil {
		c.String(http.StatusNotFound, "Taxi driver not found")
		return
	}

	p, _ := middleware.SessionPrincipal(c)
	if !permissions.Allow(c.Request.Method, p, driver.UserID) {
		middleware.Flash(c, "You don't have permission to modify this taxi driver")
		c.Redirect(http.StatusFound, "/taxi_driver/"+driver.ID+"/")
		return
	}

	values := taxiDriverFormValues(c)
	driver.FirstName = c.PostForm("first_name")
	driver.LastName = c.PostForm("last_name")
	driver.PhoneNumber = c.PostForm("phone_number")
	driver.Car = c.PostForm("car")
	if errs := validation.TaxiDriver(&driver); len(errs) > 0 {
		renderTaxiDriverForm(c, "Update taxi driver", "/update_taxi_driver/"+driver.ID+"/", values, errs)
		return
	}

	if err := config.DB.Save(&driver).Error; err != nil {
		middleware.Flash(c, "Could not update taxi driver")
		renderTaxiDriverForm(c, "Update taxi driver", "/update_taxi_driver/"+driver.ID+"/", values, nil)
		return
	}
	c.Redirect(http.StatusFound, "/taxi_driver/"+driver.ID+"/")
}

func DeleteTaxiDriverAction(c *gin.Context) {
	var driver models.TaxiDriver
	if err := config.DB.First(&driver, "id = ?", c.Param("id")).Error; err != nil {
		c.String(http.StatusNotFound, "Taxi driver not found")
		return
	}

	p, _ := middleware.SessionPrincipal(c)
	if !permissions.Allow(http.MethodDelete, p, driver.UserID) {
		middleware.Flash(c, "You don't have permission to delete this taxi driver")
		c.Redirect(http.StatusFound, "/taxi_driver/"+driver.ID+"/")
		return
	}

	if err := deleteTaxiDriverCascade(&driver); err != nil {
		middleware.Flash(c, "Could not delete taxi driver")
		c.Redirect(http.StatusFound, "/taxi_driver/"+driver.ID+"/")
		return
	}
	c.Redirect(http.StatusFound, "/taxi_drivers/")
}
