package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"taxi_orders/internal/config"
	"taxi_orders/internal/middleware"
	"taxi_orders/internal/models"
	"taxi_orders/internal/permissions"
	"taxi_orders/internal/validation"
)

var formDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseFormDate(s string) (time.Time, bool) {
	for _, layout := range formDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func renderOrderForm(c *gin.Context, title, action string, values gin.H, errs validation.Errors) {
	p, _ := middleware.SessionPrincipal(c)
	var drivers []models.TaxiDriver
	q := config.DB.Order("last_name, first_name")
	if !p.IsStaff {
		q = q.Where("user_id = ?", p.ID)
	}
	q.Find(&drivers)

	c.HTML(http.StatusOK, "order_form.html", pageContext(c, gin.H{
		"Title":   title,
		"Action":  action,
		"Values":  values,
		"Errors":  errs,
		"Drivers": drivers,
	}))
}

func orderFormValues(c *gin.Context) gin.H {
	return gin.H{
		"Name":               c.PostForm("name"),
		"Date":               c.PostForm("date"),
		"Cost":               c.PostForm("cost"),
		"PickupAddress":      c.PostForm("pickup_address"),
		"DestinationAddress": c.PostForm("destination_address"),
		"TaxiDriver":         c.PostForm("taxi_driver"),
	}
}

// orderFromForm builds the order and collects the parse errors the
// form fields can produce on their own.
func orderFromForm(c *gin.Context) (models.Order, validation.Errors) {
	errs := validation.Errors{}
	order := models.Order{
		Name:               c.PostForm("name"),
		PickupAddress:      c.PostForm("pickup_address"),
		DestinationAddress: c.PostForm("destination_address"),
		TaxiDriverID:       c.PostForm("taxi_driver"),
	}

	if raw := c.PostForm("date"); raw != "" {
		if t, ok := parseFormDate(raw); ok {
			order.Date = t
		} else {
			errs.Add("date", "Must be a valid date")
		}
	} else {
		order.Date = time.Now().UTC()
	}

	if raw := c.PostForm("cost"); raw != "" {
		if cost, err := decimal.NewFromString(raw); err == nil {
			order.Cost = cost
		} else {
			errs.Add("cost", "Must be a number")
		}
	}
	return order, errs
}

func CreateOrderForm(c *gin.Context) {
	if _, ok := middleware.SessionPrincipal(c); !ok {
		middleware.Flash(c, "You must be logged in to create an order")
	}
	renderOrderForm(c, "Create order", "/create_order/", gin.H{
		"Name": "", "Date": "", "Cost": "",
		"PickupAddress": "", "DestinationAddress": "", "TaxiDriver": "",
	}, nil)
}

// CreateOrderSubmit follows the form pipeline: auth first, then the
// one-order limit, then validation.
func CreateOrderSubmit(c *gin.Context) {
	values := orderFormValues(c)

	p, ok := middleware.SessionPrincipal(c)
	if !ok {
		middleware.Flash(c, "You must be logged in to create an order")
		renderOrderForm(c, "Create order", "/create_order/", values, nil)
		return
	}

	if !p.IsStaff && userHasOrder(p.ID) {
		middleware.Flash(c, "You already created an order")
		renderOrderForm(c, "Create order", "/create_order/", values, nil)
		return
	}

	order, errs := orderFromForm(c)

	var resolveErr string
	if !p.IsStaff {
		driverID, derr := resolveOwnedDriver(p, order.TaxiDriverID)
		if derr == "" {
			order.TaxiDriverID = driverID
		} else {
			resolveErr = derr
		}
	}

	for field, msgs := range validation.Order(config.DB, &order) {
		errs[field] = append(errs[field], msgs...)
	}
	if resolveErr != "" {
		delete(errs, "taxi_driver")
		errs.Add("taxi_driver", resolveErr)
	}
	if len(errs) > 0 {
		renderOrderForm(c, "Create order", "/create_order/", values, errs)
		return
	}

	if err := config.DB.Create(&order).Error; err != nil {
		middleware.Flash(c, "Could not create order")
		renderOrderForm(c, "Create order", "/create_order/", values, nil)
		return
	}
	c.Redirect(http.StatusFound, "/orders/")
}

func UpdateOrderForm(c *gin.Context) {
	var order models.Order
	if err := config.DB.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.String(http.StatusNotFound, "Order not found")
		return
	}

	p, _ := middleware.SessionPrincipal(c)
	owner, err := permissions.Owner(config.DB, &order)
	if err != nil || !permissions.Allow(http.MethodPost, p, owner) {
		middleware.Flash(c, "You don't have permission to modify this order")
		c.Redirect(http.StatusFound, "/order/"+order.ID+"/")
		return
	}

	renderOrderForm(c, "Update order", "/update_order/"+order.ID+"/", gin.H{
		"Name":               order.Name,
		"Date":               order.Date.Format("2006-01-02T15:04"),
		"Cost":               order.Cost.String(),
		"PickupAddress":      order.PickupAddress,
		"DestinationAddress": order.DestinationAddress,
		"TaxiDriver":         order.TaxiDriverID,
	}, nil)
}

func UpdateOrderSubmit(c *gin.Context) {
	var order models.Order
	if err := config.DB.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.String(http.StatusNotFound, "Order not found")
		return
	}

	p, _ := middleware.SessionPrincipal(c)
	owner, err := permissions.Owner(config.DB, &order)
	if err != nil || !permissions.Allow(c.Request.Method, p, owner) {
		middleware.Flash(c, "You don't have permission to modify this order")
		c.Redirect(http.StatusFound, "/order/"+order.ID+"/")
		return
	}

	values := orderFormValues(c)
	updated, errs := orderFromForm(c)
	updated.ID = order.ID
	updated.Created = order.Created

	for field, msgs := range validation.Order(config.DB, &updated) {
		errs[field] = append(errs[field], msgs...)
	}
	if len(errs) > 0 {
		renderOrderForm(c, "Update order", "/update_order/"+order.ID+"/", values, errs)
		return
	}

	if err := config.DB.Save(&updated).Error; err != nil {
		middleware.Flash(c, "Could not update order")
		renderOrderForm(c, "Update order", "/update_order/"+order.ID+"/", values, nil)
		return
	}
	c.Redirect(http.StatusFound, "/order/"+order.ID+"/")
}

func DeleteOrderAction(c *gin.Context) {
	var order models.Order
	if err := config.DB.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.String(http.StatusNotFound, "Order not found")
		return
	}

	p, _ := middleware.SessionPrincipal(c)
	owner, err := permissions.Owner(config.DB, &order)
	if err != nil || !permissions.Allow(http.MethodDelete, p, owner) {
		middleware.Flash(c, "You don't have permission to delete this order")
		c.Redirect(http.StatusFound, "/order/"+order.ID+"/")
		return
	}

	if err := config.DB.Delete(&order).Error; err != nil {
		middleware.Flash(c, "Could not delete order")
		c.Redirect(http.StatusFound, "/order/"+order.ID+"/")
		return
	}
	c.Redirect(http.StatusFound, "/orders/")
}
