package controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxi_orders/internal/config"
	"taxi_orders/internal/models"
)

func TestCreatePagesFlashForAnonymous(t *testing.T) {
	r := setupServer(t)

	cases := map[string]string{
		"/create_aggregator/":  "You must be logged in to create an aggregator",
		"/create_taxi_driver/": "You must be logged in to create a driver",
		"/create_order/":       "You must be logged in to create an order",
	}
	for path, message := range cases {
		w := doForm(t, r, http.MethodGet, path, nil, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), message, path)
	}
}

func TestCreateAggregatorThroughForm(t *testing.T) {
	r := setupServer(t)
	registerUser(t, r, "alice")
	cookies := loginCookies(t, r, "alice")

	w := doForm(t, r, http.MethodPost, "/create_aggregator/", url.Values{
		"name":  {"Yandex"},
		"phone": {"+70001"},
	}, cookies)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "/aggregators/", w.Header().Get("Location"))

	var agg models.Aggregator
	require.NoError(t, config.DB.Where("name = ?", "Yandex").First(&agg).Error)
	assert.Equal(t, "+70001", agg.Phone)
}

func TestCreateAggregatorFormValidation(t *testing.T) {
	r := setupServer(t)
	registerUser(t, r, "alice")
	cookies := loginCookies(t, r, "alice")

	w := doForm(t, r, http.MethodPost, "/create_aggregator/", url.Values{}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "This field is required")

	var count int64
	config.DB.Model(&models.Aggregator{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateAggregatorFormLimit(t *testing.T) {
	r := setupServer(t)
	token := registerUser(t, r, "alice")
	cookies := loginCookies(t, r, "alice")

	createAggregator(t, r, token, "X", "+70001")

	w := doForm(t, r, http.MethodPost, "/create_aggregator/", url.Values{
		"name":  {"Y"},
		"phone": {"+70002"},
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "You already created an aggregator")
	// Submitted values survive the re-render
	assert.Contains(t, body, `value="Y"`)

	var count int64
	config.DB.Model(&models.Aggregator{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteAggregatorDeniedForStranger(t *testing.T) {
	r := setupServer(t)
	owner := registerUser(t, r, "alice")
	registerUser(t, r, "bob")
	cookies := loginCookies(t, r, "bob")

	created := createAggregator(t, r, owner, "Yandex", "+70001")
	id := created["id"].(string)

	w := doForm(t, r, http.MethodGet, "/delete_aggregator/"+id+"/", nil, cookies)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/aggregator/"+id+"/", w.Header().Get("Location"))

	// The denial flash shows up on the detail page
	follow := doForm(t, r, http.MethodGet, "/aggregator/"+id+"/", nil, w.Result().Cookies())
	require.Equal(t, http.StatusOK, follow.Code)
	assert.Contains(t, follow.Body.String(), "You don't have permission to delete this aggregator")

	var count int64
	config.DB.Model(&models.Aggregator{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateAggregatorThroughForm(t *testing.T) {
	r := setupServer(t)
	token := registerUser(t, r, "alice")
	cookies := loginCookies(t, r, "alice")

	created := createAggregator(t, r, token, "Yandex", "+70001")
	id := created["id"].(string)

	w := doForm(t, r, http.MethodGet, "/update_aggregator/"+id+"/", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Yandex"`)

	w = doForm(t, r, http.MethodPost, "/update_aggregator/"+id+"/", url.Values{
		"name":  {"Uber"},
		"phone": {"+70001"},
	}, cookies)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/aggregator/"+id+"/", w.Header().Get("Location"))

	var agg models.Aggregator
	require.NoError(t, config.DB.First(&agg, "id = ?", id).Error)
	assert.Equal(t, "Uber", agg.Name)
}

func TestCreateOrderThroughForm(t *testing.T) {
	r := setupServer(t)
	token := registerUser(t, r, "alice")
	cookies := loginCookies(t, r, "alice")
	driver := createTaxiDriver(t, r, token, gin.H{"first_name": "Ivan", "last_name": "Petrov"})

	w := doForm(t, r, http.MethodPost, "/create_order/", url.Values{
		"name":                {"evening ride"},
		"cost":                {"12.50"},
		"pickup_address":      {"Lenina 1"},
		"destination_address": {"Mira 2"},
		"taxi_driver":         {driver["id"].(string)},
	}, cookies)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "/orders/", w.Header().Get("Location"))

	var order models.Order
	require.NoError(t, config.DB.Where("name = ?", "evening ride").First(&order).Error)
	assert.Equal(t, driver["id"].(string), order.TaxiDriverID)
}

func TestListAndDetailPagesAreOpen(t *testing.T) {
	r := setupServer(t)
	token := registerUser(t, r, "alice")

	created := createAggregator(t, r, token, "Yandex", "+70001")
	id := created["id"].(string)

	w := doForm(t, r, http.MethodGet, "/aggregators/", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Yandex")

	w = doForm(t, r, http.MethodGet, "/aggregator/"+id+"/", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "+70001")

	w = doForm(t, r, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
