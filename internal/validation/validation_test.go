package validation

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taxi_orders/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Aggregator{},
		&models.TaxiDriver{},
		&models.TaxiDriverAggregator{},
		&models.Order{},
	))
	return db
}

func TestAggregatorCollectsAllViolations(t *testing.T) {
	db := testDB(t)

	agg := models.Aggregator{
		Name:  strings.Repeat("x", 101),
		Phone: "",
	}
	errs := Aggregator(db, &agg)
	assert.Contains(t, errs["name"], "Must not exceed 100 characters")
	assert.Contains(t, errs["phone"], "This field is required")
	assert.Len(t, errs, 2)
}

func TestAggregatorUniqueness(t *testing.T) {
	db := testDB(t)
	existing := models.Aggregator{Name: "Yandex", Phone: "+7000", UserID: 1}
	require.NoError(t, db.Create(&existing).Error)

	dup := models.Aggregator{Name: "Yandex", Phone: "+7000", UserID: 2}
	errs := Aggregator(db, &dup)
	assert.Contains(t, errs["name"], "Already exists")
	assert.Contains(t, errs["phone"], "Already exists")

	// The record itself is excluded, so re-validating an update that
	// keeps its fields passes.
	errs = Aggregator(db, &existing)
	assert.Empty(t, errs)
}

func TestTaxiDriverRules(t *testing.T) {
	errs := TaxiDriver(&models.TaxiDriver{})
	assert.Contains(t, errs["first_name"], "This field is required")
	assert.Contains(t, errs["last_name"], "This field is required")

	errs = TaxiDriver(&models.TaxiDriver{
		FirstName:   "Ivan",
		LastName:    "Petrov",
		PhoneNumber: strings.Repeat("1", 16),
		Car:         strings.Repeat("c", 101),
	})
	assert.Contains(t, errs["phone_number"], "Must not exceed 15 characters")
	assert.Contains(t, errs["car"], "Must not exceed 100 characters")
}

func TestOrderRejectsNegativeCost(t *testing.T) {
	db := testDB(t)
	driver := models.TaxiDriver{FirstName: "Ivan", LastName: "Petrov", UserID: 1}
	require.NoError(t, db.Create(&driver).Error)

	order := models.Order{
		Name:         "ride",
		Date:         time.Now().Add(-time.Hour),
		Cost:         decimal.NewFromInt(-5),
		TaxiDriverID: driver.ID,
	}
	errs := Order(db, &order)
	assert.Contains(t, errs["cost"], "Must not be negative")
}

func TestOrderCostDigitsAndScale(t *testing.T) {
	db := testDB(t)
	driver := models.TaxiDriver{FirstName: "Ivan", LastName: "Petrov", UserID: 1}
	require.NoError(t, db.Create(&driver).Error)

	order := models.Order{
		Name:         "ride",
		Cost:         decimal.RequireFromString("12345678901"),
		TaxiDriverID: driver.ID,
	}
	errs := Order(db, &order)
	assert.Contains(t, errs["cost"], "Must not exceed 10 digits")

	order.Cost = decimal.RequireFromString("1.234")
	errs = Order(db, &order)
	assert.Contains(t, errs["cost"], "Must not have more than 2 decimal places")
}

func TestOrderRejectsFutureDate(t *testing.T) {
	db := testDB(t)
	driver := models.TaxiDriver{FirstName: "Ivan", LastName: "Petrov", UserID: 1}
	require.NoError(t, db.Create(&driver).Error)

	order := models.Order{
		Name:         "ride",
		Date:         time.Now().Add(time.Hour),
		TaxiDriverID: driver.ID,
	}
	errs := Order(db, &order)
	assert.Contains(t, errs["date"], "Must not be in the future")
}

func TestOrderRequiresExistingDriver(t *testing.T) {
	db := testDB(t)

	errs := Order(db, &models.Order{Name: "ride"})
	assert.Contains(t, errs["taxi_driver"], "This field is required")

	errs = Order(db, &models.Order{Name: "ride", TaxiDriverID: "no-such-id"})
	assert.Contains(t, errs["taxi_driver"], "Taxi driver does not exist")
}

func TestAffiliationPairUniqueness(t *testing.T) {
	db := testDB(t)
	driver := models.TaxiDriver{FirstName: "Ivan", LastName: "Petrov", UserID: 1}
	require.NoError(t, db.Create(&driver).Error)
	agg := models.Aggregator{Name: "Yandex", Phone: "+7000", UserID: 1}
	require.NoError(t, db.Create(&agg).Error)

	rel := models.TaxiDriverAggregator{TaxiDriverID: driver.ID, AggregatorID: agg.ID}
	require.Empty(t, Affiliation(db, &rel))
	require.NoError(t, db.Create(&rel).Error)

	dup := models.TaxiDriverAggregator{TaxiDriverID: driver.ID, AggregatorID: agg.ID}
	errs := Affiliation(db, &dup)
	assert.Contains(t, errs["aggregator"], "Already exists")

	// Re-validating the stored row itself still passes.
	assert.Empty(t, Affiliation(db, &rel))
}
