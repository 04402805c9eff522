// Package validation evaluates every field rule for a submission and
// returns the full set of violations together, so nothing is persisted
// unless the whole record is clean.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"taxi_orders/internal/models"
)

const (
	nameLengthMax    = 50
	titleLengthMax   = 100
	phoneLengthMax   = 15
	addressLengthMax = 250

	costDigitsMax   = 10
	costDecimalsMax = 2
)

const (
	msgRequired  = "This field is required"
	msgNotFuture = "Must not be in the future"
)

// Errors maps field names to their violation messages.
type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msgs := range e {
		parts = append(parts, field+": "+strings.Join(msgs, "; "))
	}
	return strings.Join(parts, ", ")
}

func maxLengthMsg(limit int) string {
	return fmt.Sprintf("Must not exceed %d characters", limit)
}

func checkLength(errs Errors, field, value string, limit int) {
	if utf8.RuneCountInString(value) > limit {
		errs.Add(field, maxLengthMsg(limit))
	}
}

func checkUnique(db *gorm.DB, errs Errors, model any, field, value, excludeID string) {
	if value == "" {
		return
	}
	var count int64
	q := db.Model(model).Where(field+" = ?", value)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		errs.Add(field, "Could not verify uniqueness")
		return
	}
	if count > 0 {
		errs.Add(field, "Already exists")
	}
}

// Aggregator validates name and phone: required, length ceilings and
// uniqueness against existing records (the record itself excluded, so
// updates that keep a field pass).
func Aggregator(db *gorm.DB, a *models.Aggregator) Errors {
	errs := Errors{}
	if a.Name == "" {
		errs.Add("name", msgRequired)
	}
	checkLength(errs, "name", a.Name, titleLengthMax)
	checkUnique(db, errs, &models.Aggregator{}, "name", a.Name, a.ID)

	if a.Phone == "" {
		errs.Add("phone", msgRequired)
	}
	checkLength(errs, "phone", a.Phone, phoneLengthMax)
	checkUnique(db, errs, &models.Aggregator{}, "phone", a.Phone, a.ID)

	if !a.Created.IsZero() && a.Created.After(time.Now()) {
		errs.Add("created", msgNotFuture)
	}
	return errs
}

// TaxiDriver validates names (required) and the optional phone/car fields.
func TaxiDriver(d *models.TaxiDriver) Errors {
	errs := Errors{}
	if d.FirstName == "" {
		errs.Add("first_name", msgRequired)
	}
	checkLength(errs, "first_name", d.FirstName, nameLengthMax)

	if d.LastName == "" {
		errs.Add("last_name", msgRequired)
	}
	checkLength(errs, "last_name", d.LastName, nameLengthMax)

	checkLength(errs, "phone_number", d.PhoneNumber, phoneLengthMax)
	checkLength(errs, "car", d.Car, titleLengthMax)
	return errs
}

// Affiliation validates a driver-aggregator link: both ends must exist
// and the pair must be unique.
func Affiliation(db *gorm.DB, rel *models.TaxiDriverAggregator) Errors {
	errs := Errors{}
	if rel.TaxiDriverID == "" {
		errs.Add("taxi_driver", msgRequired)
	} else if !exists(db, &models.TaxiDriver{}, rel.TaxiDriverID) {
		errs.Add("taxi_driver", "Taxi driver does not exist")
	}
	if rel.AggregatorID == "" {
		errs.Add("aggregator", msgRequired)
	} else if !exists(db, &models.Aggregator{}, rel.AggregatorID) {
		errs.Add("aggregator", "Aggregator does not exist")
	}
	if len(errs) > 0 {
		return errs
	}

	var count int64
	q := db.Model(&models.TaxiDriverAggregator{}).
		Where("taxi_driver_id = ? AND aggregator_id = ?", rel.TaxiDriverID, rel.AggregatorID)
	if rel.ID != 0 {
		q = q.Where("id <> ?", rel.ID)
	}
	if err := q.Count(&count).Error; err == nil && count > 0 {
		errs.Add("aggregator", "Already exists")
	}
	return errs
}

// Order validates name, date, cost, addresses and the assigned driver.
func Order(db *gorm.DB, o *models.Order) Errors {
	errs := Errors{}
	if o.Name == "" {
		errs.Add("name", msgRequired)
	}
	checkLength(errs, "name", o.Name, titleLengthMax)
	checkUnique(db, errs, &models.Order{}, "name", o.Name, o.ID)

	if !o.Date.IsZero() && o.Date.After(time.Now()) {
		errs.Add("date", msgNotFuture)
	}
	if !o.Created.IsZero() && o.Created.After(time.Now()) {
		errs.Add("created", msgNotFuture)
	}

	if o.Cost.IsNegative() {
		errs.Add("cost", "Must not be negative")
	}
	if o.Cost.Exponent() < -costDecimalsMax {
		errs.Add("cost", fmt.Sprintf("Must not have more than %d decimal places", costDecimalsMax))
	}
	if int(o.Cost.NumDigits()) > costDigitsMax {
		errs.Add("cost", fmt.Sprintf("Must not exceed %d digits", costDigitsMax))
	}

	checkLength(errs, "pickup_address", o.PickupAddress, addressLengthMax)
	checkLength(errs, "destination_address", o.DestinationAddress, addressLengthMax)

	if o.TaxiDriverID == "" {
		errs.Add("taxi_driver", msgRequired)
	} else if !exists(db, &models.TaxiDriver{}, o.TaxiDriverID) {
		errs.Add("taxi_driver", "Taxi driver does not exist")
	}
	return errs
}

func exists(db *gorm.DB, model any, id string) bool {
	err := db.Select("id").First(model, "id = ?", id).Error
	return !errors.Is(err, gorm.ErrRecordNotFound)
}
