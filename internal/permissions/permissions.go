// Package permissions implements the owner-or-staff policy applied to
// every mutating request. Safe (read) methods always pass; unsafe
// methods pass only for staff or the record's owning user.
package permissions

import (
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"taxi_orders/internal/models"
)

// Principal is the authenticated caller, carried explicitly through
// every check instead of being looked up from ambient state.
type Principal struct {
	ID      uint
	IsStaff bool
}

var safeMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// Allow reports whether the principal may perform method on a record
// owned by ownerID.
func Allow(method string, p Principal, ownerID uint) bool {
	if safeMethods[method] {
		return true
	}
	return p.IsStaff || p.ID == ownerID
}

// Owner resolves the owning user of any domain record. Orders and
// affiliations resolve transitively through their taxi driver, which
// keeps Allow entity-agnostic.
func Owner(db *gorm.DB, record any) (uint, error) {
	switch r := record.(type) {
	case *models.Aggregator:
		return r.UserID, nil
	case *models.TaxiDriver:
		return r.UserID, nil
	case *models.Order:
		return driverOwner(db, r.TaxiDriverID)
	case *models.TaxiDriverAggregator:
		return driverOwner(db, r.TaxiDriverID)
	default:
		return 0, fmt.Errorf("permissions: no owner resolver for %T", record)
	}
}

func driverOwner(db *gorm.DB, driverID string) (uint, error) {
	var driver models.TaxiDriver
	if err := db.Select("user_id").First(&driver, "id = ?", driverID).Error; err != nil {
		return 0, err
	}
	return driver.UserID, nil
}
