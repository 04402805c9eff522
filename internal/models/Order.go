// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is a taxi ride booked against a driver. Ownership is
// transitive: the order belongs to whoever owns its driver.
type Order struct {
	ID      string    `json:"id" gorm:"type:uuid;primaryKey"`
	Created time.Time `json:"created" gorm:"autoCreateTime"`

	Name               string          `json:"name" gorm:"uniqueIndex;size:100"`
	Date               time.Time       `json:"date"`
	Cost               decimal.Decimal `json:"cost" gorm:"type:numeric(10,2)"`
	PickupAddress      string          `json:"pickup_address" gorm:"size:250"`
	DestinationAddress string          `json:"destination_address" gorm:"size:250"`

	TaxiDriverID string     `json:"taxi_driver" gorm:"type:uuid;index"`
	TaxiDriver   TaxiDriver `json:"-" gorm:"foreignKey:TaxiDriverID;constraint:OnDelete:CASCADE"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Date.IsZero() {
		o.Date = time.Now().UTC()
	}
	return nil
}
