// internal/models/aggregator.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Aggregator represents a dispatch company that taxi drivers
// can be affiliated with through TaxiDriverAggregator rows.
type Aggregator struct {
	ID      string    `json:"id" gorm:"type:uuid;primaryKey"`
	Created time.Time `json:"created" gorm:"autoCreateTime"`

	Name  string `json:"name" gorm:"uniqueIndex;size:100"`
	Phone string `json:"phone" gorm:"uniqueIndex;size:15"`

	UserID uint `json:"user_id" gorm:"index"`
	User   User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	// Affiliations
	TaxiDrivers []TaxiDriverAggregator `json:"taxi_drivers,omitempty" gorm:"foreignKey:AggregatorID;constraint:OnDelete:CASCADE"`
}

func (a *Aggregator) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
