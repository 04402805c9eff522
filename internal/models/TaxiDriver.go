// internal/models/taxi_driver.go
package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaxiDriver struct {
	ID string `json:"id" gorm:"type:uuid;primaryKey"`

	FirstName   string `json:"first_name" gorm:"size:50"`
	LastName    string `json:"last_name" gorm:"size:50"`
	PhoneNumber string `json:"phone_number" gorm:"size:15"`
	Car         string `json:"car" gorm:"size:100"` // make and plate

	UserID uint `json:"user_id" gorm:"index"`
	User   User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	// Associations; deleting the driver cascades both.
	Aggregators []TaxiDriverAggregator `json:"aggregators,omitempty" gorm:"foreignKey:TaxiDriverID;constraint:OnDelete:CASCADE"`
	Orders      []Order                `json:"orders,omitempty" gorm:"foreignKey:TaxiDriverID;constraint:OnDelete:CASCADE"`
}

func (d *TaxiDriver) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
