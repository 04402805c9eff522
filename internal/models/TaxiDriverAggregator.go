package models

// TaxiDriverAggregator links one taxi driver to one aggregator.
// The (taxi_driver, aggregator) pair is unique; deleting either
// parent removes the row.
type TaxiDriverAggregator struct {
	ID uint `json:"id" gorm:"primaryKey"`

	TaxiDriverID string `json:"taxi_driver" gorm:"type:uuid;uniqueIndex:idx_driver_aggregator"`
	AggregatorID string `json:"aggregator" gorm:"type:uuid;uniqueIndex:idx_driver_aggregator"`

	TaxiDriver TaxiDriver `json:"-" gorm:"foreignKey:TaxiDriverID;constraint:OnDelete:CASCADE"`
	Aggregator Aggregator `json:"-" gorm:"foreignKey:AggregatorID;constraint:OnDelete:CASCADE"`
}
