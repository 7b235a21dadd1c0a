package db_models

// Itinerary stores a generated document. Provider results (hotels, flights,
// fashion) are merged into Providers by key.
type Itinerary struct {
	BaseModel
	Destination string `gorm:"type:varchar(255);index"`
	Document    string `gorm:"type:jsonb;not null"`
	Preferences string `gorm:"type:jsonb"`
	Providers   string `gorm:"type:jsonb;not null"`
}

func (Itinerary) TableName() string { return "itineraries" }
