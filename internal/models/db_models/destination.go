package db_models

import (
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// Destination is the immutable reference row the matcher scores against.
// Activity features use a 1-5 scale; IsCoastal is 0/0.5/1.
type Destination struct {
	BaseModel
	CatalogOrder    int            `gorm:"uniqueIndex" json:"catalog_order"`
	City            string         `gorm:"index:idx_city_country,unique" json:"city"`
	Country         string         `gorm:"index:idx_city_country,unique" json:"country"`
	Continent       string         `json:"continent"`
	IataCode        string         `json:"iata_code"`
	Latitude        float64        `json:"latitude"`
	Longitude       float64        `json:"longitude"`
	AvgBudgetPerDay float64        `json:"avg_budget_per_day"`
	FlightPrice     float64        `json:"flight_price"`
	Population      string         `json:"population"`
	Safety          float64        `json:"safety"`
	VisaEasy        bool           `json:"visa_easy"`
	EnglishLevel    float64        `json:"english_level"`
	Climate         string         `json:"climate"`
	BestMonths      pq.StringArray `gorm:"type:text[]" json:"best_months"`
	Crowds          float64        `json:"crowds"`
	IsCoastal       float64        `json:"is_coastal"`
	Beach           float64        `json:"beach"`
	Culture         float64        `json:"culture"`
	Nature          float64        `json:"nature"`
	Food            float64        `json:"food"`
	Nightlife       float64        `json:"nightlife"`
	Adventure       float64        `json:"adventure"`
	Romance         float64        `json:"romance"`
	Family          float64        `json:"family"`

	// FeatureVec mirrors Features() in MatchingFeatureOrder, kept in sync on
	// import so catalog-wide nearest-neighbour queries can run in Postgres.
	FeatureVec pgvector.Vector `gorm:"type:vector(11)" json:"-"`
}

// MatchingFeatureOrder fixes the dimension order of FeatureVec and of every
// normalized feature-space computation.
var MatchingFeatureOrder = []string{
	"safety",
	"english_level",
	"crowds",
	"beach",
	"culture",
	"nature",
	"food",
	"nightlife",
	"adventure",
	"romance",
	"family",
}

const BudgetFeature = "avg_budget_per_day"

// Features returns the numeric matching features plus the daily budget,
// keyed the way the scoring code addresses them.
func (d *Destination) Features() map[string]float64 {
	return map[string]float64{
		"safety":        d.Safety,
		"english_level": d.EnglishLevel,
		"crowds":        d.Crowds,
		"beach":         d.Beach,
		"culture":       d.Culture,
		"nature":        d.Nature,
		"food":          d.Food,
		"nightlife":     d.Nightlife,
		"adventure":     d.Adventure,
		"romance":       d.Romance,
		"family":        d.Family,
		BudgetFeature:   d.AvgBudgetPerDay,
	}
}

// RefreshFeatureVec rebuilds the pgvector column from the current feature
// values. Call after any mutation of the matching features.
func (d *Destination) RefreshFeatureVec() {
	features := d.Features()
	vec := make([]float32, len(MatchingFeatureOrder))
	for i, name := range MatchingFeatureOrder {
		vec[i] = float32(features[name])
	}
	d.FeatureVec = pgvector.NewVector(vec)
}

func (d *Destination) TableName() string {
	return "destinations"
}
