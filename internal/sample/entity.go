// AngelaMos | 2026
// entity.go

package sample

import (
	"time"
)

type Sample struct {
	ID                string    `db:"id"`
	SampleID          int64     `db:"sample_id"`
	InstitutionName   string    `db:"institution_name"`
	RollNumber        string    `db:"roll_number"`
	Name              string    `db:"name"`
	Category          Category  `db:"category"`
	DurationMinutes   float64   `db:"duration_minutes"`
	AcidityLevel      float64   `db:"acidity_level"`
	SecondaryLevel    *float64  `db:"secondary_level"`
	Temperature       float64   `db:"temperature"`
	SubstanceDetected *string   `db:"substance_detected"`
	CreatedBy         string    `db:"created_by"`
	CreatedAt         time.Time `db:"created_at"`
}

// Listed is a sample joined with the name and email of its creator.
type Listed struct {
	Sample
	CreatorName  string `db:"creator_name"`
	CreatorEmail string `db:"creator_email"`
}

type CategoryCount struct {
	Category Category `db:"category" json:"category"`
	Count    int      `db:"count"    json:"count"`
}
