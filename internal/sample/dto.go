// AngelaMos | 2026
// dto.go

package sample

import (
	"time"
)

// SubmitRequest carries the operator-entered fields of a sample. Sample id,
// category, owner and timestamp are computed server-side.
type SubmitRequest struct {
	InstitutionName   string   `json:"institution_name"   validate:"required,min=1,max=255"`
	RollNumber        string   `json:"roll_number"        validate:"required,min=1,max=255"`
	Name              string   `json:"name"               validate:"required,min=1,max=255"`
	DurationMinutes   *float64 `json:"duration_minutes"   validate:"required,min=0,max=60"`
	AcidityLevel      *float64 `json:"acidity_level"      validate:"required,min=1,max=14"`
	SecondaryLevel    *float64 `json:"secondary_level"`
	Temperature       *float64 `json:"temperature"        validate:"required"`
	SubstanceDetected *string  `json:"substance_detected" validate:"omitempty,max=255"`
}

type SampleResponse struct {
	ID                string    `json:"id"`
	SampleID          int64     `json:"sample_id"`
	InstitutionName   string    `json:"institution_name"`
	RollNumber        string    `json:"roll_number"`
	Name              string    `json:"name"`
	Category          Category  `json:"category"`
	DurationMinutes   float64   `json:"duration_minutes"`
	AcidityLevel      float64   `json:"acidity_level"`
	SecondaryLevel    *float64  `json:"secondary_level,omitempty"`
	Temperature       float64   `json:"temperature"`
	SubstanceDetected *string   `json:"substance_detected,omitempty"`
	CreatedBy         string    `json:"created_by"`
	CreatedAt         time.Time `json:"created_at"`
}

type CreatorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ListedResponse struct {
	SampleResponse
	Creator CreatorResponse `json:"creator"`
}

type StatsResponse struct {
	Total      int             `json:"total"`
	Categories []CategoryCount `json:"categories"`
}

func ToSampleResponse(s *Sample) SampleResponse {
	return SampleResponse{
		ID:                s.ID,
		SampleID:          s.SampleID,
		InstitutionName:   s.InstitutionName,
		RollNumber:        s.RollNumber,
		Name:              s.Name,
		Category:          s.Category,
		DurationMinutes:   s.DurationMinutes,
		AcidityLevel:      s.AcidityLevel,
		SecondaryLevel:    s.SecondaryLevel,
		Temperature:       s.Temperature,
		SubstanceDetected: s.SubstanceDetected,
		CreatedBy:         s.CreatedBy,
		CreatedAt:         s.CreatedAt,
	}
}

func ToListedResponseList(samples []Listed) []ListedResponse {
	out := make([]ListedResponse, 0, len(samples))
	for _, s := range samples {
		out = append(out, ListedResponse{
			SampleResponse: ToSampleResponse(&s.Sample),
			Creator: CreatorResponse{
				ID:    s.CreatedBy,
				Name:  s.CreatorName,
				Email: s.CreatorEmail,
			},
		})
	}
	return out
}
