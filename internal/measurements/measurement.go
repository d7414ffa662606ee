package measurements

import (
	"time"

	"github.com/2beens/fittracker/internal/fitcalc"
)

type BodyMeasurement struct {
	ID                int        `json:"id"`
	Date              time.Time  `json:"date"`
	WeightPounds      float64    `json:"weightPounds"`
	HeightInches      *float64   `json:"heightInches,omitempty"`
	WaistInches       *float64   `json:"waistInches,omitempty"`
	NeckInches        *float64   `json:"neckInches,omitempty"`
	BMI               *float64   `json:"bmi,omitempty"`
	BodyFatPercentage *float64   `json:"bodyFatPercentage,omitempty"`
	IsMale            bool       `json:"isMale"`
	Notes             string     `json:"notes,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// DeriveMetrics recomputes bmi and body fat from the raw inputs.
// Missing or implausible inputs leave the derived fields unset.
func (m *BodyMeasurement) DeriveMetrics() {
	m.BMI = nil
	m.BodyFatPercentage = nil

	if m.HeightInches != nil {
		if bmi, ok := fitcalc.BMI(m.WeightPounds, *m.HeightInches); ok {
			m.BMI = &bmi
		}
	}

	if m.HeightInches != nil && m.WaistInches != nil && m.NeckInches != nil {
		if pct, ok := fitcalc.BodyFatPercentage(*m.WaistInches, *m.NeckInches, *m.HeightInches, m.IsMale); ok {
			m.BodyFatPercentage = &pct
		}
	}
}

func (m *BodyMeasurement) BMICategory() *fitcalc.BMICategory {
	if m.BMI == nil {
		return nil
	}
	category := fitcalc.CategoryForBMI(*m.BMI)
	return &category
}

func (m *BodyMeasurement) BodyFatCategory() *fitcalc.BodyFatCategory {
	if m.BodyFatPercentage == nil {
		return nil
	}
	category := fitcalc.CategoryForBodyFat(*m.BodyFatPercentage, m.IsMale)
	return &category
}
