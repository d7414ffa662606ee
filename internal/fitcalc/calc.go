// Package fitcalc holds the pure body composition and strength math.
// All functions are deterministic and side effect free, bad input yields
// an explicit "not available" result instead of an error.
package fitcalc

import "math"

const (
	poundsToKg     = 0.453592
	inchesToMeters = 0.0254
)

type BMICategory string

const (
	BMIUnderweight  BMICategory = "Underweight"
	BMINormalWeight BMICategory = "Normal weight"
	BMIOverweight   BMICategory = "Overweight"
	BMIObese        BMICategory = "Obese"
)

type BodyFatCategory string

const (
	BodyFatEssentialFat BodyFatCategory = "Essential fat"
	BodyFatAthlete      BodyFatCategory = "Athlete"
	BodyFatFitness      BodyFatCategory = "Fitness"
	BodyFatAverage      BodyFatCategory = "Average"
	BodyFatObese        BodyFatCategory = "Obese"
)

// BMI returns the body mass index for imperial inputs, rounded to one
// decimal. The second return value is false when the index cannot be
// computed (missing or non-positive weight or height).
func BMI(weightPounds, heightInches float64) (float64, bool) {
	if weightPounds <= 0 || heightInches <= 0 {
		return 0, false
	}
	kg := weightPounds * poundsToKg
	m := heightInches * inchesToMeters
	return roundToOneDecimal(kg / (m * m)), true
}

func CategoryForBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormalWeight
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// BodyFatPercentage estimates body fat via the US Navy circumference
// method. Only the male formula is supported, the female variant needs a
// hip measurement which is not collected. Returns false when any input is
// non-positive, when waist does not exceed neck, for female subjects, or
// when the estimate falls outside the plausible [0, 50] range.
func BodyFatPercentage(waistInches, neckInches, heightInches float64, isMale bool) (float64, bool) {
	if !isMale {
		return 0, false
	}
	if waistInches <= 0 || neckInches <= 0 || heightInches <= 0 {
		return 0, false
	}
	if waistInches <= neckInches {
		return 0, false
	}

	pct := 86.010*math.Log10(waistInches-neckInches) - 70.041*math.Log10(heightInches) + 36.76
	// the plausibility check runs on the raw estimate, rounding must not
	// pull a value just above 50 back into range
	if pct < 0 || pct > 50 {
		return 0, false
	}
	return roundToOneDecimal(pct), true
}

func CategoryForBodyFat(pct float64, isMale bool) BodyFatCategory {
	if isMale {
		switch {
		case pct < 6:
			return BodyFatEssentialFat
		case pct < 14:
			return BodyFatAthlete
		case pct < 18:
			return BodyFatFitness
		case pct < 25:
			return BodyFatAverage
		default:
			return BodyFatObese
		}
	}
	switch {
	case pct < 14:
		return BodyFatEssentialFat
	case pct < 21:
		return BodyFatAthlete
	case pct < 25:
		return BodyFatFitness
	case pct < 32:
		return BodyFatAverage
	default:
		return BodyFatObese
	}
}

// OneRepMax estimates the one rep max via the Epley formula. For a single
// rep (or less) the lifted weight is returned unchanged.
func OneRepMax(weight float64, reps int) float64 {
	if reps <= 1 {
		return weight
	}
	return weight * (1 + float64(reps)/30)
}

func roundToOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
