package fitcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBMI(t *testing.T) {
	bmi, ok := BMI(154, 70)
	require.True(t, ok)
	assert.InDelta(t, 22.1, bmi, 0.1)

	bmi, ok = BMI(200, 70)
	require.True(t, ok)
	assert.InDelta(t, 28.7, bmi, 0.1)

	for _, tc := range []struct {
		name   string
		weight float64
		height float64
	}{
		{name: "zero weight", weight: 0, height: 70},
		{name: "zero height", weight: 154, height: 0},
		{name: "negative weight", weight: -10, height: 70},
		{name: "negative height", weight: 154, height: -1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := BMI(tc.weight, tc.height)
			assert.False(t, ok)
		})
	}
}

func TestCategoryForBMI(t *testing.T) {
	assert.Equal(t, BMIUnderweight, CategoryForBMI(18.4))
	assert.Equal(t, BMINormalWeight, CategoryForBMI(18.5))
	assert.Equal(t, BMINormalWeight, CategoryForBMI(24.9))
	assert.Equal(t, BMIOverweight, CategoryForBMI(25))
	assert.Equal(t, BMIOverweight, CategoryForBMI(29.9))
	assert.Equal(t, BMIObese, CategoryForBMI(30))
	assert.Equal(t, BMIObese, CategoryForBMI(45.2))
}

func TestBodyFatPercentage(t *testing.T) {
	pct, ok := BodyFatPercentage(34, 15, 70, true)
	require.True(t, ok)
	assert.InDelta(t, 17.5, pct, 0.01)

	// female formula needs a hip measurement, not supported
	_, ok = BodyFatPercentage(34, 15, 70, false)
	assert.False(t, ok)

	// waist must exceed neck
	_, ok = BodyFatPercentage(15, 34, 70, true)
	assert.False(t, ok)
	_, ok = BodyFatPercentage(34, 34, 70, true)
	assert.False(t, ok)

	_, ok = BodyFatPercentage(0, 15, 70, true)
	assert.False(t, ok)
	_, ok = BodyFatPercentage(34, 0, 70, true)
	assert.False(t, ok)
	_, ok = BodyFatPercentage(34, 15, 0, true)
	assert.False(t, ok)

	// implausible estimate (huge waist to neck difference)
	_, ok = BodyFatPercentage(90, 10, 70, true)
	assert.False(t, ok)

	// a raw estimate just above 50 is rejected even though it would
	// round down to 50.0
	_, ok = BodyFatPercentage(60.36, 15, 70, true)
	assert.False(t, ok)
}

func TestCategoryForBodyFat(t *testing.T) {
	// male thresholds
	assert.Equal(t, BodyFatEssentialFat, CategoryForBodyFat(5, true))
	assert.Equal(t, BodyFatAthlete, CategoryForBodyFat(6, true))
	assert.Equal(t, BodyFatAthlete, CategoryForBodyFat(13.9, true))
	assert.Equal(t, BodyFatFitness, CategoryForBodyFat(14, true))
	assert.Equal(t, BodyFatAverage, CategoryForBodyFat(18, true))
	assert.Equal(t, BodyFatObese, CategoryForBodyFat(25, true))

	// female thresholds
	assert.Equal(t, BodyFatEssentialFat, CategoryForBodyFat(13, false))
	assert.Equal(t, BodyFatAthlete, CategoryForBodyFat(14, false))
	assert.Equal(t, BodyFatFitness, CategoryForBodyFat(21, false))
	assert.Equal(t, BodyFatAverage, CategoryForBodyFat(25, false))
	assert.Equal(t, BodyFatObese, CategoryForBodyFat(32, false))
}

func TestOneRepMax(t *testing.T) {
	assert.Equal(t, float64(100), OneRepMax(100, 1))
	assert.Equal(t, float64(100), OneRepMax(100, 0))
	assert.InDelta(t, 133.33, OneRepMax(100, 10), 0.01)
	assert.InDelta(t, 116.67, OneRepMax(100, 5), 0.01)
	assert.Equal(t, float64(0), OneRepMax(0, 10))
}
