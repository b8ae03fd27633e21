package wellness

import "math"

// BMI categories (WHO adult classification).
const (
	BMIUnderweight = "Underweight"
	BMINormal      = "Normal weight"
	BMIOverweight  = "Overweight"
	BMIObese       = "Obese"
)

// BMI returns the body mass index rounded to one decimal and its category.
// It returns 0 and "" when either measurement is not positive.
func BMI(weightKg, heightCm float64) (float64, string) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, ""
	}
	m := heightCm / 100
	bmi := math.Round(weightKg/(m*m)*10) / 10

	switch {
	case bmi < 18.5:
		return bmi, BMIUnderweight
	case bmi < 25:
		return bmi, BMINormal
	case bmi < 30:
		return bmi, BMIOverweight
	}
	return bmi, BMIObese
}
