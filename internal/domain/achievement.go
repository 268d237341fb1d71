package domain

import "github.com/shopspring/decimal"

// Achievement compares realized and expected performance against a target.
// Percentages are left unrounded; every ratio is zero when the target is not positive.
type Achievement struct {
	AchievementPercent         float64         `json:"achievementPercent"`
	Variance                   decimal.Decimal `json:"variance"`
	VariancePercent            float64         `json:"variancePercent"`
	ExpectedAchievementPercent float64         `json:"expectedAchievementPercent"`
}

// CalculateAchievement derives achievement and variance figures from a
// display target, an actual value and a probability-weighted expected value
func CalculateAchievement(target, actual, expected decimal.Decimal) Achievement {
	variance := actual.Sub(target)
	result := Achievement{Variance: variance}
	if !target.IsPositive() {
		return result
	}

	t := target.InexactFloat64()
	result.AchievementPercent = actual.InexactFloat64() / t * 100
	result.VariancePercent = variance.InexactFloat64() / t * 100
	result.ExpectedAchievementPercent = expected.InexactFloat64() / t * 100
	return result
}
