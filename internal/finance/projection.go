package finance

import (
	"math"

	"autovest/internal/domain"
)

// Supuestos del escenario de proyección que arma el asesor.
const (
	DefaultProjectionYears = 20
	DefaultAnnualReturn    = 7.5
)

var milestoneYears = []int{5, 10, 15}

// FutureValue es el valor futuro de una anualidad ordinaria con aporte
// mensual. Con tasa cero es exactamente monthly*months.
func FutureValue(monthly float64, months int, annualRatePercent float64) float64 {
	if months <= 0 {
		return 0
	}
	r := annualRatePercent / 12 / 100
	if r == 0 {
		return monthly * float64(months)
	}
	return monthly * ((math.Pow(1+r, float64(months)) - 1) / r)
}

// Project calcula la proyección y los hitos a 5, 10, 15 años y al horizonte.
// Cada hito se calcula de forma independiente y un año aparece una sola vez.
func Project(monthly float64, years int, annualRatePercent float64) domain.WealthProjectionResult {
	res := domain.WealthProjectionResult{
		MonthlyAmount:     monthly,
		Years:             years,
		AnnualRatePercent: annualRatePercent,
		Milestones:        []domain.Milestone{},
	}
	if years <= 0 {
		return res
	}

	months := years * 12
	res.TotalInvested = monthly * float64(months)
	res.ProjectedValue = FutureValue(monthly, months, annualRatePercent)
	res.TotalGain = res.ProjectedValue - res.TotalInvested

	checkpoints := append(append([]int{}, milestoneYears...), years)
	seen := make(map[int]bool, len(checkpoints))
	for _, y := range checkpoints {
		if y > years || seen[y] {
			continue
		}
		seen[y] = true
		res.Milestones = append(res.Milestones, domain.Milestone{
			Year:  y,
			Value: FutureValue(monthly, y*12, annualRatePercent),
		})
	}
	return res
}
