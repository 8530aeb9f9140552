package inventory

import "math"

// Threshold policy constants. Breach and replenishment targets are fixed
// percentages of static capacity across stores and regional warehouses; the
// flat fallback covers records whose capacity is unknown.
const (
	BreachRatio = 0.3
	TargetRatio = 0.9
	UrgentRatio = 0.5

	FallbackThreshold = 50
	FallbackTarget    = 100
)

// Severity levels for replenishment alerts.
const (
	LevelWarning = "warning"
	LevelDanger  = "danger"
)

// Evaluation is the outcome of the threshold policy for one record.
type Evaluation struct {
	Breached   bool
	Threshold  int // rounded-up breach threshold (30% of capacity, or flat 50)
	Suggested  int // units needed to replenish toward 90% capacity, never < 0
	Shortage   int // units below the breach threshold, never < 0
	Level      string
	LevelLabel string
}

// Evaluate applies the 30% rule: a record is breached when available falls
// below 30% of total capacity, and the suggested quantity replenishes toward
// 90% capacity. Records with unknown capacity use the flat fallback
// threshold/target instead. Pure function; no storage access.
func Evaluate(totalStock, available int) Evaluation {
	if totalStock > 0 {
		threshold := float64(totalStock) * BreachRatio
		ev := Evaluation{
			Breached:  float64(available) < threshold,
			Threshold: int(math.Ceil(threshold)),
			Suggested: clampCeil(float64(totalStock)*TargetRatio - float64(available)),
			Shortage:  clampCeil(threshold - float64(available)),
		}
		ev.Level, ev.LevelLabel = severity(float64(available) < threshold*UrgentRatio)
		return ev
	}

	ev := Evaluation{
		Breached:  available < FallbackThreshold,
		Threshold: FallbackThreshold,
		Suggested: clampCeil(float64(FallbackTarget - available)),
		Shortage:  clampCeil(float64(FallbackThreshold - available)),
	}
	ev.Level, ev.LevelLabel = severity(float64(available) < FallbackThreshold*UrgentRatio)
	return ev
}

func severity(urgent bool) (level, label string) {
	if urgent {
		return LevelDanger, "Urgent"
	}
	return LevelWarning, "Warning"
}

func clampCeil(v float64) int {
	n := int(math.Ceil(v))
	if n < 0 {
		return 0
	}
	return n
}
