package advisor

import (
	"fmt"
	"math"
)

// Thresholds holds the pass/fail limits for each factor.
// Health must be strictly above HealthMin; charge rate must not exceed ChargeRateMax;
// state of charge and temperature must fall inside their inclusive ranges.
type Thresholds struct {
	HealthMin     float64 // fraction of rated capacity
	ChargeRateMax float64
	SOCMin        float64 // percent
	SOCMax        float64 // percent
	TempMin       float64 // degrees C
	TempMax       float64 // degrees C
}

// DefaultThresholds returns the stock limits
func DefaultThresholds() Thresholds {
	return Thresholds{
		HealthMin:     0.5,
		ChargeRateMax: 0.5,
		SOCMin:        20.0,
		SOCMax:        80.0,
		TempMin:       0.0,
		TempMax:       45.0,
	}
}

// Validate checks that every limit is finite and that both ranges are ordered
func (t Thresholds) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"health min", t.HealthMin},
		{"charge rate max", t.ChargeRateMax},
		{"soc min", t.SOCMin},
		{"soc max", t.SOCMax},
		{"temp min", t.TempMin},
		{"temp max", t.TempMax},
	}
	for _, f := range fields {
		if !isFinite(f.value) {
			return fmt.Errorf("%s must be finite, got %v", f.name, f.value)
		}
	}

	if t.SOCMin > t.SOCMax {
		return fmt.Errorf("soc min %.2f is above soc max %.2f", t.SOCMin, t.SOCMax)
	}
	if t.TempMin > t.TempMax {
		return fmt.Errorf("temp min %.2f is above temp max %.2f", t.TempMin, t.TempMax)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
