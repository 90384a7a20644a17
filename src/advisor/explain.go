package advisor

import "fmt"

// Explain returns one human-readable line per factor, in Factors() order.
// An extra advisory follows the SOC line when SOC is at or above the maximum.
func (a *Advisor) Explain(v Verdict) []string {
	t := a.thresholds
	lines := make([]string, 0, 5)

	if v.Health.OK {
		lines = append(lines, fmt.Sprintf("State of health is %.2f, battery condition is good", v.Health.Value))
	} else {
		lines = append(lines, fmt.Sprintf("State of health is %.2f, battery condition is poor (min %.2f)",
			v.Health.Value, t.HealthMin))
	}

	if v.ChargeRate.OK {
		lines = append(lines, fmt.Sprintf("Charge rate is %.2f, within the maximum of %.2f",
			v.ChargeRate.Value, t.ChargeRateMax))
	} else {
		lines = append(lines, fmt.Sprintf("Charge rate is %.2f and is out of range (max %.2f)",
			v.ChargeRate.Value, t.ChargeRateMax))
	}

	if v.StateOfCharge.OK {
		lines = append(lines, fmt.Sprintf("State of charge is %.1f%%, within %.1f-%.1f%%",
			v.StateOfCharge.Value, t.SOCMin, t.SOCMax))
	} else {
		lines = append(lines, fmt.Sprintf("State of charge is %.1f%% and is out of range (%.1f-%.1f%%)",
			v.StateOfCharge.Value, t.SOCMin, t.SOCMax))
	}
	if v.StateOfCharge.Value >= t.SOCMax {
		lines = append(lines, fmt.Sprintf("Avoid charging above %.0f percent to reduce losses", t.SOCMax))
	}

	if v.Temperature.OK {
		lines = append(lines, fmt.Sprintf("Temperature is %.1fC, conditions are suitable for charging",
			v.Temperature.Value))
	} else {
		lines = append(lines, fmt.Sprintf("Temperature is %.1fC and is out of range (%.1f-%.1fC)",
			v.Temperature.Value, t.TempMin, t.TempMax))
	}

	return lines
}
