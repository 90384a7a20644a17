package advisor

// Factor identifies one of the four checked readings
type Factor string

const (
	FactorHealth        Factor = "health"
	FactorChargeRate    Factor = "charge_rate"
	FactorStateOfCharge Factor = "state_of_charge"
	FactorTemperature   Factor = "temperature"
)

// Reading is a single set of battery measurements
type Reading struct {
	Health        float64 `json:"health"`
	ChargeRate    float64 `json:"charge_rate"`
	StateOfCharge float64 `json:"state_of_charge"`
	Temperature   float64 `json:"temperature"`
}

// FactorResult is the outcome of checking one factor
type FactorResult struct {
	Factor Factor  `json:"factor"`
	Value  float64 `json:"value"`
	OK     bool    `json:"ok"`
}

// Verdict combines the four factor results
type Verdict struct {
	OK            bool         `json:"ok"`
	Health        FactorResult `json:"health"`
	ChargeRate    FactorResult `json:"charge_rate"`
	StateOfCharge FactorResult `json:"state_of_charge"`
	Temperature   FactorResult `json:"temperature"`
}

// Factors returns the results in health, charge rate, SOC, temperature order
func (v Verdict) Factors() []FactorResult {
	return []FactorResult{v.Health, v.ChargeRate, v.StateOfCharge, v.Temperature}
}

// Failed returns the factors that did not pass
func (v Verdict) Failed() []Factor {
	var failed []Factor
	for _, r := range v.Factors() {
		if !r.OK {
			failed = append(failed, r.Factor)
		}
	}
	return failed
}

// Advisor evaluates readings against a fixed set of thresholds.
// It holds no mutable state and is safe for concurrent use.
type Advisor struct {
	thresholds Thresholds
}

// NewAdvisor creates an advisor for the given thresholds
func NewAdvisor(thresholds Thresholds) *Advisor {
	return &Advisor{thresholds: thresholds}
}

// Thresholds returns the limits this advisor checks against
func (a *Advisor) Thresholds() Thresholds {
	return a.thresholds
}

// CheckHealth passes when health is strictly above the minimum.
// Non-finite values fail every check.
func (a *Advisor) CheckHealth(value float64) bool {
	return isFinite(value) && value > a.thresholds.HealthMin
}

// CheckChargeRate passes when the charge rate does not exceed the maximum
func (a *Advisor) CheckChargeRate(value float64) bool {
	return isFinite(value) && value <= a.thresholds.ChargeRateMax
}

// CheckStateOfCharge passes when SOC is within [SOCMin, SOCMax]
func (a *Advisor) CheckStateOfCharge(value float64) bool {
	return inRange(value, a.thresholds.SOCMin, a.thresholds.SOCMax)
}

// CheckTemperature passes when temperature is within [TempMin, TempMax]
func (a *Advisor) CheckTemperature(value float64) bool {
	return inRange(value, a.thresholds.TempMin, a.thresholds.TempMax)
}

// Evaluate checks every factor and passes only when all four do.
// All factors are always checked so each one can be reported.
func (a *Advisor) Evaluate(r Reading) Verdict {
	v := Verdict{
		Health:        FactorResult{Factor: FactorHealth, Value: r.Health, OK: a.CheckHealth(r.Health)},
		ChargeRate:    FactorResult{Factor: FactorChargeRate, Value: r.ChargeRate, OK: a.CheckChargeRate(r.ChargeRate)},
		StateOfCharge: FactorResult{Factor: FactorStateOfCharge, Value: r.StateOfCharge, OK: a.CheckStateOfCharge(r.StateOfCharge)},
		Temperature:   FactorResult{Factor: FactorTemperature, Value: r.Temperature, OK: a.CheckTemperature(r.Temperature)},
	}
	v.OK = v.Health.OK && v.ChargeRate.OK && v.StateOfCharge.OK && v.Temperature.OK
	return v
}

var defaultAdvisor = NewAdvisor(DefaultThresholds())

// BatteryIsOk evaluates the four readings against the default thresholds
func BatteryIsOk(health, chargeRate, stateOfCharge, temperature float64) bool {
	return defaultAdvisor.Evaluate(Reading{
		Health:        health,
		ChargeRate:    chargeRate,
		StateOfCharge: stateOfCharge,
		Temperature:   temperature,
	}).OK
}

// inRange is an inclusive range check
func inRange(value, lo, hi float64) bool {
	return isFinite(value) && value >= lo && value <= hi
}
