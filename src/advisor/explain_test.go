package advisor

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplain_AllGood(t *testing.T) {
	a := NewAdvisor(DefaultThresholds())
	lines := a.Explain(a.Evaluate(Reading{Health: 0.7, ChargeRate: 0.4, StateOfCharge: 70, Temperature: 25}))

	require.Len(t, lines, 4)
	assert.Equal(t, "State of health is 0.70, battery condition is good", lines[0])
	assert.Equal(t, "Charge rate is 0.40, within the maximum of 0.50", lines[1])
	assert.Equal(t, "State of charge is 70.0%, within 20.0-80.0%", lines[2])
	assert.Equal(t, "Temperature is 25.0C, conditions are suitable for charging", lines[3])
}

func TestExplain_Failures(t *testing.T) {
	a := NewAdvisor(DefaultThresholds())
	lines := a.Explain(a.Evaluate(Reading{Health: 0.4, ChargeRate: 0.6, StateOfCharge: 85, Temperature: 50}))

	require.Len(t, lines, 5)
	assert.Equal(t, "State of health is 0.40, battery condition is poor (min 0.50)", lines[0])
	assert.Equal(t, "Charge rate is 0.60 and is out of range (max 0.50)", lines[1])
	assert.Equal(t, "State of charge is 85.0% and is out of range (20.0-80.0%)", lines[2])
	assert.Equal(t, "Avoid charging above 80 percent to reduce losses", lines[3])
	assert.Equal(t, "Temperature is 50.0C and is out of range (0.0-45.0C)", lines[4])
}

func TestExplain_AdvisoryAtSOCMax(t *testing.T) {
	a := NewAdvisor(DefaultThresholds())

	// 80 passes but still gets the advisory
	lines := a.Explain(a.Evaluate(Reading{Health: 0.7, ChargeRate: 0.4, StateOfCharge: 80, Temperature: 25}))
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[3], "Avoid charging above"))

	lines = a.Explain(a.Evaluate(Reading{Health: 0.7, ChargeRate: 0.4, StateOfCharge: 10, Temperature: 25}))
	assert.Len(t, lines, 4)
}

func TestExplain_NaN(t *testing.T) {
	a := NewAdvisor(DefaultThresholds())
	lines := a.Explain(a.Evaluate(Reading{Health: math.NaN(), ChargeRate: 0.4, StateOfCharge: 70, Temperature: 25}))

	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "poor")
}
