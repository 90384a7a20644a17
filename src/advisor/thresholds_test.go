package advisor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultThresholds(t *testing.T) {
	d := DefaultThresholds()
	assert.Equal(t, 0.5, d.HealthMin)
	assert.Equal(t, 0.5, d.ChargeRateMax)
	assert.Equal(t, 20.0, d.SOCMin)
	assert.Equal(t, 80.0, d.SOCMax)
	assert.Equal(t, 0.0, d.TempMin)
	assert.Equal(t, 45.0, d.TempMax)
	assert.NoError(t, d.Validate())
}

func TestThresholdsValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Thresholds)
		wantErr string
	}{
		{
			name:    "soc range inverted",
			modify:  func(th *Thresholds) { th.SOCMin = 90 },
			wantErr: "soc min 90.00 is above soc max 80.00",
		},
		{
			name:    "temp range inverted",
			modify:  func(th *Thresholds) { th.TempMax = -1 },
			wantErr: "temp min 0.00 is above temp max -1.00",
		},
		{
			name:    "nan limit",
			modify:  func(th *Thresholds) { th.HealthMin = math.NaN() },
			wantErr: "health min must be finite",
		},
		{
			name:    "infinite limit",
			modify:  func(th *Thresholds) { th.ChargeRateMax = math.Inf(1) },
			wantErr: "charge rate max must be finite",
		},
		{
			name:   "degenerate range is allowed",
			modify: func(th *Thresholds) { th.SOCMin, th.SOCMax = 50, 50 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := DefaultThresholds()
			tt.modify(&th)
			err := th.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
