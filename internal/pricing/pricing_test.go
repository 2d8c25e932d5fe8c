package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mikeMule/gebeta-client/internal/models"
)

func TestDeliveryFee(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"negative treated as zero", -3, 250},
		{"zero distance", 0, 250},
		{"inside base radius", 3, 250},
		{"base radius boundary", 5, 250},
		{"middle of ramp", 7.5, 297.5},
		{"mid radius boundary", 10, 345},
		{"plateau", 15, 345},
		{"flat radius boundary", 20, 345},
		{"beyond flat radius", 25, 420},
		{"far out", 30, 495},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DeliveryFee(tt.distance), 1e-9)
		})
	}
}

func TestFeeSchedule_Monotonic(t *testing.T) {
	prev := DeliveryFee(0)
	for d := 0.25; d <= 40; d += 0.25 {
		fee := DeliveryFee(d)
		assert.GreaterOrEqual(t, fee, prev, "fee regressed at %.2f km", d)
		prev = fee
	}
}

func TestScheduleFromConfig(t *testing.T) {
	cfg := &models.Config{
		BaseDeliveryFee:     100,
		ExtendedDeliveryFee: 200,
		BaseRadiusKm:        2,
		MidRadiusKm:         4,
		FlatRadiusKm:        8,
		PerKmBeyondFee:      10,
	}
	schedule := ScheduleFromConfig(cfg)

	assert.InDelta(t, 100, schedule.Fee(1), 1e-9)
	assert.InDelta(t, 150, schedule.Fee(3), 1e-9)
	assert.InDelta(t, 200, schedule.Fee(6), 1e-9)
	assert.InDelta(t, 220, schedule.Fee(10), 1e-9)
}

func TestDistance(t *testing.T) {
	addis := models.Location{Lat: 9.0054, Lng: 38.7636}

	assert.InDelta(t, 0, Distance(addis, addis), 1e-9)

	// A tenth of a degree of longitude at this latitude is about 11 km.
	east := models.Location{Lat: 9.0054, Lng: 38.8636}
	assert.InDelta(t, 11.0, Distance(addis, east), 0.2)

	// Symmetric in its arguments.
	assert.InDelta(t, Distance(addis, east), Distance(east, addis), 1e-9)
}

func TestEstimateDeliveryTime(t *testing.T) {
	assert.Equal(t, "15-25 min", EstimateDeliveryTime(0, 25))
	assert.Equal(t, "39-49 min", EstimateDeliveryTime(10, 25))
	// Bad speed falls back to the default rather than dividing by zero.
	assert.Equal(t, EstimateDeliveryTime(10, 25), EstimateDeliveryTime(10, 0))
	assert.Equal(t, "15-25 min", EstimateDeliveryTime(-5, 25))
}
