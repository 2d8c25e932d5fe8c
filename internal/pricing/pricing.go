package pricing

import (
	"fmt"
	"math"

	"github.com/mikeMule/gebeta-client/internal/models"
)

const earthRadiusKm = 6371.0

// FeeSchedule holds the piecewise delivery fee curve: a flat base fee inside
// BaseRadiusKm, a linear ramp up to the extended fee at MidRadiusKm, a flat
// plateau to FlatRadiusKm, and a per-kilometre surcharge beyond it.
type FeeSchedule struct {
	BaseFee      float64
	ExtendedFee  float64
	BaseRadiusKm float64
	MidRadiusKm  float64
	FlatRadiusKm float64
	PerKmBeyond  float64
}

// DefaultFeeSchedule matches the platform's published delivery pricing.
var DefaultFeeSchedule = FeeSchedule{
	BaseFee:      250,
	ExtendedFee:  345,
	BaseRadiusKm: 5,
	MidRadiusKm:  10,
	FlatRadiusKm: 20,
	PerKmBeyond:  15,
}

// ScheduleFromConfig builds a fee schedule from the loaded configuration.
func ScheduleFromConfig(cfg *models.Config) FeeSchedule {
	return FeeSchedule{
		BaseFee:      cfg.BaseDeliveryFee,
		ExtendedFee:  cfg.ExtendedDeliveryFee,
		BaseRadiusKm: cfg.BaseRadiusKm,
		MidRadiusKm:  cfg.MidRadiusKm,
		FlatRadiusKm: cfg.FlatRadiusKm,
		PerKmBeyond:  cfg.PerKmBeyondFee,
	}
}

// Fee returns the delivery fee for a distance in kilometres. It is total over
// all inputs; a negative distance prices the same as zero.
func (f FeeSchedule) Fee(distanceKm float64) float64 {
	if distanceKm < 0 {
		distanceKm = 0
	}
	switch {
	case distanceKm <= f.BaseRadiusKm:
		return f.BaseFee
	case distanceKm <= f.MidRadiusKm:
		ramp := (f.ExtendedFee - f.BaseFee) / (f.MidRadiusKm - f.BaseRadiusKm)
		return f.BaseFee + ramp*(distanceKm-f.BaseRadiusKm)
	case distanceKm <= f.FlatRadiusKm:
		return f.ExtendedFee
	default:
		return f.ExtendedFee + f.PerKmBeyond*(distanceKm-f.FlatRadiusKm)
	}
}

// DeliveryFee prices a delivery distance against the default schedule.
func DeliveryFee(distanceKm float64) float64 {
	return DefaultFeeSchedule.Fee(distanceKm)
}

// EstimateDeliveryTime gives a rough "30-40 min" style estimate for the given
// distance, assuming the configured average courier speed plus prep slack.
func EstimateDeliveryTime(distanceKm, avgSpeedKmh float64) string {
	if avgSpeedKmh <= 0 {
		avgSpeedKmh = 25
	}
	if distanceKm < 0 {
		distanceKm = 0
	}
	travelMinutes := distanceKm / avgSpeedKmh * 60
	low := int(math.Round(travelMinutes + 15))
	high := low + 10
	return fmt.Sprintf("%d-%d min", low, high)
}

// Distance computes the great-circle distance in kilometres between two
// coordinates using the haversine formula.
func Distance(loc1, loc2 models.Location) float64 {
	lat1 := degreesToRadians(loc1.Lat)
	lon1 := degreesToRadians(loc1.Lng)
	lat2 := degreesToRadians(loc2.Lat)
	lon2 := degreesToRadians(loc2.Lng)

	dlat := lat2 - lat1
	dlon := lon2 - lon1
	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
