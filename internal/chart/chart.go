// Package chart turns upstream price records into the series the dashboard
// plots.
package chart

import (
	"time"

	"elektron/internal/model"

	"github.com/samber/lo"
)

// Point is one hour on the graph. Price is in øre/kWh; the published NOK and
// EUR per-kWh prices ride along for tooltips and export.
type Point struct {
	Hour     int     `json:"hour"`
	Price    float64 `json:"price"`
	Time     string  `json:"time"`
	PriceNOK float64 `json:"price_nok"`
	PriceEUR float64 `json:"price_eur"`
}

// FromRecords maps records onto points in input order. It never fails: a
// record whose start time does not parse lands on hour 0, with every other
// field carried over unchanged.
func FromRecords(records []model.PriceRecord) []Point {
	return lo.Map(records, func(r model.PriceRecord, _ int) Point {
		return Point{
			Hour:     hourOf(r.TimeStart),
			Price:    r.NOKPerKWh * 100, // NOK/kWh to øre/kWh
			Time:     r.TimeStart,
			PriceNOK: r.NOKPerKWh,
			PriceEUR: r.EURPerKWh,
		}
	})
}

// hourOf is the hour of day in the timestamp's own offset, or 0 when the
// timestamp is not valid RFC3339.
func hourOf(timeStart string) int {
	t, err := time.Parse(time.RFC3339, timeStart)
	if err != nil {
		return 0
	}
	return t.Hour()
}
