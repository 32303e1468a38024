package model

// PriceRecord is one hourly entry from a hvakosterstrommen.no day file.
//
// Example:
//
//	{
//	  "NOK_per_kWh": 0.26712,
//	  "EUR_per_kWh": 0.02299,
//	  "EXR": 11.6181,
//	  "time_start": "2025-01-15T00:00:00+01:00",
//	  "time_end": "2025-01-15T01:00:00+01:00"
//	}
//
// Only the three fields below are decoded; anything else the upstream adds
// is ignored.
type PriceRecord struct {
	// Prices as published, per kWh. Negative values occur.
	NOKPerKWh float64 `json:"NOK_per_kWh"`
	EURPerKWh float64 `json:"EUR_per_kWh"`

	// TimeStart is the interval start as an RFC3339 string with offset.
	// It stays a string because it is forwarded verbatim downstream and
	// parsed only where the hour of day is needed.
	TimeStart string `json:"time_start"`
}
