package domain

import "time"

// EarningsReport is one week of rideshare platform earnings for a
// driver, as returned by the supplier analytics API.
type EarningsReport struct {
	DriverID           string    `json:"driverId"`
	WeekStarting       time.Time `json:"weekStarting"`
	GrossEarnings      float64   `json:"grossEarnings"`
	NetEarnings        float64   `json:"netEarnings"`
	Trips              int       `json:"trips"`
	HoursOnline        int       `json:"hoursOnline"`
	AvgEarningsPerTrip float64   `json:"avgEarningsPerTrip"`
	Platform           string    `json:"platform"`
}
