package models

import "time"

// PowerStatus is one power supply reading. Voltage and current are zero when
// the read failed.
type PowerStatus struct {
	Timestamp time.Time `json:"timestamp"`
	Node      int       `json:"node"`
	Voltage   float64   `json:"voltage"`
	Current   float64   `json:"current"`
	Power     float64   `json:"power"`
}
