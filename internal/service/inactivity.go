package service

import "time"

// InactivityThreshold is the workshop SLA: an order untouched for five days
// is flagged. Measured as elapsed duration, not business days.
const InactivityThreshold = 5 * 24 * time.Hour

// InactivityAlert reports whether an order has gone stale. Derived on every
// read, never persisted.
func InactivityAlert(lastUpdated, now time.Time) bool {
	return now.Sub(lastUpdated) >= InactivityThreshold
}
