package market

import "time"

// NSE trades in Indian Standard Time regardless of where the service runs.
// IST has no daylight saving, so a fixed zone is exact and keeps the check
// independent of host tzdata.
var ist = time.FixedZone("IST", 5*3600+30*60)

const (
	openSecond  = 9*3600 + 15*60  // 09:15:00
	closeSecond = 15*3600 + 30*60 // 15:30:00, inclusive
)

// IsOpen reports whether the market is open at the given instant:
// Monday through Friday, 09:15:00 to 15:30:00 IST, both bounds inclusive.
// The instant is an explicit parameter so callers own the clock.
func IsOpen(instant time.Time) bool {
	t := instant.In(ist)

	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}

	sec := t.Hour()*3600 + t.Minute()*60 + t.Second()
	return sec >= openSecond && sec <= closeSecond
}

// Location returns the exchange time zone.
func Location() *time.Location {
	return ist
}
