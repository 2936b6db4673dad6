// Package clock produces the human-visible timestamps used in engine
// status. It is never consulted for scheduling decisions.
package clock

import "time"

// Now returns a string of the form "(TZ) YYYY-MM-DD HH:MM:SS" where TZ is
// the local time zone's name and the timestamp is local wall time at call.
func Now() string {
	now := time.Now()
	tz, _ := now.Zone()
	return "(" + tz + ") " + now.Format("2006-01-02 15:04:05")
}
