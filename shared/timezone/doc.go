// Package timezone pins every ShareIt timestamp to the zone named by APP_TIMEZONE.
//
// Booking periods, comment and request creation times, and the "now" that booking states
// are evaluated against all go through Now. The API exchanges timestamps as
// "2006-01-02T15:04:05" in that zone; RFC 3339 with an explicit offset is accepted on input
// and converted.
//
// The zone is loaded on first use. An unknown name falls back to UTC with an error log.
package timezone
