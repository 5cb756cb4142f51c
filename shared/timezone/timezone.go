package timezone

import (
	"shareit/config"
	"shareit/shared/constant"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var location = sync.OnceValue(func() *time.Location {
	name := config.Get().App.Timezone
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return loc
})

// GetLocation returns the application zone.
func GetLocation() *time.Location {
	return location()
}

// Now returns the current time in the application zone.
func Now() time.Time {
	return time.Now().In(location())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(location())
}

// FormatDefault formats a time with the API date layout. Zero times format as an empty string.
func FormatDefault(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return ToAppTime(t).Format(constant.DateFormat)
}

// ParseDefault parses the API date layout in the application zone, falling back to RFC 3339.
// The error reported is the one for the API layout.
func ParseDefault(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(constant.DateFormat, value, location())
	if err == nil {
		return parsed, nil
	}

	parsed, fallbackErr := time.Parse(constant.DateFormatFallback, value)
	if fallbackErr != nil {
		return time.Time{}, err //nolint:wrapcheck
	}

	return ToAppTime(parsed), nil
}
