package appconfig

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// Location is a time.Location decodable by envconfig from an IANA zone name.
type Location struct {
	*time.Location
}

func (l *Location) Decode(value string) error {
	loc, err := time.LoadLocation(value)
	if err != nil {
		return fmt.Errorf("invalid time zone %q: %w", value, err)
	}
	l.Location = loc
	return nil
}
