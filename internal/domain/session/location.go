// internal/domain/session/location.go
package session

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultLocation is used when --location is not given.
const DefaultLocation = "0,0"

var ErrInvalidLocation = errors.New("session: invalid location")

// Coordinates is stored as locationCoordinates {latitude, longitude}.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ParseLocation parses "lat,lng". Both parts must be numeric.
func ParseLocation(s string) (Coordinates, error) {
	raw := s
	if strings.TrimSpace(s) == "" {
		s = DefaultLocation
	}

	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return Coordinates{}, fmt.Errorf("%w: %q (expected \"lat,lng\")", ErrInvalidLocation, raw)
	}

	lat, err := parseCoordinate(latStr)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: latitude %q in %q is not a number", ErrInvalidLocation, strings.TrimSpace(latStr), raw)
	}
	lng, err := parseCoordinate(lngStr)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: longitude %q in %q is not a number", ErrInvalidLocation, strings.TrimSpace(lngStr), raw)
	}
	return Coordinates{Latitude: lat, Longitude: lng}, nil
}

func parseCoordinate(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	// ParseFloat は "NaN" / "Inf" も受け付けるので弾く
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not finite")
	}
	return v, nil
}

// String formats the coordinates back to "lat,lng".
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

func (c Coordinates) document() map[string]any {
	return map[string]any{
		"latitude":  c.Latitude,
		"longitude": c.Longitude,
	}
}
