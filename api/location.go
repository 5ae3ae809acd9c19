// Package api contains the entities exchanged with the device management API.
package api

import "github.com/paulmach/orb"

// CRS names the coordinate reference system a Coordinate is expressed in.
type CRS string

const (
	CRSWGS84    CRS = "WGS84"
	CRSEPSG3021 CRS = "EPSG:3021"
)

// Coordinate is a point in the reference system named by CRS.
// X and Y are passed through as received, the client does not range-check them.
type Coordinate struct {
	CRS CRS     `json:"crs"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
}

// NewWGS84Coordinate builds a WGS84 coordinate from a lon/lat point.
func NewWGS84Coordinate(p orb.Point) Coordinate {
	return Coordinate{
		CRS: CRSWGS84,
		X:   p.Lon(),
		Y:   p.Lat(),
	}
}

// Point returns X/Y as an orb.Point without any reprojection.
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.X, c.Y}
}

// Location is the physical installation place of a device.
type Location struct {
	City       string     `json:"city"`
	Address    string     `json:"address"`             // Street address
	Placement  *string    `json:"placement,omitempty"` // Free-form note on where the device sits
	Coordinate Coordinate `json:"coordinate"`
	Zipcode    string     `json:"zipcode"`
}
