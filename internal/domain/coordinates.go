package domain

// Immutable geographic point (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}
