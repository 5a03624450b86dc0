package registration

import "fmt"

// LocationState is the two-state placeholder for the station location map.
type LocationState string

const (
	LocationUnset LocationState = "unset"
	LocationSet   LocationState = "set"
)

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SampleCoordinates are shown whenever the placeholder is set. No geolocation
// happens.
var SampleCoordinates = Coordinates{Lat: 22.5726, Lng: 88.3639}

func (c Coordinates) String() string {
	return fmt.Sprintf("Lat: %.4f, Lng: %.4f", c.Lat, c.Lng)
}

// LocationPicker is the map placeholder. It is not part of Values: it is
// never validated and never handed to the advance gate or to step 2. The zero
// value is unset.
type LocationPicker struct {
	state LocationState
}

// State returns the current placeholder state.
func (p *LocationPicker) State() LocationState {
	if p == nil || p.state == "" {
		return LocationUnset
	}
	return p.state
}

// Mark sets the placeholder (the "click to set station location" action).
func (p *LocationPicker) Mark() {
	p.state = LocationSet
}

// Clear unsets the placeholder (the close button).
func (p *LocationPicker) Clear() {
	p.state = LocationUnset
}

// Toggle flips between unset and set and returns the new state.
func (p *LocationPicker) Toggle() LocationState {
	if p.State() == LocationSet {
		p.Clear()
	} else {
		p.Mark()
	}
	return p.state
}

// Coordinates returns the sample coordinates while the placeholder is set.
func (p *LocationPicker) Coordinates() (Coordinates, bool) {
	if p.State() != LocationSet {
		return Coordinates{}, false
	}
	return SampleCoordinates, true
}
