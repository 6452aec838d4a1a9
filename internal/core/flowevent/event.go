// Package flowevent defines the per-event input of the flow analysis: a list of tracks
// with reference-particle (RP) and particle-of-interest (POI) tags
package flowevent

// Track is one reconstructed particle
type Track struct {
	Phi    float64 `json:"phi"` // azimuth in [0, 2pi)
	Pt     float64 `json:"pt"`
	Eta    float64 `json:"eta"`
	Charge int     `json:"charge,omitempty"`
	Weight float64 `json:"weight,omitempty"` // 0 means 1
	RP     bool    `json:"rp,omitempty"`
	POI    bool    `json:"poi,omitempty"`
}

// W returns the track weight, treating zero as unit weight
func (t Track) W() float64 {
	if t.Weight == 0 {
		return 1
	}
	return t.Weight
}

// Event is a simple flow event
type Event struct {
	Number  int64   `json:"number"`
	RefMult int     `json:"ref_mult,omitempty"` // externally supplied reference multiplicity
	Tracks  []Track `json:"tracks"`
}

// NumberOfRPs counts the tracks tagged as reference particles
func (e *Event) NumberOfRPs() int {
	n := 0
	for i := range e.Tracks {
		if e.Tracks[i].RP {
			n++
		}
	}
	return n
}

// RPs returns the reference particles in track order
func (e *Event) RPs() []Track {
	out := make([]Track, 0, len(e.Tracks))
	for _, t := range e.Tracks {
		if t.RP {
			out = append(out, t)
		}
	}
	return out
}

// Multiplicity resolves the event multiplicity for src; sumOfWeights is the RP weight
// sum the caller already accumulated for the Q-vector
func (e *Event) Multiplicity(src MultiplicitySource, sumOfWeights float64) float64 {
	switch src {
	case MultExternal:
		return float64(e.RefMult)
	case MultQVector:
		return sumOfWeights
	default:
		return float64(e.NumberOfRPs())
	}
}
