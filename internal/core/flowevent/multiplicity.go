package flowevent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MultiplicitySource selects what counts as the event multiplicity
type MultiplicitySource uint8

const (
	// MultRP is the number of reference particles
	MultRP MultiplicitySource = iota
	// MultExternal is the reference multiplicity carried by the event
	MultExternal
	// MultQVector is the sum of RP weights entering the Q-vector
	MultQVector
)

var multNames = [...]string{"rp", "external", "qvector"}

// MultiplicityNames lists the accepted spellings, in enum order
func MultiplicityNames() []string { return append([]string(nil), multNames[:]...) }

// String implements fmt.Stringer
func (m MultiplicitySource) String() string {
	if int(m) < len(multNames) {
		return multNames[m]
	}
	return fmt.Sprintf("MultiplicitySource(%d)", m)
}

// ParseMultiplicitySource parses one of MultiplicityNames, case-insensitive
func ParseMultiplicitySource(s string) (MultiplicitySource, error) {
	for i, n := range multNames {
		if strings.EqualFold(strings.TrimSpace(s), n) {
			return MultiplicitySource(i), nil
		}
	}
	return MultRP, fmt.Errorf("unknown multiplicity source %q", s)
}

// MarshalJSON encodes the source by name
func (m MultiplicitySource) MarshalJSON() ([]byte, error) { return json.Marshal(m.String()) }

// UnmarshalJSON decodes the source by name
func (m *MultiplicitySource) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseMultiplicitySource(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
