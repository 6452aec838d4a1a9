package histo

import (
	"encoding/json"
	"fmt"
)

// Object is anything a List can hold
type Object interface {
	GetName() string
	Kind() Kind
	Clone() Object
	Add(Object) error
}

// List is a named, insertion-ordered collection of histograms
type List struct {
	Name  string
	items []Object
	index map[string]int
}

// NewList returns an empty list
func NewList(name string) *List {
	return &List{Name: name, index: map[string]int{}}
}

// Add appends o; names are unique within a list
func (l *List) Add(o Object) error {
	if o == nil {
		return fmt.Errorf("list %s: nil object", l.Name)
	}
	if _, dup := l.index[o.GetName()]; dup {
		return fmt.Errorf("list %s: duplicate %q", l.Name, o.GetName())
	}
	if l.index == nil {
		l.index = map[string]int{}
	}
	l.index[o.GetName()] = len(l.items)
	l.items = append(l.items, o)
	return nil
}

// Get returns the named object or nil
func (l *List) Get(name string) Object {
	if l == nil {
		return nil
	}
	i, ok := l.index[name]
	if !ok {
		return nil
	}
	return l.items[i]
}

// H1 returns the named 1D histogram or nil
func (l *List) H1(name string) *H1 {
	h, _ := l.Get(name).(*H1)
	return h
}

// H2 returns the named 2D histogram or nil
func (l *List) H2(name string) *H2 {
	h, _ := l.Get(name).(*H2)
	return h
}

// Profile returns the named profile or nil
func (l *List) Profile(name string) *Profile {
	p, _ := l.Get(name).(*Profile)
	return p
}

// Names lists object names in insertion order
func (l *List) Names() []string {
	out := make([]string, len(l.items))
	for i, o := range l.items {
		out[i] = o.GetName()
	}
	return out
}

// Len is the number of objects
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Each calls fn for every object in order
func (l *List) Each(fn func(Object)) {
	for _, o := range l.items {
		fn(o)
	}
}

// Clone deep-copies the list
func (l *List) Clone() *List {
	c := NewList(l.Name)
	for _, o := range l.items {
		_ = c.Add(o.Clone())
	}
	return c
}

// Merge adds other into l bin by bin; objects missing from l are cloned in.
// On error l may be partially merged.
func (l *List) Merge(other *List) error {
	if other == nil {
		return nil
	}
	for _, o := range other.items {
		mine := l.Get(o.GetName())
		if mine == nil {
			if err := l.Add(o.Clone()); err != nil {
				return err
			}
			continue
		}
		if err := mine.Add(o); err != nil {
			return fmt.Errorf("merge %s/%s: %w", l.Name, o.GetName(), err)
		}
	}
	return nil
}

// MergeAll merges lists into a fresh list named name; nil entries are skipped
func MergeAll(name string, lists ...*List) (*List, error) {
	out := NewList(name)
	for _, l := range lists {
		if err := out.Merge(l); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func kindMismatch(a, b Object) error {
	return fmt.Errorf("%s: kind %s cannot take %s", a.GetName(), a.Kind(), b.Kind())
}

type wireObject struct {
	Kind Kind            `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type wireList struct {
	Name    string       `json:"name"`
	Objects []wireObject `json:"objects"`
}

// MarshalJSON encodes the list with a kind tag per object
func (l *List) MarshalJSON() ([]byte, error) {
	w := wireList{Name: l.Name, Objects: make([]wireObject, 0, len(l.items))}
	for _, o := range l.items {
		b, err := json.Marshal(o)
		if err != nil {
			return nil, err
		}
		w.Objects = append(w.Objects, wireObject{Kind: o.Kind(), Data: b})
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes and checks a tagged list
func (l *List) UnmarshalJSON(b []byte) error {
	var w wireList
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	out := NewList(w.Name)
	for i, wo := range w.Objects {
		var (
			o     Object
			check func() error
		)
		switch wo.Kind {
		case KindH1:
			h := &H1{}
			o, check = h, h.check
		case KindH2:
			h := &H2{}
			o, check = h, h.check
		case KindProfile:
			p := &Profile{}
			o, check = p, p.check
		default:
			return fmt.Errorf("object %d: unknown kind %q", i, wo.Kind)
		}
		if err := json.Unmarshal(wo.Data, o); err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
		if err := check(); err != nil {
			return err
		}
		if err := out.Add(o); err != nil {
			return err
		}
	}
	*l = *out
	return nil
}
