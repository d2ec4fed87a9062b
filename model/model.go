package model

import (
	"bytes"

	"github.com/goccy/go-json"
)

type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// Modes lists every mode in output order.
var Modes = []Mode{ModeLight, ModeDark}

// TokenMap maps custom property names to their raw values, keeping
// insertion order. Overwriting a key keeps its original position.
type TokenMap struct {
	keys   []string
	values map[string]string
}

// NewTokenMap returns an empty TokenMap.
func NewTokenMap() *TokenMap {
	return &TokenMap{values: make(map[string]string)}
}

// Set binds name to value.
func (m *TokenMap) Set(name, value string) {
	if _, exists := m.values[name]; !exists {
		m.keys = append(m.keys, name)
	}
	m.values[name] = value
}

// Get returns the value bound to name.
func (m *TokenMap) Get(name string) (string, bool) {
	v, ok := m.values[name]
	return v, ok
}

func (m *TokenMap) Len() int {
	return len(m.keys)
}

// Keys returns token names in insertion order.
func (m *TokenMap) Keys() []string {
	return append([]string(nil), m.keys...)
}

// ToMap returns an unordered copy of the bindings.
func (m *TokenMap) ToMap() map[string]string {
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

func (m *TokenMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := appendString(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := appendString(&buf, m.values[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ThemeRecord holds the light and dark token maps of one theme. Either may
// be nil.
type ThemeRecord struct {
	Name  string
	Light *TokenMap
	Dark  *TokenMap
}

// Tokens returns the map for mode, or nil when that mode was never matched.
func (r *ThemeRecord) Tokens(mode Mode) *TokenMap {
	switch mode {
	case ModeLight:
		return r.Light
	case ModeDark:
		return r.Dark
	}
	return nil
}

// SetTokens replaces the map for mode.
func (r *ThemeRecord) SetTokens(mode Mode, tokens *TokenMap) {
	switch mode {
	case ModeLight:
		r.Light = tokens
	case ModeDark:
		r.Dark = tokens
	}
}

// PresentModes returns the modes that have a map, in output order.
func (r *ThemeRecord) PresentModes() []Mode {
	var modes []Mode
	for _, mode := range Modes {
		if r.Tokens(mode) != nil {
			modes = append(modes, mode)
		}
	}
	return modes
}

func (r *ThemeRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, mode := range Modes {
		tokens := r.Tokens(mode)
		if tokens == nil {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := appendString(&buf, string(mode)); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		b, err := tokens.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Registry maps theme names to records in first-insertion order.
type Registry struct {
	order  []string
	themes map[string]*ThemeRecord
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{themes: make(map[string]*ThemeRecord)}
}

// Merge records tokens as the mode map of the named theme, creating the
// record on first sight and replacing any earlier map for the same mode.
func (r *Registry) Merge(name string, mode Mode, tokens *TokenMap) {
	rec, exists := r.themes[name]
	if !exists {
		rec = &ThemeRecord{Name: name}
		r.themes[name] = rec
		r.order = append(r.order, name)
	}
	rec.SetTokens(mode, tokens)
}

// Get returns the record for name, or nil.
func (r *Registry) Get(name string) *ThemeRecord {
	return r.themes[name]
}

func (r *Registry) Len() int {
	return len(r.order)
}

// Names returns theme names in first-insertion order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Records returns the records in first-insertion order.
func (r *Registry) Records() []*ThemeRecord {
	records := make([]*ThemeRecord, 0, len(r.order))
	for _, name := range r.order {
		records = append(records, r.themes[name])
	}
	return records
}

func (r *Registry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := appendString(&buf, name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		b, err := r.themes[name].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ThemeSet maps theme names to a single token map, in insertion order.
type ThemeSet struct {
	order  []string
	themes map[string]*TokenMap
}

func NewThemeSet() *ThemeSet {
	return &ThemeSet{themes: make(map[string]*TokenMap)}
}

// Put stores tokens under name, replacing an earlier entry in place.
func (s *ThemeSet) Put(name string, tokens *TokenMap) {
	if _, exists := s.themes[name]; !exists {
		s.order = append(s.order, name)
	}
	s.themes[name] = tokens
}

func (s *ThemeSet) Get(name string) *TokenMap {
	return s.themes[name]
}

func (s *ThemeSet) Len() int {
	return len(s.order)
}

func (s *ThemeSet) Names() []string {
	return append([]string(nil), s.order...)
}

func (s *ThemeSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := appendString(&buf, name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		b, err := s.themes[name].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// appendString writes s as a JSON string without HTML escaping.
func appendString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates each value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
