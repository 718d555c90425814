package source

import (
	"net/url"
	"slices"
)

// Getter looks up a raw parameter value. Absent keys yield nil.
type Getter interface {
	Get(key string) any
}

// Values adapts url.Values. A key with one value yields a string, a key
// with several values yields a []string.
type Values url.Values

// Get implements Getter.
func (v Values) Get(key string) any {
	vals := v[key]
	switch len(vals) {
	case 0:
		return nil
	case 1:
		return vals[0]
	default:
		return slices.Clone(vals)
	}
}

// Map adapts a decoded JSON object or any other keyed map.
type Map map[string]any

// Get implements Getter.
func (m Map) Get(key string) any {
	return m[key]
}

// Chain returns the first non-nil value among its sources.
type Chain []Getter

// Get implements Getter.
func (c Chain) Get(key string) any {
	for _, g := range c {
		if g == nil {
			continue
		}
		if v := g.Get(key); v != nil {
			return v
		}
	}
	return nil
}
