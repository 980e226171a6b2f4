package extension

import "sort"

// Capabilities is a set of capability names.
type Capabilities map[string]struct{}

// NewCapabilities builds a set from names. Empty names are ignored.
func NewCapabilities(names ...string) Capabilities {
	c := make(Capabilities, len(names))
	for _, n := range names {
		if n != "" {
			c[n] = struct{}{}
		}
	}
	return c
}

// Has reports whether name is in the set.
func (c Capabilities) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// Difference returns the sorted members of c that are not in other.
func (c Capabilities) Difference(other Capabilities) []string {
	var out []string
	for name := range c {
		if !other.Has(name) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Sorted returns the members in lexicographic order.
func (c Capabilities) Sorted() []string {
	out := make([]string, 0, len(c))
	for name := range c {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (c Capabilities) clone() Capabilities {
	out := make(Capabilities, len(c))
	for name := range c {
		out[name] = struct{}{}
	}
	return out
}
