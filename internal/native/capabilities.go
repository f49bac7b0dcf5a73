package native

import "sort"

// Capabilities records which native symbols were resolved at load time. It is
// built once by the Binder and never changes afterwards.
type Capabilities struct {
	resolved map[string]bool
}

// GroupStatus is the resolution report for one capability group.
type GroupStatus struct {
	Name     string
	Resolved []string
	Missing  []string
}

// Complete reports whether every symbol of the group was resolved.
func (g GroupStatus) Complete() bool {
	return len(g.Missing) == 0
}

func newCapabilities(resolved map[string]bool) Capabilities {
	c := Capabilities{resolved: make(map[string]bool, len(symbols))}
	for _, s := range symbols {
		c.resolved[s.name] = resolved[s.name]
	}
	return c
}

// Has reports whether the named symbol was resolved.
func (c Capabilities) Has(name string) bool {
	return c.resolved[name]
}

// Known reports whether the name is a symbol the wrapper binds at all.
func (c Capabilities) Known(name string) bool {
	_, ok := c.resolved[name]
	return ok
}

func (c Capabilities) Resolved() []string {
	return c.filter(true)
}

func (c Capabilities) Missing() []string {
	return c.filter(false)
}

func (c Capabilities) filter(want bool) []string {
	var names []string
	for name, ok := range c.resolved {
		if ok == want {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Groups returns the per-group report in a stable order.
func (c Capabilities) Groups() []GroupStatus {
	byGroup := make(map[string]*GroupStatus, len(groupOrder))
	for _, g := range groupOrder {
		byGroup[g] = &GroupStatus{Name: g}
	}
	for _, s := range symbols {
		g := byGroup[s.group]
		if c.resolved[s.name] {
			g.Resolved = append(g.Resolved, s.name)
		} else {
			g.Missing = append(g.Missing, s.name)
		}
	}

	out := make([]GroupStatus, 0, len(groupOrder))
	for _, g := range groupOrder {
		out = append(out, *byGroup[g])
	}
	return out
}
