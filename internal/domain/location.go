package domain

// Location is a physical place a period can be assigned to: a quay (1-D,
// length only) or a hardstand street (2-D, length and width).
type Location struct {
	Name   string
	Kind   LocationKind
	Length float64
	Width  float64 // zero for quays
}

// Fits reports whether a vessel of the given dimensions can physically
// occupy this location, ignoring capacity already in use.
func (l Location) Fits(eslora, manga float64) bool {
	switch l.Kind {
	case Quay:
		return l.Length >= eslora
	case Street:
		return l.Length >= eslora && l.Width >= manga
	default:
		return false
	}
}

// LocationSet indexes locations by name for repeated candidate lookups.
type LocationSet struct {
	byName map[string]Location
	quays  []Location
	streets []Location
}

// NewLocationSet builds an index over the given locations. Locations must
// have unique names.
func NewLocationSet(locations []Location) (LocationSet, error) {
	ls := LocationSet{byName: make(map[string]Location, len(locations))}
	for _, loc := range locations {
		if _, exists := ls.byName[loc.Name]; exists {
			return LocationSet{}, errInvalidInput("duplicate location name %q", loc.Name)
		}
		ls.byName[loc.Name] = loc
		switch loc.Kind {
		case Quay:
			ls.quays = append(ls.quays, loc)
		case Street:
			ls.streets = append(ls.streets, loc)
		}
	}
	return ls, nil
}

// Lookup returns the location with the given name.
func (ls LocationSet) Lookup(name string) (Location, bool) {
	loc, ok := ls.byName[name]
	return loc, ok
}

// Quays returns every quay location, in the order they were added.
func (ls LocationSet) Quays() []Location {
	return ls.quays
}

// Streets returns every street location, in the order they were added.
func (ls LocationSet) Streets() []Location {
	return ls.streets
}
