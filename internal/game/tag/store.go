package tag

// Store is a sparse mapping from Tag to integer value. Absent tags read as zero.
// Booleans are stored as 0/1.
//
// Store performs no validation of keys or values; callers that need invariants
// enforce them before writing.
type Store map[Tag]int

// NewStore returns an empty Store.
func NewStore() Store {
	return make(Store)
}

// Get returns the value of t, or 0 if unset.
func (s Store) Get(t Tag) int {
	return s[t]
}

// Set writes v under t. Writing 0 removes the entry.
func (s Store) Set(t Tag, v int) {
	if v == 0 {
		delete(s, t)
		return
	}
	s[t] = v
}

// Flag reports whether t holds a non-zero value.
func (s Store) Flag(t Tag) bool {
	return s[t] != 0
}

// SetFlag writes t as 1 when on is true and clears it otherwise.
func (s Store) SetFlag(t Tag, on bool) {
	if on {
		s[t] = 1
		return
	}
	delete(s, t)
}

// Add increments t by delta and returns the new value.
func (s Store) Add(t Tag, delta int) int {
	v := s[t] + delta
	s.Set(t, v)
	return v
}

// Clone returns an independent copy of s.
func (s Store) Clone() Store {
	out := make(Store, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
