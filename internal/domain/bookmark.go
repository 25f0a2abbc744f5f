package domain

// BookmarkSet is the set of bookmarked video uuids.  Iteration follows insertion order.
//
// A BookmarkSet is a value: With and Without return a new set and leave the receiver untouched, so a snapshot handed to
// a view never changes underneath it.
type BookmarkSet struct {
	order []string
	index map[string]struct{}
}

// NewBookmarkSet builds a set from uuids, dropping duplicates and keeping first-seen order
func NewBookmarkSet(uuids ...string) BookmarkSet {
	s := BookmarkSet{index: make(map[string]struct{}, len(uuids))}
	for _, uuid := range uuids {
		if _, ok := s.index[uuid]; ok {
			continue
		}
		s.index[uuid] = struct{}{}
		s.order = append(s.order, uuid)
	}
	return s
}

func (s BookmarkSet) Has(uuid string) bool {
	_, ok := s.index[uuid]
	return ok
}

func (s BookmarkSet) Len() int {
	return len(s.order)
}

// UUIDs returns the members in iteration order
func (s BookmarkSet) UUIDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// With returns a set that also contains uuid.  New members are appended to the iteration order.
func (s BookmarkSet) With(uuid string) BookmarkSet {
	if s.Has(uuid) {
		return s
	}
	return NewBookmarkSet(append(s.UUIDs(), uuid)...)
}

// Without returns a set that does not contain uuid
func (s BookmarkSet) Without(uuid string) BookmarkSet {
	if !s.Has(uuid) {
		return s
	}
	kept := make([]string, 0, len(s.order)-1)
	for _, u := range s.order {
		if u != uuid {
			kept = append(kept, u)
		}
	}
	return NewBookmarkSet(kept...)
}

// Set returns the set with uuid present or absent depending on bookmarked
func (s BookmarkSet) Set(uuid string, bookmarked bool) BookmarkSet {
	if bookmarked {
		return s.With(uuid)
	}
	return s.Without(uuid)
}

// Equal reports whether both sets hold the same members in the same order
func (s BookmarkSet) Equal(other BookmarkSet) bool {
	if len(s.order) != len(other.order) {
		return false
	}
	for i := range s.order {
		if s.order[i] != other.order[i] {
			return false
		}
	}
	return true
}
