package deed

import "sort"

// ContentProbeFunc reports whether a deed's backing scan is actually
// retrievable. Deed rows can outlive their files (or be registered before
// upload finishes), and those must never be assigned.
type ContentProbeFunc func(d Deed) bool

// SelectNext picks the next deed to serve a user: the lowest-id deed the user
// has not attempted whose content is retrievable. Returns false when the
// catalog is empty, fully attempted, or fully unretrievable; callers surface
// that as "no more work available", not an error.
//
// Pure and side-effect free. The catalog and attempted set are per-call
// snapshots; a slightly stale attempted set is tolerated.
func SelectNext(catalog []Deed, attempted map[int64]bool, probe ContentProbeFunc) (Deed, bool) {
	ordered := make([]Deed, len(catalog))
	copy(ordered, catalog)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	for _, d := range ordered {
		if attempted[d.ID] {
			continue
		}
		if probe != nil && !probe(d) {
			continue
		}
		return d, true
	}
	return Deed{}, false
}
