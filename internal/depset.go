package internal

import "slices"

// DepSet holds the subscribers currently reading one location.
// Insertion order is kept so trigger order is reproducible, but callers
// must not rely on it.
type DepSet struct {
	subs []Handle

	// keeps the Target alive for as long as subscribers hold this set
	target *Target
}

func NewDepSet() *DepSet {
	return &DepSet{}
}

func (d *DepSet) Add(h Handle) bool {
	if slices.Contains(d.subs, h) {
		return false
	}

	d.subs = append(d.subs, h)
	return true
}

func (d *DepSet) Remove(h Handle) {
	if index := slices.Index(d.subs, h); index != -1 {
		d.subs = slices.Delete(d.subs, index, index+1)
	}
}

func (d *DepSet) Has(h Handle) bool {
	return slices.Contains(d.subs, h)
}

func (d *DepSet) Len() int {
	return len(d.subs)
}
