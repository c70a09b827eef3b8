package idmap

// Churn summarizes how identifiers moved between two runs
type Churn struct {
	Added   []string
	Removed []string
	Changed []string
}

// Stable reports whether no previously known key changed or disappeared
func (c *Churn) Stable() bool {
	return len(c.Removed) == 0 && len(c.Changed) == 0
}

// Diff compares the identifiers of previous and current. Keys are reported
// in the discovery order of the map they appear in.
func Diff(previous, current *IDMap) *Churn {
	churn := &Churn{}
	for _, k := range current.Keys() {
		prevID, ok := previous.Lookup(k)
		if !ok {
			churn.Added = append(churn.Added, k)
			continue
		}
		if id, _ := current.Lookup(k); id != prevID {
			churn.Changed = append(churn.Changed, k)
		}
	}
	for _, k := range previous.Keys() {
		if _, ok := current.Lookup(k); !ok {
			churn.Removed = append(churn.Removed, k)
		}
	}
	return churn
}
