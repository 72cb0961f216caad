package keepnames

import (
	"github.com/elliotchance/orderedmap/v2"
)

// KeepSet is an insertion-ordered set of keep names.
//
// The set is append-only. Adding a name that is already present leaves the set unchanged.
type KeepSet struct {
	names *orderedmap.OrderedMap[string, struct{}]
}

func NewKeepSet() *KeepSet {
	return &KeepSet{names: orderedmap.NewOrderedMap[string, struct{}]()}
}

// Add a keep name, returning true if it was not already present.
func (k *KeepSet) Add(name string) bool {
	if _, ok := k.names.Get(name); ok {
		return false
	}
	k.names.Set(name, struct{}{})
	return true
}

func (k *KeepSet) Contains(name string) bool {
	_, ok := k.names.Get(name)
	return ok
}

func (k *KeepSet) Len() int { return k.names.Len() }

// Names returns the keep names in the order they were first added.
func (k *KeepSet) Names() []string {
	out := make([]string, 0, k.names.Len())
	for el := k.names.Front(); el != nil; el = el.Next() {
		out = append(out, el.Key)
	}
	return out
}
