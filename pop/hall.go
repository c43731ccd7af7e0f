package pop

import (
	"github.com/davidssmith/fastsqrt"
	"github.com/petar/GoLLRB/llrb"
)

type item struct {
	Snapshot
	key fastsqrt.Key
}

func (a item) Less(than llrb.Item) bool {
	b := than.(item)
	return a.key.Less(a.Coeffs, a.Fitness, b.Coeffs, b.Fitness)
}

// Hall keeps the n best distinct triples it has been shown.
type Hall struct {
	tree *llrb.LLRB
	n    int
	key  fastsqrt.Key
}

func NewHall(n int, key fastsqrt.Key) *Hall {
	if n < 1 {
		panic("pop: hall of fame needs room for at least one entry")
	}
	return &Hall{tree: llrb.New(), n: n, key: key}
}

// Add inserts s unless an entry with the same triple is already present.
// The first generation a triple was seen in is the one remembered.
func (h *Hall) Add(s Snapshot) {
	it := item{s, h.key}
	if h.tree.Has(it) {
		return
	}
	h.tree.InsertNoReplace(it)
	for h.tree.Len() > h.n {
		h.tree.DeleteMax()
	}
}

func (h *Hall) Len() int { return h.tree.Len() }

// List returns the entries from best to worst.
func (h *Hall) List() []Snapshot {
	if h.tree.Len() == 0 {
		return nil
	}
	list := make([]Snapshot, 0, h.tree.Len())
	h.tree.AscendGreaterOrEqual(h.tree.Min(), func(i llrb.Item) bool {
		list = append(list, i.(item).Snapshot)
		return true
	})
	return list
}
