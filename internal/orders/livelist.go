package orders

import (
	"slices"
	"sync"
)

// LiveList is one dashboard's view of recent orders. Pushed orders are
// inserted by creation time and deduplicated by id; a full fetch passed to
// Reconcile is authoritative for everything it covers.
type LiveList struct {
	mu     sync.Mutex
	orders []Order

	// gen counts pushes; pushed records the gen at which each id arrived.
	gen    uint64
	base   uint64
	pushed map[string]uint64
}

func NewLiveList(initial []Order) *LiveList {
	l := &LiveList{pushed: map[string]uint64{}}
	l.Reconcile(initial)
	return l
}

// Append adds o unless an order with the same id is already listed.
func (l *LiveList) Append(o Order) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if o.ID == "" || l.indexOf(o.ID) >= 0 {
		return false
	}
	i, _ := slices.BinarySearchFunc(l.orders, o, newestFirst)
	l.orders = slices.Insert(l.orders, i, o)
	l.gen++
	l.pushed[o.ID] = l.gen
	return true
}

// Mark returns a position to pass to ReconcileSince. Take it before starting
// the fetch.
func (l *LiveList) Mark() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen
}

// Reconcile replaces the list with fresh, keeping orders pushed since the
// previous reconcile that fresh does not contain.
func (l *LiveList) Reconcile(fresh []Order) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reconcile(l.base, fresh)
}

// ReconcileSince replaces the list with fresh, keeping every order pushed
// after mark whatever its creation time. A fetch cannot contain those.
func (l *LiveList) ReconcileSince(mark uint64, fresh []Order) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reconcile(mark, fresh)
}

func (l *LiveList) reconcile(mark uint64, fresh []Order) {
	seen := make(map[string]bool, len(fresh))
	next := make([]Order, 0, len(fresh))
	for _, o := range fresh {
		if o.ID == "" || seen[o.ID] {
			continue
		}
		seen[o.ID] = true
		next = append(next, o)
	}

	pushed := make(map[string]uint64, len(l.pushed))
	for _, o := range l.orders {
		g, ok := l.pushed[o.ID]
		if seen[o.ID] || !ok || g <= mark {
			continue
		}
		next = append(next, o)
		pushed[o.ID] = g
	}
	slices.SortStableFunc(next, newestFirst)
	l.orders = next
	l.pushed = pushed
	l.base = l.gen
}

func (l *LiveList) Snapshot() []Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.orders)
}

func (l *LiveList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.orders)
}

func (l *LiveList) indexOf(id string) int {
	return slices.IndexFunc(l.orders, func(o Order) bool { return o.ID == id })
}

func newestFirst(a, b Order) int {
	return b.CreatedAt.Compare(a.CreatedAt)
}
