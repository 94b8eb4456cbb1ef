package obj

// Inventory counts collected items by name, remembering the order each name
// was first collected in.
type Inventory struct {
	order  []string
	counts map[string]int
}

func NewInventory() *Inventory {
	return &Inventory{counts: make(map[string]int)}
}

// Add records one more of each name.
func (inv *Inventory) Add(names ...string) {
	for _, n := range names {
		if _, ok := inv.counts[n]; !ok {
			inv.order = append(inv.order, n)
		}
		inv.counts[n]++
	}
}

func (inv *Inventory) Has(name string) bool { return inv.counts[name] > 0 }

func (inv *Inventory) Count(name string) int { return inv.counts[name] }

// Names returns the distinct collected names in first-collected order.
func (inv *Inventory) Names() []string {
	out := make([]string, len(inv.order))
	copy(out, inv.order)
	return out
}

// Len returns the total number of items collected.
func (inv *Inventory) Len() int {
	total := 0
	for _, c := range inv.counts {
		total += c
	}
	return total
}
