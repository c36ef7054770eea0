package bucket

// entry is one node of a bucket's singly-linked point chain.
type entry struct {
	pointIndex uint32
	next       int32 // -1 terminates
}

// chain is one bucket: its ctl (for disambiguation against other
// buckets sharing the same directory slot) and the head index into the
// table's shared entries arena.
type chain struct {
	ctl  uint32
	head int32
	next int32 // next chain (different ctl) in the same directory slot, -1 terminates
}

// LinkedChain is the mutable bucket store used for incremental insert
// and as the "model" table the HybridChain build pass packs from. Its
// directory has tableSize slots; each slot heads a small linked list
// of chains (one per distinct ctl value hashing to that slot), and
// each chain heads a linked list of point entries.
type LinkedChain struct {
	tableSize int
	slots     []int32 // slot -> index of first chain in chains, -1 if empty
	chains    []chain
	entries   []entry
}

// NewLinkedChain creates an empty LinkedChain with the given directory
// size (should be a power of two; see uhash.TableSize).
func NewLinkedChain(tableSize int) *LinkedChain {
	slots := make([]int32, tableSize)
	for i := range slots {
		slots[i] = -1
	}
	return &LinkedChain{tableSize: tableSize, slots: slots}
}

// TableSize returns the directory size.
func (t *LinkedChain) TableSize() int { return t.tableSize }

func (t *LinkedChain) slotFor(main uint32) int {
	return int(main) & (t.tableSize - 1)
}

// Insert adds pointIndex to the bucket identified by (main, ctl),
// creating the bucket if it does not already exist.
func (t *LinkedChain) Insert(main, ctl uint32, pointIndex uint32) {
	slot := t.slotFor(main)
	ci := t.findOrCreateChain(slot, ctl)

	t.entries = append(t.entries, entry{pointIndex: pointIndex, next: t.chains[ci].head})
	t.chains[ci].head = int32(len(t.entries) - 1)
}

func (t *LinkedChain) findOrCreateChain(slot int, ctl uint32) int32 {
	for ci := t.slots[slot]; ci != -1; ci = t.chains[ci].next {
		if t.chains[ci].ctl == ctl {
			return ci
		}
	}
	t.chains = append(t.chains, chain{ctl: ctl, head: -1, next: t.slots[slot]})
	ci := int32(len(t.chains) - 1)
	t.slots[slot] = ci
	return ci
}

// Find returns the chain index for (main, ctl), and whether it exists.
func (t *LinkedChain) Find(main, ctl uint32) (int32, bool) {
	slot := t.slotFor(main)
	for ci := t.slots[slot]; ci != -1; ci = t.chains[ci].next {
		if t.chains[ci].ctl == ctl {
			return ci, true
		}
	}
	return -1, false
}

// Points returns every point index stored in chain ci, in
// most-recently-inserted-first order (the order the linked list
// naturally yields).
func (t *LinkedChain) Points(ci int32) []uint32 {
	var out []uint32
	for ei := t.chains[ci].head; ei != -1; ei = t.entries[ei].next {
		out = append(out, t.entries[ei].pointIndex)
	}
	return out
}

// Walk visits every point in the bucket identified by (main, ctl) in
// chain order, invoking visit(pointIndex) for each until visit returns
// false or the chain is exhausted. This layout does not mark
// candidates itself: marking on acceptance rather than at first sight
// is a decision made by the query caller, not the store.
func (t *LinkedChain) Walk(main, ctl uint32, visit func(pointIndex uint32) (cont bool)) error {
	ci, ok := t.Find(main, ctl)
	if !ok {
		return nil
	}
	for ei := t.chains[ci].head; ei != -1; ei = t.entries[ei].next {
		if !visit(t.entries[ei].pointIndex) {
			return nil
		}
	}
	return nil
}

// Reset clears every bucket and entry, keeping the directory size.
// Used between L-table packing passes when this table serves as the
// HybridChain build model.
func (t *LinkedChain) Reset() {
	for i := range t.slots {
		t.slots[i] = -1
	}
	t.chains = t.chains[:0]
	t.entries = t.entries[:0]
}

// Buckets returns every (main-slot, ctl) chain currently populated, as
// (slot, ctl, chain-index) triples, in slot order — used by the
// HybridChain packer to enumerate every bucket exactly once.
func (t *LinkedChain) Buckets() []BucketRef {
	var out []BucketRef
	for slot, head := range t.slots {
		for ci := head; ci != -1; ci = t.chains[ci].next {
			out = append(out, BucketRef{Slot: slot, Ctl: t.chains[ci].ctl, chainIdx: ci})
		}
	}
	return out
}

// BucketRef identifies one populated bucket in a LinkedChain's
// directory.
type BucketRef struct {
	Slot     int
	Ctl      uint32
	chainIdx int32
}

// PointsFor returns the points stored under ref.
func (t *LinkedChain) PointsFor(ref BucketRef) []uint32 {
	return t.Points(ref.chainIdx)
}
