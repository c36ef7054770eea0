package bucket

// Cell is one packed slot of a HybridChain bucket's contiguous array.
// BucketLength only carries meaning in a bucket's header cell (flags
// whether the bucket overflowed) and in the NFieldsPerIndexOfOverflow
// cells immediately after the header of an overflowed bucket (where it
// doubles as a 6-bit chunk of the little-endian overflow offset);
// everywhere else it is unused. PointIndex and IsLastPoint are always
// live.
type Cell struct {
	PointIndex   uint32
	BucketLength uint8
	IsLastPoint  bool
}

type hybridBucket struct {
	ctl   uint32
	cells []Cell
}

// HybridChain is the packed, read-mostly bucket store built once per
// table from a LinkedChain model.
type HybridChain struct {
	tableSize int
	slots     [][]hybridBucket // slot -> buckets sharing that slot, one per distinct ctl
}

// PackFromLinkedChain builds a HybridChain with the same directory
// size and contents as model.
func PackFromLinkedChain(model *LinkedChain) *HybridChain {
	h := &HybridChain{
		tableSize: model.TableSize(),
		slots:     make([][]hybridBucket, model.TableSize()),
	}
	for _, ref := range model.Buckets() {
		points := model.PointsFor(ref)
		h.slots[ref.Slot] = append(h.slots[ref.Slot], hybridBucket{
			ctl:   ref.Ctl,
			cells: packCells(points),
		})
	}
	return h
}

func packCells(points []uint32) []Cell {
	n := len(points)
	cells := make([]Cell, n)

	if n <= MaxNonoverflowPointsPerBucket {
		for i, p := range points {
			cells[i] = Cell{PointIndex: p}
			if i == 0 {
				cells[i].BucketLength = uint8(n)
			}
		}
		cells[n-1].IsLastPoint = true
		return cells
	}

	offset := 0 // overflow region starts immediately after the nonoverflow region
	for i := 0; i < MaxNonoverflowPointsPerBucket; i++ {
		cells[i] = Cell{PointIndex: points[i]}
		switch {
		case i == 0:
			cells[i].BucketLength = 0
		case i-1 < NFieldsPerIndexOfOverflow:
			chunk := (offset >> (NBitsForBucketLength * (i - 1))) & ((1 << NBitsForBucketLength) - 1)
			cells[i].BucketLength = uint8(chunk)
		}
	}
	for i := MaxNonoverflowPointsPerBucket; i < n; i++ {
		cells[i] = Cell{PointIndex: points[i]}
	}
	cells[n-1].IsLastPoint = true
	return cells
}

func (h *HybridChain) slotFor(main uint32) int {
	return int(main) & (h.tableSize - 1)
}

// Walk visits every point in the bucket identified by (main, ctl), in
// packed cell order, decoding the overflow jump when present. For each
// point, visit receives the point index and must report whether to
// continue or stop early.
func (h *HybridChain) Walk(main, ctl uint32, visit func(pointIndex uint32) (cont bool)) error {
	slot := h.slotFor(main)
	for _, b := range h.slots[slot] {
		if b.ctl != ctl {
			continue
		}
		walkCells(b.cells, visit)
		return nil
	}
	return nil
}

func walkCells(cells []Cell, visit func(pointIndex uint32) (cont bool)) {
	cursor := 0
	for {
		if cursor == MaxNonoverflowPointsPerBucket {
			offset := 0
			for f := 0; f < NFieldsPerIndexOfOverflow; f++ {
				chunk := int(cells[1+f].BucketLength)
				offset |= chunk << (NBitsForBucketLength * f)
			}
			cursor += offset
		}
		cell := cells[cursor]
		if !visit(cell.PointIndex) {
			return
		}
		if cell.IsLastPoint {
			return
		}
		cursor++
	}
}
