package bucket

import (
	"errors"

	"github.com/RoaringBitmap/roaring/v2"
)

// ErrUnsupportedQuery is returned by Statistics.Walk: the Statistics
// layout tracks occupancy only and was never meant to serve queries.
var ErrUnsupportedQuery = errors.New("bucket: query unsupported on Statistics layout")

// Statistics is an occupancy-only bucket store: it records which
// point indices fall into each bucket as a roaring.Bitmap, useful for
// reporting bucket-size distributions at build time, but it cannot
// answer a query.
type Statistics struct {
	tableSize int
	slots     [][]statBucket
}

type statBucket struct {
	ctl  uint32
	bits *roaring.Bitmap
}

// NewStatistics creates an empty Statistics store with the given
// directory size.
func NewStatistics(tableSize int) *Statistics {
	return &Statistics{tableSize: tableSize, slots: make([][]statBucket, tableSize)}
}

func (s *Statistics) slotFor(main uint32) int {
	return int(main) & (s.tableSize - 1)
}

// Insert records pointIndex under bucket (main, ctl).
func (s *Statistics) Insert(main, ctl uint32, pointIndex uint32) {
	slot := s.slotFor(main)
	for i := range s.slots[slot] {
		if s.slots[slot][i].ctl == ctl {
			s.slots[slot][i].bits.Add(pointIndex)
			return
		}
	}
	b := roaring.New()
	b.Add(pointIndex)
	s.slots[slot] = append(s.slots[slot], statBucket{ctl: ctl, bits: b})
}

// BucketSize returns the occupancy of bucket (main, ctl), or 0 if it
// does not exist.
func (s *Statistics) BucketSize(main, ctl uint32) uint64 {
	slot := s.slotFor(main)
	for _, b := range s.slots[slot] {
		if b.ctl == ctl {
			return b.bits.GetCardinality()
		}
	}
	return 0
}

// BucketCount returns the number of distinct populated buckets.
func (s *Statistics) BucketCount() int {
	n := 0
	for _, bs := range s.slots {
		n += len(bs)
	}
	return n
}

// Walk always returns ErrUnsupportedQuery: Statistics cannot serve a
// point-retrieval query.
func (s *Statistics) Walk(uint32, uint32, func(uint32) bool) error {
	return ErrUnsupportedQuery
}
