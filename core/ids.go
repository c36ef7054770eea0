package core

// PointID is a dense, internal identifier for a point within a single
// index. It is strictly 32-bit, assigned in insertion order and used to
// index directly into the point-reference array.
type PointID uint32

// MaxPointID is the maximum possible value for a PointID.
const MaxPointID = ^PointID(0)
