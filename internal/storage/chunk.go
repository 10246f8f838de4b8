package storage

import (
	"fmt"
	"math"

	"strata/internal/types"
)

// Chunk is a horizontal partition of a table: one segment per column,
// all segments of equal size.
type Chunk struct {
	segments []Segment
}

// NewChunk creates a chunk with no segments.
func NewChunk() *Chunk {
	return &Chunk{}
}

// AddSegment appends a segment as the next column of the chunk.
func (c *Chunk) AddSegment(s Segment) error {
	if len(c.segments) >= math.MaxUint16 {
		return fmt.Errorf("%w: chunk already has %d segments", ErrInvariant, len(c.segments))
	}
	c.segments = append(c.segments, s)
	return nil
}

// Append adds one row, component-wise across all segments. The row
// length must match the column count.
func (c *Chunk) Append(row []types.Variant) error {
	if len(row) != len(c.segments) {
		return fmt.Errorf("%w: row has %d values, chunk has %d columns", ErrArityMismatch, len(row), len(c.segments))
	}
	for i, v := range row {
		if err := c.segments[i].Append(v); err != nil {
			return fmt.Errorf("append column %d: %w", i, err)
		}
	}
	return nil
}

// GetSegment returns the segment backing the given column.
func (c *Chunk) GetSegment(column types.ColumnID) (Segment, error) {
	if int(column) >= len(c.segments) {
		return nil, fmt.Errorf("%w: column %d, chunk has %d columns", ErrOutOfRange, column, len(c.segments))
	}
	return c.segments[column], nil
}

// Size returns the row count of the chunk.
func (c *Chunk) Size() uint32 {
	if len(c.segments) == 0 {
		return 0
	}
	return c.segments[0].Size()
}

// ColumnCount returns the number of segments in the chunk.
func (c *Chunk) ColumnCount() int {
	return len(c.segments)
}
