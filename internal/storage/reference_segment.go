package storage

import (
	"fmt"

	"strata/internal/types"
)

// ReferenceSegment materializes values by indirection: each entry of
// its position list names a row of the referenced table, and Get
// resolves the referenced column there. A reference segment holds a
// strong reference to its table, keeping it alive for downstream
// consumers. Several reference segments may share one position list.
type ReferenceSegment struct {
	table     *Table
	column    types.ColumnID
	positions types.PosList
}

// NewReferenceSegment creates a reference segment over the given table,
// column, and position list.
func NewReferenceSegment(table *Table, column types.ColumnID, positions types.PosList) *ReferenceSegment {
	return &ReferenceSegment{table: table, column: column, positions: positions}
}

func (s *ReferenceSegment) Size() uint32 {
	return uint32(len(s.positions))
}

func (s *ReferenceSegment) Get(i types.ChunkOffset) (types.Variant, error) {
	if uint32(i) >= uint32(len(s.positions)) {
		return types.Variant{}, fmt.Errorf("%w: offset %d, segment size %d", ErrOutOfRange, i, len(s.positions))
	}
	pos := s.positions[i]
	chunk, err := s.table.GetChunk(pos.Chunk)
	if err != nil {
		return types.Variant{}, fmt.Errorf("resolve reference: %w", err)
	}
	seg, err := chunk.GetSegment(s.column)
	if err != nil {
		return types.Variant{}, fmt.Errorf("resolve reference: %w", err)
	}
	return seg.Get(pos.Offset)
}

func (s *ReferenceSegment) Append(types.Variant) error {
	return fmt.Errorf("append to reference segment: %w", ErrImmutable)
}

// ReferencedTable returns the table the position list points into.
func (s *ReferenceSegment) ReferencedTable() *Table {
	return s.table
}

// ReferencedColumn returns the column resolved in the referenced table.
func (s *ReferenceSegment) ReferencedColumn() types.ColumnID {
	return s.column
}

// Positions exposes the position list. Callers must not mutate it.
func (s *ReferenceSegment) Positions() types.PosList {
	return s.positions
}
