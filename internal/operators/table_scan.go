package operators

import (
	"fmt"

	"strata/internal/storage"
	"strata/internal/types"
)

// TableScan filters its input table on a single column with one of the
// six comparison predicates. The result table shares the input's schema
// and consists of reference segments pointing back into base storage;
// rows appear in input scan order.
type TableScan struct {
	operatorState
	column      types.ColumnID
	scanType    ScanType
	searchValue types.Variant
}

// NewTableScan creates a scan of the given column of in's output.
func NewTableScan(in Operator, column types.ColumnID, scanType ScanType, searchValue types.Variant) *TableScan {
	return &TableScan{
		operatorState: operatorState{left: in},
		column:        column,
		scanType:      scanType,
		searchValue:   searchValue,
	}
}

// Column returns the scanned column.
func (s *TableScan) Column() types.ColumnID {
	return s.column
}

// ScanType returns the comparison predicate.
func (s *TableScan) ScanType() ScanType {
	return s.scanType
}

// SearchValue returns the comparison operand.
func (s *TableScan) SearchValue() types.Variant {
	return s.searchValue
}

func (s *TableScan) Execute() error {
	return s.run(s.onExecute)
}

// onExecute reads the scanned column's element type from the input
// schema and monomorphizes the scan on it.
func (s *TableScan) onExecute() (*storage.Table, error) {
	table, err := s.inputTableLeft()
	if err != nil {
		return nil, err
	}
	dt, err := table.ColumnType(s.column)
	if err != nil {
		return nil, fmt.Errorf("table scan: %w", err)
	}
	switch dt {
	case types.DataTypeInt:
		return scanTable[int32](table, s.column, s.scanType, s.searchValue)
	case types.DataTypeLong:
		return scanTable[int64](table, s.column, s.scanType, s.searchValue)
	case types.DataTypeFloat:
		return scanTable[float32](table, s.column, s.scanType, s.searchValue)
	case types.DataTypeDouble:
		return scanTable[float64](table, s.column, s.scanType, s.searchValue)
	default:
		return scanTable[string](table, s.column, s.scanType, s.searchValue)
	}
}

// tableScanRun holds the state of one monomorphized scan: the pending
// position list and the table it refers to. A reference segment is
// bound to exactly one referenced table, so the pending list is flushed
// into a result chunk whenever the referenced table changes.
type tableScanRun[T types.Element] struct {
	table    *storage.Table
	column   types.ColumnID
	scanType ScanType
	search   T

	result         *storage.Table
	pending        types.PosList
	lastReferenced *storage.Table
}

func scanTable[T types.Element](table *storage.Table, column types.ColumnID, scanType ScanType, searchValue types.Variant) (*storage.Table, error) {
	search, err := types.As[T](searchValue)
	if err != nil {
		return nil, fmt.Errorf("table scan: %w", err)
	}

	result := storage.NewTable(storage.TableConfig{ChunkSize: table.TargetChunkSize()})
	for i := 0; i < table.ColumnCount(); i++ {
		name, err := table.ColumnName(types.ColumnID(i))
		if err != nil {
			return nil, err
		}
		dt, err := table.ColumnType(types.ColumnID(i))
		if err != nil {
			return nil, err
		}
		if err := result.AddColumnDefinition(name, dt); err != nil {
			return nil, err
		}
	}

	run := &tableScanRun[T]{
		table:    table,
		column:   column,
		scanType: scanType,
		search:   search,
		result:   result,
	}
	return run.execute()
}

func (r *tableScanRun[T]) execute() (*storage.Table, error) {
	for chunkID := 0; chunkID < r.table.ChunkCount(); chunkID++ {
		chunk, err := r.table.GetChunk(types.ChunkID(chunkID))
		if err != nil {
			return nil, err
		}
		seg, err := chunk.GetSegment(r.column)
		if err != nil {
			return nil, fmt.Errorf("table scan: %w", err)
		}

		switch s := seg.(type) {
		case *storage.ValueSegment[T]:
			if err := r.noteReferenced(r.table); err != nil {
				return nil, err
			}
			r.scanValueSegment(types.ChunkID(chunkID), s)
		case *storage.DictionarySegment[T]:
			if err := r.noteReferenced(r.table); err != nil {
				return nil, err
			}
			if err := r.scanDictionarySegment(types.ChunkID(chunkID), s); err != nil {
				return nil, err
			}
		case *storage.ReferenceSegment:
			if err := r.noteReferenced(s.ReferencedTable()); err != nil {
				return nil, err
			}
			if err := r.scanReferenceSegment(s); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: cannot scan segment of chunk %d as %s", types.ErrTypeMismatch, chunkID, types.DataTypeOf[T]())
		}
	}

	if len(r.pending) > 0 {
		if err := r.flush(); err != nil {
			return nil, err
		}
		return r.result, nil
	}

	// No chunk was ever flushed: the result keeps its schema but holds
	// one chunk of empty value segments, so downstream consumers can
	// tell "no matches" from "matches pointing at nothing".
	first, err := r.result.GetChunk(0)
	if err != nil {
		return nil, err
	}
	if first.ColumnCount() == 0 {
		for column := 0; column < r.result.ColumnCount(); column++ {
			dt, err := r.result.ColumnType(types.ColumnID(column))
			if err != nil {
				return nil, err
			}
			seg, err := storage.NewSegmentOfType(dt)
			if err != nil {
				return nil, err
			}
			if err := first.AddSegment(seg); err != nil {
				return nil, err
			}
		}
	}
	return r.result, nil
}

// noteReferenced records which table the next matches will refer to,
// flushing the pending position list first if that table changes.
func (r *tableScanRun[T]) noteReferenced(table *storage.Table) error {
	if r.lastReferenced != nil && r.lastReferenced != table && len(r.pending) > 0 {
		if err := r.flush(); err != nil {
			return err
		}
	}
	r.lastReferenced = table
	return nil
}

// flush emits the pending position list as one result chunk holding a
// reference segment per column of the referenced table. All segments of
// the chunk share the same position list.
func (r *tableScanRun[T]) flush() error {
	chunk := storage.NewChunk()
	for column := 0; column < r.lastReferenced.ColumnCount(); column++ {
		seg := storage.NewReferenceSegment(r.lastReferenced, types.ColumnID(column), r.pending)
		if err := chunk.AddSegment(seg); err != nil {
			return err
		}
	}
	r.result.EmplaceChunk(chunk)
	r.pending = nil
	return nil
}

func (r *tableScanRun[T]) scanValueSegment(chunkID types.ChunkID, seg *storage.ValueSegment[T]) {
	for i, v := range seg.Values() {
		if r.matches(v) {
			r.pending = append(r.pending, types.RowID{Chunk: chunkID, Offset: types.ChunkOffset(i)})
		}
	}
}

// scanDictionarySegment compares attribute values against the
// dictionary bounds of the search value instead of decoding each row.
func (r *tableScanRun[T]) scanDictionarySegment(chunkID types.ChunkID, seg *storage.DictionarySegment[T]) error {
	searchValue := types.ValueOf(r.search)
	lower, err := seg.LowerBound(searchValue)
	if err != nil {
		return err
	}
	upper, err := seg.UpperBound(searchValue)
	if err != nil {
		return err
	}
	count := types.ValueID(seg.UniqueValuesCount())

	attrs := seg.AttributeVector()
	for i := uint32(0); i < attrs.Size(); i++ {
		id, err := attrs.Get(i)
		if err != nil {
			return err
		}
		if r.matchesValueID(id, lower, upper, count) {
			r.pending = append(r.pending, types.RowID{Chunk: chunkID, Offset: types.ChunkOffset(i)})
		}
	}
	return nil
}

// scanReferenceSegment resolves each position of the segment in its
// referenced table and keeps matching positions unchanged, so result
// rows still point at base storage.
func (r *tableScanRun[T]) scanReferenceSegment(seg *storage.ReferenceSegment) error {
	referenced := seg.ReferencedTable()
	for _, pos := range seg.Positions() {
		chunk, err := referenced.GetChunk(pos.Chunk)
		if err != nil {
			return err
		}
		resolved, err := chunk.GetSegment(seg.ReferencedColumn())
		if err != nil {
			return err
		}

		var value T
		switch rs := resolved.(type) {
		case *storage.ValueSegment[T]:
			if value, err = rs.Value(pos.Offset); err != nil {
				return err
			}
		case *storage.DictionarySegment[T]:
			if value, err = rs.Value(pos.Offset); err != nil {
				return err
			}
		case *storage.ReferenceSegment:
			return fmt.Errorf("%w: reference segment resolves to another reference segment", storage.ErrInvariant)
		default:
			return fmt.Errorf("%w: reference segment resolves to a segment of another type", types.ErrTypeMismatch)
		}

		if r.matches(value) {
			r.pending = append(r.pending, pos)
		}
	}
	return nil
}

func (r *tableScanRun[T]) matches(v T) bool {
	switch r.scanType {
	case ScanEquals:
		return v == r.search
	case ScanNotEquals:
		return v != r.search
	case ScanGreaterThan:
		return v > r.search
	case ScanGreaterThanEquals:
		return v >= r.search
	case ScanLessThan:
		return v < r.search
	default:
		return v <= r.search
	}
}

// matchesValueID evaluates the predicate on a dictionary index given
// the precomputed lower bound, upper bound, and dictionary size.
func (r *tableScanRun[T]) matchesValueID(id, lower, upper, count types.ValueID) bool {
	switch r.scanType {
	case ScanEquals:
		return id >= lower && id < upper
	case ScanNotEquals:
		return id < lower || id >= upper
	case ScanGreaterThan:
		return id >= upper && id < count
	case ScanGreaterThanEquals:
		return id >= lower && id < count
	case ScanLessThan:
		return id < lower
	default:
		return id < upper
	}
}
