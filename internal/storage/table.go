package storage

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"strata/internal/logging"
	"strata/internal/types"
)

// DefaultChunkSize is the target chunk size used when none is given.
const DefaultChunkSize = 100

// TableConfig carries construction parameters for a table.
type TableConfig struct {
	// ChunkSize is the row count at which the active chunk is
	// considered full and a new chunk is started. Defaults to
	// DefaultChunkSize.
	ChunkSize uint32

	// Logger for structured logging. If nil, logging is disabled.
	// The table scopes this logger with component="table".
	Logger *slog.Logger
}

// Table is an ordered sequence of chunks sharing a column schema.
// Rows are appended to the active (last) chunk; a new chunk is started
// when the active one reaches the target chunk size.
//
// Concurrency: GetChunk takes shared access and CompressChunk swaps the
// encoded chunk under exclusive access, so compression is linearizable
// with concurrent readers. Append, AddColumn, CreateNewChunk, and
// EmplaceChunk are build-phase operations and must not run concurrently
// with readers of the same table.
type Table struct {
	id        uuid.UUID
	chunkSize uint32
	logger    *slog.Logger

	mu          sync.RWMutex
	columnNames []string
	columnTypes []types.DataType
	chunks      []*Chunk
}

// NewTable creates a table with no columns and one empty chunk.
func NewTable(cfg TableConfig) *Table {
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	return &Table{
		id:        uuid.New(),
		chunkSize: cfg.ChunkSize,
		logger:    logging.Default(cfg.Logger).With("component", "table"),
		chunks:    []*Chunk{NewChunk()},
	}
}

// ID returns the table's identity, assigned at construction.
func (t *Table) ID() uuid.UUID {
	return t.id
}

// TargetChunkSize returns the row count at which chunks are considered
// full.
func (t *Table) TargetChunkSize() uint32 {
	return t.chunkSize
}

// AddColumnDefinition appends a schema entry without adding a segment
// to any chunk. Used when chunks are assembled separately, e.g. by
// operators emplacing result chunks.
func (t *Table) AddColumnDefinition(name string, dt types.DataType) error {
	if slices.Contains(t.columnNames, name) {
		return fmt.Errorf("%w: column %q already exists", ErrInvariant, name)
	}
	t.columnNames = append(t.columnNames, name)
	t.columnTypes = append(t.columnTypes, dt)
	return nil
}

// AddColumn appends a schema entry and a matching empty value segment
// to the active chunk. Only legal while the table has exactly one chunk
// and no rows.
func (t *Table) AddColumn(name string, dt types.DataType) error {
	if len(t.chunks) != 1 {
		return fmt.Errorf("%w: add column requires exactly one chunk, have %d", ErrInvariant, len(t.chunks))
	}
	if t.RowCount() != 0 {
		return fmt.Errorf("%w: add column requires an empty table, have %d rows", ErrInvariant, t.RowCount())
	}
	if err := t.AddColumnDefinition(name, dt); err != nil {
		return err
	}
	seg, err := NewSegmentOfType(dt)
	if err != nil {
		return err
	}
	return t.chunks[0].AddSegment(seg)
}

// Append adds one row to the table, starting a new chunk first if the
// active chunk is full.
func (t *Table) Append(row []types.Variant) error {
	if t.chunks[len(t.chunks)-1].Size() >= t.chunkSize {
		if err := t.CreateNewChunk(); err != nil {
			return err
		}
	}
	return t.chunks[len(t.chunks)-1].Append(row)
}

// CreateNewChunk appends a fresh chunk with one empty value segment per
// column.
func (t *Table) CreateNewChunk() error {
	chunk := NewChunk()
	for _, dt := range t.columnTypes {
		seg, err := NewSegmentOfType(dt)
		if err != nil {
			return err
		}
		if err := chunk.AddSegment(seg); err != nil {
			return err
		}
	}
	t.mu.Lock()
	t.chunks = append(t.chunks, chunk)
	t.mu.Unlock()
	return nil
}

// EmplaceChunk adds an assembled chunk: it replaces the active chunk if
// that chunk is still empty, and appends otherwise.
func (t *Table) EmplaceChunk(chunk *Chunk) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.chunks[len(t.chunks)-1].Size() == 0 {
		t.chunks[len(t.chunks)-1] = chunk
		return
	}
	t.chunks = append(t.chunks, chunk)
}

// GetChunk returns the chunk with the given id under shared access.
func (t *Table) GetChunk(id types.ChunkID) (*Chunk, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(id) >= len(t.chunks) {
		return nil, fmt.Errorf("%w: chunk %d, table has %d chunks", ErrOutOfRange, id, len(t.chunks))
	}
	return t.chunks[id], nil
}

// ChunkCount returns the number of chunks.
func (t *Table) ChunkCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.chunks)
}

// RowCount returns the total row count across all chunks.
func (t *Table) RowCount() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var rows uint64
	for _, c := range t.chunks {
		rows += uint64(c.Size())
	}
	return rows
}

// ColumnCount returns the number of columns in the schema.
func (t *Table) ColumnCount() int {
	return len(t.columnNames)
}

// ColumnNames returns a copy of the schema's column names.
func (t *Table) ColumnNames() []string {
	return slices.Clone(t.columnNames)
}

// ColumnName returns the name of the given column.
func (t *Table) ColumnName(column types.ColumnID) (string, error) {
	if int(column) >= len(t.columnNames) {
		return "", fmt.Errorf("%w: column %d, table has %d columns", ErrOutOfRange, column, len(t.columnNames))
	}
	return t.columnNames[column], nil
}

// ColumnType returns the element type of the given column.
func (t *Table) ColumnType(column types.ColumnID) (types.DataType, error) {
	if int(column) >= len(t.columnTypes) {
		return 0, fmt.Errorf("%w: column %d, table has %d columns", ErrOutOfRange, column, len(t.columnTypes))
	}
	return t.columnTypes[column], nil
}

// ColumnIDByName returns the id of the named column.
func (t *Table) ColumnIDByName(name string) (types.ColumnID, error) {
	for i, n := range t.columnNames {
		if n == name {
			return types.ColumnID(i), nil
		}
	}
	return 0, fmt.Errorf("%w: no column named %q", ErrOutOfRange, name)
}

// CompressChunk replaces the given full chunk with a chunk of
// dictionary segments, one per column. The replacement is built while
// readers continue to see the old chunk, then swapped in under
// exclusive access.
func (t *Table) CompressChunk(id types.ChunkID) error {
	t.mu.RLock()
	if int(id) >= len(t.chunks) {
		t.mu.RUnlock()
		return fmt.Errorf("%w: chunk %d, table has %d chunks", ErrOutOfRange, id, len(t.chunks))
	}
	old := t.chunks[id]
	if old.Size() < t.chunkSize {
		t.mu.RUnlock()
		return fmt.Errorf("%w: chunk %d is not full (%d of %d rows)", ErrInvariant, id, old.Size(), t.chunkSize)
	}
	columnTypes := slices.Clone(t.columnTypes)
	t.mu.RUnlock()

	compressed := NewChunk()
	for column, dt := range columnTypes {
		seg, err := old.GetSegment(types.ColumnID(column))
		if err != nil {
			return err
		}
		encoded, err := NewDictionarySegmentOfType(dt, seg)
		if err != nil {
			return fmt.Errorf("compress chunk %d column %d: %w", id, column, err)
		}
		if err := compressed.AddSegment(encoded); err != nil {
			return err
		}
	}

	t.mu.Lock()
	t.chunks[id] = compressed
	t.mu.Unlock()

	t.logger.Info("compressed chunk", "table", t.id.String(), "chunk", id, "rows", compressed.Size())
	return nil
}

// CompressFullChunks compresses every full chunk of the table, one
// goroutine per chunk. The first error cancels the remaining work.
func (t *Table) CompressFullChunks(ctx context.Context) error {
	t.mu.RLock()
	var full []types.ChunkID
	for i, c := range t.chunks {
		if c.Size() >= t.chunkSize {
			full = append(full, types.ChunkID(i))
		}
	}
	t.mu.RUnlock()

	g, ctx := errgroup.WithContext(ctx)
	for _, id := range full {
		id := id
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return t.CompressChunk(id)
		})
	}
	return g.Wait()
}
