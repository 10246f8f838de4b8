package storage

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"strata/internal/logging"
)

// Manager is the process-wide name→table catalog.
//
// Logging:
//   - Logger is dependency-injected via NewManager
//   - The manager owns its scoped logger (component="storage-manager")
//   - Only catalog lifecycle events are logged
type Manager struct {
	mu     sync.RWMutex
	tables map[string]*Table
	logger *slog.Logger
}

// NewManager creates an empty catalog. The logger may be nil.
func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		tables: make(map[string]*Table),
		logger: logging.Default(logger).With("component", "storage-manager"),
	}
}

var (
	defaultManager     *Manager
	defaultManagerOnce sync.Once
)

// Default returns a lazily created process-wide catalog, a convenience
// for the CLI and tests that do not thread an explicit manager.
func Default() *Manager {
	defaultManagerOnce.Do(func() {
		defaultManager = NewManager(nil)
	})
	return defaultManager
}

// AddTable registers a table under a name. The name must be unused.
func (m *Manager) AddTable(name string, table *Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tables[name]; ok {
		return fmt.Errorf("%w: table %q already exists", ErrInvariant, name)
	}
	m.tables[name] = table
	m.logger.Info("added table", "name", name, "table", table.ID().String())
	return nil
}

// DropTable removes a table from the catalog. The name must be in use.
func (m *Manager) DropTable(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	table, ok := m.tables[name]
	if !ok {
		return fmt.Errorf("%w: no table named %q", ErrInvariant, name)
	}
	delete(m.tables, name)
	m.logger.Info("dropped table", "name", name, "table", table.ID().String())
	return nil
}

// GetTable returns the table registered under a name.
func (m *Manager) GetTable(name string) (*Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	table, ok := m.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: no table named %q", ErrInvariant, name)
	}
	return table, nil
}

// HasTable reports whether a name is in use.
func (m *Manager) HasTable(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.tables[name]
	return ok
}

// TableNames returns all registered names, sorted.
func (m *Manager) TableNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.tables))
	for name := range m.tables {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Reset drops every table, returning the catalog to its initial state.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables = make(map[string]*Table)
	m.logger.Info("reset catalog")
}

const summaryColumnWidth = 25

// Summary writes a tabular overview of the catalog: one line per table
// with its column, row, and chunk counts.
func (m *Manager) Summary(w io.Writer) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.tables))
	for name := range m.tables {
		names = append(names, name)
	}
	slices.Sort(names)

	fmt.Fprintf(w, "%-*s%-*s%-*s%-*s\n",
		summaryColumnWidth, "table_name",
		summaryColumnWidth, "#columns",
		summaryColumnWidth, "#rows",
		summaryColumnWidth, "#chunks")
	for _, name := range names {
		table := m.tables[name]
		fmt.Fprintf(w, "%-*s%-*d%-*d%-*d\n",
			summaryColumnWidth, name,
			summaryColumnWidth, table.ColumnCount(),
			summaryColumnWidth, table.RowCount(),
			summaryColumnWidth, table.ChunkCount())
	}
}
