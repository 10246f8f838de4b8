package operators

import (
	"fmt"

	"strata/internal/storage"
)

// GetTable is the leaf operator of a DAG: it produces a catalog table
// by name.
type GetTable struct {
	operatorState
	manager *storage.Manager
	name    string
}

// NewGetTable creates a GetTable operator reading from the given
// catalog.
func NewGetTable(manager *storage.Manager, name string) *GetTable {
	return &GetTable{manager: manager, name: name}
}

// TableName returns the catalog name this operator resolves.
func (g *GetTable) TableName() string {
	return g.name
}

func (g *GetTable) Execute() error {
	return g.run(g.onExecute)
}

func (g *GetTable) onExecute() (*storage.Table, error) {
	table, err := g.manager.GetTable(g.name)
	if err != nil {
		return nil, fmt.Errorf("get table: %w", err)
	}
	return table, nil
}
