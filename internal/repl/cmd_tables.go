package repl

import (
	"strata/internal/types"
)

// cmdTables lists the catalog.
func (r *REPL) cmdTables() {
	names := r.manager.TableNames()
	if len(names) == 0 {
		r.printf("No tables.\n")
		return
	}
	r.manager.Summary(r.out)
}

// cmdDescribe shows one table's schema and chunk layout.
func (r *REPL) cmdDescribe(args []string) {
	if len(args) != 1 {
		r.printf("Usage: describe NAME\n")
		return
	}
	table, err := r.manager.GetTable(args[0])
	if err != nil {
		r.printf("%v\n", err)
		return
	}

	r.printf("Table %s (%s)\n", args[0], table.ID().String())
	r.printf("  Target chunk size: %d\n", table.TargetChunkSize())
	r.printf("  Columns:\n")
	for column := 0; column < table.ColumnCount(); column++ {
		name, _ := table.ColumnName(types.ColumnID(column))
		dt, _ := table.ColumnType(types.ColumnID(column))
		r.printf("    %d: %s %s\n", column, name, dt)
	}
	r.printf("  Chunks:\n")
	for chunkID := 0; chunkID < table.ChunkCount(); chunkID++ {
		chunk, err := table.GetChunk(types.ChunkID(chunkID))
		if err != nil {
			r.printf("    %d: %v\n", chunkID, err)
			continue
		}
		r.printf("    %d: %d rows\n", chunkID, chunk.Size())
	}
}

// cmdDrop removes a table from the catalog.
func (r *REPL) cmdDrop(args []string) {
	if len(args) != 1 {
		r.printf("Usage: drop NAME\n")
		return
	}
	if err := r.manager.DropTable(args[0]); err != nil {
		r.printf("%v\n", err)
		return
	}
	r.printf("Dropped %s.\n", args[0])
}
