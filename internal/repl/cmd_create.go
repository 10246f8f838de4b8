package repl

import (
	"strconv"
	"strings"

	"strata/internal/storage"
	"strata/internal/types"
)

// cmdCreate creates a table: create NAME COL:TYPE ... [CHUNK_SIZE].
func (r *REPL) cmdCreate(args []string) {
	if len(args) < 2 {
		r.printf("Usage: create NAME COL:TYPE ... [CHUNK_SIZE]\n")
		return
	}
	name := args[0]
	defArgs := args[1:]

	var chunkSize uint32
	if last := defArgs[len(defArgs)-1]; !strings.Contains(last, ":") {
		size, err := strconv.ParseUint(last, 10, 32)
		if err != nil || size == 0 {
			r.printf("Invalid chunk size %q.\n", last)
			return
		}
		chunkSize = uint32(size)
		defArgs = defArgs[:len(defArgs)-1]
	}
	if len(defArgs) == 0 {
		r.printf("Usage: create NAME COL:TYPE ... [CHUNK_SIZE]\n")
		return
	}

	table := storage.NewTable(storage.TableConfig{ChunkSize: chunkSize})
	for _, arg := range defArgs {
		def, err := parseColumnDef(arg)
		if err != nil {
			r.printf("%v\n", err)
			return
		}
		if err := table.AddColumn(def.name, def.dataType); err != nil {
			r.printf("%v\n", err)
			return
		}
	}

	if err := r.manager.AddTable(name, table); err != nil {
		r.printf("%v\n", err)
		return
	}
	r.printf("Created %s.\n", name)
}

// cmdInsert appends one row: insert NAME VALUE ...
func (r *REPL) cmdInsert(args []string) {
	if len(args) < 2 {
		r.printf("Usage: insert NAME VALUE ...\n")
		return
	}
	table, err := r.manager.GetTable(args[0])
	if err != nil {
		r.printf("%v\n", err)
		return
	}

	literals := args[1:]
	if len(literals) != table.ColumnCount() {
		r.printf("Table %s has %d columns, got %d values.\n", args[0], table.ColumnCount(), len(literals))
		return
	}

	row := make([]types.Variant, len(literals))
	for i, literal := range literals {
		dt, err := table.ColumnType(types.ColumnID(i))
		if err != nil {
			r.printf("%v\n", err)
			return
		}
		if row[i], err = parseValue(dt, literal); err != nil {
			r.printf("%v\n", err)
			return
		}
	}

	if err := table.Append(row); err != nil {
		r.printf("%v\n", err)
		return
	}
	r.printf("Inserted 1 row into %s.\n", args[0])
}
