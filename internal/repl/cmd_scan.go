package repl

import (
	"strings"

	"strata/internal/operators"
	"strata/internal/storage"
	"strata/internal/types"
)

// cmdScan runs a predicate scan: scan NAME COL OP VALUE.
// The value may contain spaces for string columns: the words after the
// operator, joined by single spaces, form the literal.
func (r *REPL) cmdScan(args []string) {
	if len(args) < 4 {
		r.printf("Usage: scan NAME COL OP VALUE\n")
		return
	}
	table, err := r.manager.GetTable(args[0])
	if err != nil {
		r.printf("%v\n", err)
		return
	}
	column, err := table.ColumnIDByName(args[1])
	if err != nil {
		r.printf("%v\n", err)
		return
	}
	scanType, err := operators.ParseScanType(args[2])
	if err != nil {
		r.printf("%v\n", err)
		return
	}
	dt, err := table.ColumnType(column)
	if err != nil {
		r.printf("%v\n", err)
		return
	}
	searchValue, err := parseValue(dt, strings.Join(args[3:], " "))
	if err != nil {
		r.printf("%v\n", err)
		return
	}

	get := operators.NewGetTable(r.manager, args[0])
	scan := operators.NewTableScan(get, column, scanType, searchValue)
	if err := get.Execute(); err != nil {
		r.printf("%v\n", err)
		return
	}
	if err := scan.Execute(); err != nil {
		r.printf("%v\n", err)
		return
	}
	result, err := scan.Output()
	if err != nil {
		r.printf("%v\n", err)
		return
	}

	r.printf("%s\n", strings.Join(result.ColumnNames(), "\t"))
	rows, err := r.printRows(result)
	if err != nil {
		r.printf("%v\n", err)
		return
	}
	r.printf("(%d rows)\n", rows)
}

// printRows resolves and prints every row of a result table, reference
// segments included, returning the row count.
func (r *REPL) printRows(table *storage.Table) (int, error) {
	rows := 0
	fields := make([]string, table.ColumnCount())
	for chunkID := 0; chunkID < table.ChunkCount(); chunkID++ {
		chunk, err := table.GetChunk(types.ChunkID(chunkID))
		if err != nil {
			return rows, err
		}
		for offset := uint32(0); offset < chunk.Size(); offset++ {
			for column := range fields {
				seg, err := chunk.GetSegment(types.ColumnID(column))
				if err != nil {
					return rows, err
				}
				v, err := seg.Get(types.ChunkOffset(offset))
				if err != nil {
					return rows, err
				}
				fields[column] = v.String()
			}
			r.printf("%s\n", strings.Join(fields, "\t"))
			rows++
		}
	}
	return rows, nil
}
