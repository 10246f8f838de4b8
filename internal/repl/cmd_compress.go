package repl

import (
	"context"
	"strconv"

	"strata/internal/types"
)

// cmdCompress dictionary-encodes chunks: compress NAME compresses every
// full chunk, compress NAME CHUNK compresses one.
func (r *REPL) cmdCompress(args []string) {
	if len(args) < 1 || len(args) > 2 {
		r.printf("Usage: compress NAME [CHUNK]\n")
		return
	}
	table, err := r.manager.GetTable(args[0])
	if err != nil {
		r.printf("%v\n", err)
		return
	}

	if len(args) == 2 {
		id, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			r.printf("Invalid chunk id %q.\n", args[1])
			return
		}
		if err := table.CompressChunk(types.ChunkID(id)); err != nil {
			r.printf("%v\n", err)
			return
		}
		r.printf("Compressed chunk %d of %s.\n", id, args[0])
		return
	}

	if err := table.CompressFullChunks(context.Background()); err != nil {
		r.printf("%v\n", err)
		return
	}
	r.printf("Compressed all full chunks of %s.\n", args[0])
}
