package storage

import (
	"errors"
	"testing"

	"strata/internal/types"
)

func baseTable(t *testing.T, chunkSize uint32, values ...int32) *Table {
	t.Helper()
	table := NewTable(TableConfig{ChunkSize: chunkSize})
	if err := table.AddColumn("x", types.DataTypeInt); err != nil {
		t.Fatalf("add column: %v", err)
	}
	for _, v := range values {
		if err := table.Append([]types.Variant{types.ValueOf(v)}); err != nil {
			t.Fatalf("append %d: %v", v, err)
		}
	}
	return table
}

func TestReferenceSegmentGet(t *testing.T) {
	table := baseTable(t, 2, 10, 20, 30)

	positions := types.PosList{
		{Chunk: 1, Offset: 0},
		{Chunk: 0, Offset: 1},
		{Chunk: 0, Offset: 1},
	}
	s := NewReferenceSegment(table, 0, positions)

	if s.Size() != 3 {
		t.Fatalf("size: got %d", s.Size())
	}
	want := []int32{30, 20, 20}
	for i, w := range want {
		v, err := s.Get(types.ChunkOffset(i))
		if err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
		got, err := types.As[int32](v)
		if err != nil {
			t.Fatalf("cast %d: %v", i, err)
		}
		if got != w {
			t.Fatalf("position %d: got %d, want %d", i, got, w)
		}
	}

	if s.ReferencedTable() != table {
		t.Fatal("referenced table should be the base table")
	}
	if s.ReferencedColumn() != 0 {
		t.Fatalf("referenced column: got %d", s.ReferencedColumn())
	}
}

func TestReferenceSegmentImmutable(t *testing.T) {
	table := baseTable(t, 2, 1)
	s := NewReferenceSegment(table, 0, nil)
	if err := s.Append(types.ValueOf(int32(1))); !errors.Is(err, ErrImmutable) {
		t.Fatalf("want ErrImmutable, got %v", err)
	}
}

func TestReferenceSegmentOutOfRange(t *testing.T) {
	table := baseTable(t, 2, 1)
	s := NewReferenceSegment(table, 0, types.PosList{{Chunk: 0, Offset: 0}})
	if _, err := s.Get(1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("want ErrOutOfRange, got %v", err)
	}

	dangling := NewReferenceSegment(table, 0, types.PosList{{Chunk: 5, Offset: 0}})
	if _, err := dangling.Get(0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("dangling chunk: want ErrOutOfRange, got %v", err)
	}
}
