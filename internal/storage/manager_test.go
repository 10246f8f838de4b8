package storage

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"strata/internal/types"
)

func TestManagerAddGetDrop(t *testing.T) {
	m := NewManager(nil)
	table := NewTable(TableConfig{ChunkSize: 2})

	if err := m.AddTable("fleet", table); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !m.HasTable("fleet") {
		t.Fatal("has: should be true")
	}
	got, err := m.GetTable("fleet")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != table {
		t.Fatal("get: wrong table")
	}

	if err := m.DropTable("fleet"); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if m.HasTable("fleet") {
		t.Fatal("has after drop: should be false")
	}
}

func TestManagerDuplicateAdd(t *testing.T) {
	m := NewManager(nil)
	if err := m.AddTable("t", NewTable(TableConfig{})); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := m.AddTable("t", NewTable(TableConfig{})); !errors.Is(err, ErrInvariant) {
		t.Fatalf("duplicate add: want ErrInvariant, got %v", err)
	}
}

func TestManagerDropMissing(t *testing.T) {
	m := NewManager(nil)
	if err := m.DropTable("ghost"); !errors.Is(err, ErrInvariant) {
		t.Fatalf("want ErrInvariant, got %v", err)
	}
	if _, err := m.GetTable("ghost"); !errors.Is(err, ErrInvariant) {
		t.Fatalf("get missing: want ErrInvariant, got %v", err)
	}
}

func TestManagerTableNamesSorted(t *testing.T) {
	m := NewManager(nil)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := m.AddTable(name, NewTable(TableConfig{})); err != nil {
			t.Fatalf("add %q: %v", name, err)
		}
	}
	if got := m.TableNames(); !slices.Equal(got, []string{"alpha", "mid", "zeta"}) {
		t.Fatalf("names: got %v", got)
	}
}

func TestManagerReset(t *testing.T) {
	m := NewManager(nil)
	if err := m.AddTable("t", NewTable(TableConfig{})); err != nil {
		t.Fatalf("add: %v", err)
	}
	m.Reset()
	if m.HasTable("t") {
		t.Fatal("reset should drop all tables")
	}
	if len(m.TableNames()) != 0 {
		t.Fatalf("names after reset: got %v", m.TableNames())
	}
}

func TestManagerSummary(t *testing.T) {
	m := NewManager(nil)
	table := NewTable(TableConfig{ChunkSize: 2})
	if err := table.AddColumn("a", types.DataTypeInt); err != nil {
		t.Fatalf("add column: %v", err)
	}
	for _, v := range []int32{1, 2, 3} {
		if err := table.Append([]types.Variant{types.ValueOf(v)}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := m.AddTable("fleet", table); err != nil {
		t.Fatalf("add: %v", err)
	}

	var out strings.Builder
	m.Summary(&out)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("summary lines: got %d\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "table_name") {
		t.Fatalf("header: %q", lines[0])
	}
	fields := strings.Fields(lines[1])
	if !slices.Equal(fields, []string{"fleet", "1", "3", "2"}) {
		t.Fatalf("summary row: got %v", fields)
	}
}

func TestDefaultManager(t *testing.T) {
	if Default() == nil {
		t.Fatal("default manager should exist")
	}
	if Default() != Default() {
		t.Fatal("default manager should be stable")
	}
}
