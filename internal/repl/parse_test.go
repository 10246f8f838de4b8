package repl

import (
	"testing"

	"strata/internal/types"
)

func TestParseColumnDef(t *testing.T) {
	def, err := parseColumnDef("wagons:int")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if def.name != "wagons" || def.dataType != types.DataTypeInt {
		t.Fatalf("got %+v", def)
	}

	for _, bad := range []string{"wagons", ":int", "wagons:integer"} {
		if _, err := parseColumnDef(bad); err == nil {
			t.Fatalf("parse %q: want error", bad)
		}
	}
}

func TestParseValue(t *testing.T) {
	v, err := parseValue(types.DataTypeInt, "-4")
	if err != nil {
		t.Fatalf("int: %v", err)
	}
	if got, _ := types.As[int32](v); got != -4 {
		t.Fatalf("int: got %d", got)
	}

	v, err = parseValue(types.DataTypeLong, "9999999999")
	if err != nil {
		t.Fatalf("long: %v", err)
	}
	if got, _ := types.As[int64](v); got != 9999999999 {
		t.Fatalf("long: got %d", got)
	}

	v, err = parseValue(types.DataTypeFloat, "1.5")
	if err != nil {
		t.Fatalf("float: %v", err)
	}
	if got, _ := types.As[float32](v); got != 1.5 {
		t.Fatalf("float: got %g", got)
	}

	v, err = parseValue(types.DataTypeDouble, "2.25")
	if err != nil {
		t.Fatalf("double: %v", err)
	}
	if got, _ := types.As[float64](v); got != 2.25 {
		t.Fatalf("double: got %g", got)
	}

	v, err = parseValue(types.DataTypeString, "anything goes")
	if err != nil {
		t.Fatalf("string: %v", err)
	}
	if got, _ := types.As[string](v); got != "anything goes" {
		t.Fatalf("string: got %q", got)
	}

	if _, err := parseValue(types.DataTypeInt, "4000000000"); err == nil {
		t.Fatal("int overflow: want error")
	}
	if _, err := parseValue(types.DataTypeDouble, "x"); err == nil {
		t.Fatal("bad double: want error")
	}
}
