package repl

import (
	"fmt"
	"strconv"
	"strings"

	"strata/internal/types"
)

// columnDef is one NAME:TYPE pair from a create command.
type columnDef struct {
	name     string
	dataType types.DataType
}

// parseColumnDef parses a single NAME:TYPE argument.
func parseColumnDef(arg string) (columnDef, error) {
	name, typeName, ok := strings.Cut(arg, ":")
	if !ok || name == "" {
		return columnDef{}, fmt.Errorf("expected NAME:TYPE, got %q", arg)
	}
	dt, err := types.ParseDataType(typeName)
	if err != nil {
		return columnDef{}, err
	}
	return columnDef{name: name, dataType: dt}, nil
}

// parseValue parses a literal of the given element type.
func parseValue(dt types.DataType, s string) (types.Variant, error) {
	switch dt {
	case types.DataTypeInt:
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return types.Variant{}, fmt.Errorf("invalid int %q: %w", s, err)
		}
		return types.ValueOf(int32(v)), nil
	case types.DataTypeLong:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return types.Variant{}, fmt.Errorf("invalid long %q: %w", s, err)
		}
		return types.ValueOf(v), nil
	case types.DataTypeFloat:
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return types.Variant{}, fmt.Errorf("invalid float %q: %w", s, err)
		}
		return types.ValueOf(float32(v)), nil
	case types.DataTypeDouble:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return types.Variant{}, fmt.Errorf("invalid double %q: %w", s, err)
		}
		return types.ValueOf(v), nil
	default:
		return types.ValueOf(s), nil
	}
}
