package types

import (
	"fmt"
	"math"
	"strconv"
)

// Variant holds a single value of any element type together with its
// type tag. Numeric values are stored as raw bits, strings separately,
// so a Variant never allocates for numerics.
type Variant struct {
	dt  DataType
	num uint64
	str string
}

// ValueOf wraps an element value in a Variant.
func ValueOf[T Element](v T) Variant {
	switch x := any(v).(type) {
	case int32:
		return Variant{dt: DataTypeInt, num: uint64(uint32(x))}
	case int64:
		return Variant{dt: DataTypeLong, num: uint64(x)}
	case float32:
		return Variant{dt: DataTypeFloat, num: uint64(math.Float32bits(x))}
	case float64:
		return Variant{dt: DataTypeDouble, num: math.Float64bits(x)}
	default:
		return Variant{dt: DataTypeString, str: x.(string)}
	}
}

// As extracts the element value of type T from a Variant.
// Returns ErrTypeMismatch if the Variant holds a different type; there
// is no coercion between numeric kinds.
func As[T Element](v Variant) (T, error) {
	var zero T
	if v.dt != DataTypeOf[T]() {
		return zero, fmt.Errorf("%w: variant holds %s, want %s", ErrTypeMismatch, v.dt, DataTypeOf[T]())
	}
	switch p := any(&zero).(type) {
	case *int32:
		*p = int32(uint32(v.num))
	case *int64:
		*p = int64(v.num)
	case *float32:
		*p = math.Float32frombits(uint32(v.num))
	case *float64:
		*p = math.Float64frombits(v.num)
	case *string:
		*p = v.str
	}
	return zero, nil
}

// DataType returns the type tag of the value held by the Variant.
func (v Variant) DataType() DataType {
	return v.dt
}

// Equal reports whether two Variants hold the same type and value.
func (v Variant) Equal(o Variant) bool {
	return v.dt == o.dt && v.num == o.num && v.str == o.str
}

// String renders the held value for display.
func (v Variant) String() string {
	switch v.dt {
	case DataTypeInt:
		return strconv.FormatInt(int64(int32(uint32(v.num))), 10)
	case DataTypeLong:
		return strconv.FormatInt(int64(v.num), 10)
	case DataTypeFloat:
		return strconv.FormatFloat(float64(math.Float32frombits(uint32(v.num))), 'g', -1, 32)
	case DataTypeDouble:
		return strconv.FormatFloat(math.Float64frombits(v.num), 'g', -1, 64)
	default:
		return v.str
	}
}
