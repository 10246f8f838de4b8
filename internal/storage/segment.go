// Package storage implements the columnar storage model: typed value
// segments, dictionary-compressed segments, reference segments that
// indirect into other tables, chunks grouping one segment per column,
// append-only chunked tables, and the process-wide table catalog.
package storage

import (
	"errors"
	"fmt"

	"strata/internal/types"
)

var (
	ErrArityMismatch = errors.New("row arity does not match column count")
	ErrOutOfRange    = errors.New("index out of range")
	ErrInvariant     = errors.New("invariant violated")
	ErrOverflow      = errors.New("value exceeds attribute vector width")
	ErrImmutable     = errors.New("segment is immutable")
)

// Segment is one column's storage within one chunk. Implementations are
// ValueSegment (mutable typed array), DictionarySegment (immutable
// dictionary encoding), and ReferenceSegment (indirection into another
// table).
type Segment interface {
	// Size returns the number of rows in the segment.
	Size() uint32

	// Get returns the value at the given offset as a Variant.
	// May allocate for string values.
	Get(i types.ChunkOffset) (types.Variant, error)

	// Append adds a value to the end of the segment. Only value
	// segments accept appends; dictionary and reference segments
	// return ErrImmutable.
	Append(v types.Variant) error
}

// NewSegmentOfType returns an empty value segment holding elements of
// the given data type.
func NewSegmentOfType(dt types.DataType) (Segment, error) {
	switch dt {
	case types.DataTypeInt:
		return NewValueSegment[int32](), nil
	case types.DataTypeLong:
		return NewValueSegment[int64](), nil
	case types.DataTypeFloat:
		return NewValueSegment[float32](), nil
	case types.DataTypeDouble:
		return NewValueSegment[float64](), nil
	case types.DataTypeString:
		return NewValueSegment[string](), nil
	}
	return nil, fmt.Errorf("%w: DataType(%d)", types.ErrUnknownType, uint8(dt))
}

// NewDictionarySegmentOfType dictionary-encodes a base segment whose
// elements are of the given data type.
func NewDictionarySegmentOfType(dt types.DataType, base Segment) (Segment, error) {
	switch dt {
	case types.DataTypeInt:
		return NewDictionarySegment[int32](base)
	case types.DataTypeLong:
		return NewDictionarySegment[int64](base)
	case types.DataTypeFloat:
		return NewDictionarySegment[float32](base)
	case types.DataTypeDouble:
		return NewDictionarySegment[float64](base)
	case types.DataTypeString:
		return NewDictionarySegment[string](base)
	}
	return nil, fmt.Errorf("%w: DataType(%d)", types.ErrUnknownType, uint8(dt))
}
