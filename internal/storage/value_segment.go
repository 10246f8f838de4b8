package storage

import (
	"fmt"

	"strata/internal/types"
)

// ValueSegment is a mutable, contiguous array of elements of type T.
type ValueSegment[T types.Element] struct {
	values []T
}

// NewValueSegment creates an empty value segment.
func NewValueSegment[T types.Element]() *ValueSegment[T] {
	return &ValueSegment[T]{}
}

func (s *ValueSegment[T]) Size() uint32 {
	return uint32(len(s.values))
}

func (s *ValueSegment[T]) Get(i types.ChunkOffset) (types.Variant, error) {
	v, err := s.Value(i)
	if err != nil {
		return types.Variant{}, err
	}
	return types.ValueOf(v), nil
}

// Value returns the element at the given offset without boxing.
func (s *ValueSegment[T]) Value(i types.ChunkOffset) (T, error) {
	var zero T
	if uint32(i) >= uint32(len(s.values)) {
		return zero, fmt.Errorf("%w: offset %d, segment size %d", ErrOutOfRange, i, len(s.values))
	}
	return s.values[i], nil
}

func (s *ValueSegment[T]) Append(v types.Variant) error {
	tv, err := types.As[T](v)
	if err != nil {
		return fmt.Errorf("append to value segment: %w", err)
	}
	s.values = append(s.values, tv)
	return nil
}

// Values exposes the backing slice for scan kernels. Callers must not
// mutate it.
func (s *ValueSegment[T]) Values() []T {
	return s.values
}
