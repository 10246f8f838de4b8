package storage

import (
	"fmt"
	"slices"

	"strata/internal/types"
)

// DictionarySegment stores a sorted, duplicate-free dictionary of the
// distinct values of a base segment plus a width-fitted attribute
// vector encoding each row as its dictionary index. It is immutable
// once built.
type DictionarySegment[T types.Element] struct {
	dictionary []T
	attrs      AttributeVector
}

// NewDictionarySegment dictionary-encodes a base segment. Every value
// of the base segment must be of element type T.
func NewDictionarySegment[T types.Element](base Segment) (*DictionarySegment[T], error) {
	n := base.Size()
	rows := make([]T, 0, n)
	seen := make(map[T]struct{})
	for i := uint32(0); i < n; i++ {
		v, err := base.Get(types.ChunkOffset(i))
		if err != nil {
			return nil, fmt.Errorf("dictionary encode: %w", err)
		}
		tv, err := types.As[T](v)
		if err != nil {
			return nil, fmt.Errorf("dictionary encode: %w", err)
		}
		rows = append(rows, tv)
		seen[tv] = struct{}{}
	}

	dictionary := make([]T, 0, len(seen))
	for v := range seen {
		dictionary = append(dictionary, v)
	}
	slices.Sort(dictionary)

	// Size the attribute vector by the largest index actually stored.
	var maxID types.ValueID
	if len(dictionary) > 0 {
		maxID = types.ValueID(len(dictionary) - 1)
	}
	attrs := NewAttributeVector(n, maxID)
	for i, v := range rows {
		id, _ := slices.BinarySearch(dictionary, v)
		if err := attrs.Set(uint32(i), types.ValueID(id)); err != nil {
			return nil, fmt.Errorf("dictionary encode: %w", err)
		}
	}

	return &DictionarySegment[T]{dictionary: dictionary, attrs: attrs}, nil
}

func (s *DictionarySegment[T]) Size() uint32 {
	return s.attrs.Size()
}

func (s *DictionarySegment[T]) Get(i types.ChunkOffset) (types.Variant, error) {
	v, err := s.Value(i)
	if err != nil {
		return types.Variant{}, err
	}
	return types.ValueOf(v), nil
}

// Value returns the decoded element at the given offset without boxing.
func (s *DictionarySegment[T]) Value(i types.ChunkOffset) (T, error) {
	var zero T
	id, err := s.attrs.Get(uint32(i))
	if err != nil {
		return zero, err
	}
	return s.dictionary[id], nil
}

func (s *DictionarySegment[T]) Append(types.Variant) error {
	return fmt.Errorf("append to dictionary segment: %w", ErrImmutable)
}

// ValueByValueID returns the dictionary entry for a value id.
func (s *DictionarySegment[T]) ValueByValueID(id types.ValueID) (T, error) {
	var zero T
	if uint32(id) >= uint32(len(s.dictionary)) {
		return zero, fmt.Errorf("%w: value id %d, dictionary size %d", ErrOutOfRange, id, len(s.dictionary))
	}
	return s.dictionary[id], nil
}

// LowerBound returns the first value id whose dictionary entry is >= the
// search value, or InvalidValueID if every entry is smaller.
func (s *DictionarySegment[T]) LowerBound(v types.Variant) (types.ValueID, error) {
	tv, err := types.As[T](v)
	if err != nil {
		return 0, fmt.Errorf("lower bound: %w", err)
	}
	id, _ := slices.BinarySearch(s.dictionary, tv)
	if id == len(s.dictionary) {
		return types.InvalidValueID, nil
	}
	return types.ValueID(id), nil
}

// UpperBound returns the first value id whose dictionary entry is > the
// search value, or InvalidValueID if every entry is smaller or equal.
func (s *DictionarySegment[T]) UpperBound(v types.Variant) (types.ValueID, error) {
	tv, err := types.As[T](v)
	if err != nil {
		return 0, fmt.Errorf("upper bound: %w", err)
	}
	id, found := slices.BinarySearch(s.dictionary, tv)
	if found {
		id++
	}
	if id == len(s.dictionary) {
		return types.InvalidValueID, nil
	}
	return types.ValueID(id), nil
}

// UniqueValuesCount returns the number of dictionary entries.
func (s *DictionarySegment[T]) UniqueValuesCount() int {
	return len(s.dictionary)
}

// Dictionary exposes the sorted dictionary. Callers must not mutate it.
func (s *DictionarySegment[T]) Dictionary() []T {
	return s.dictionary
}

// AttributeVector exposes the encoded row indices.
func (s *DictionarySegment[T]) AttributeVector() AttributeVector {
	return s.attrs
}
