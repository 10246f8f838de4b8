package storage

import (
	"errors"
	"testing"

	"strata/internal/types"
)

func TestValueSegmentAppendGet(t *testing.T) {
	s := NewValueSegment[int32]()
	if s.Size() != 0 {
		t.Fatalf("empty segment size: got %d", s.Size())
	}
	for _, v := range []int32{4, 6, 3} {
		if err := s.Append(types.ValueOf(v)); err != nil {
			t.Fatalf("append %d: %v", v, err)
		}
	}
	if s.Size() != 3 {
		t.Fatalf("size: got %d", s.Size())
	}

	got, err := s.Get(1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Equal(types.ValueOf(int32(6))) {
		t.Fatalf("got %s, want 6", got)
	}

	v, err := s.Value(2)
	if err != nil || v != 3 {
		t.Fatalf("value: got %d, %v", v, err)
	}
}

func TestValueSegmentTypeMismatch(t *testing.T) {
	s := NewValueSegment[int32]()
	if err := s.Append(types.ValueOf("nope")); !errors.Is(err, types.ErrTypeMismatch) {
		t.Fatalf("want ErrTypeMismatch, got %v", err)
	}
	if err := s.Append(types.ValueOf(int64(1))); !errors.Is(err, types.ErrTypeMismatch) {
		t.Fatalf("long into int segment: want ErrTypeMismatch, got %v", err)
	}
}

func TestValueSegmentOutOfRange(t *testing.T) {
	s := NewValueSegment[string]()
	if err := s.Append(types.ValueOf("only")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := s.Get(1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("want ErrOutOfRange, got %v", err)
	}
}

func TestNewSegmentOfType(t *testing.T) {
	for _, name := range []string{"int", "long", "float", "double", "string"} {
		dt, err := types.ParseDataType(name)
		if err != nil {
			t.Fatalf("parse %q: %v", name, err)
		}
		seg, err := NewSegmentOfType(dt)
		if err != nil {
			t.Fatalf("new segment %q: %v", name, err)
		}
		if seg.Size() != 0 {
			t.Fatalf("new segment %q not empty", name)
		}
	}
}
