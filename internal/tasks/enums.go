package tasks

import (
	"encoding"
	"fmt"
)

// Status is the lifecycle state of a review task.
type Status string

const (
	Pending   Status = "pending"
	Completed Status = "completed"
)

// Type distinguishes the initial study session from later reviews.
type Type string

const (
	Study  Type = "study"
	Review Type = "review"
)

var (
	_ fmt.Stringer             = Status("")
	_ encoding.TextMarshaler   = Status("")
	_ encoding.TextUnmarshaler = (*Status)(nil)
	_ fmt.Stringer             = Type("")
	_ encoding.TextMarshaler   = Type("")
	_ encoding.TextUnmarshaler = (*Type)(nil)
)

func (s Status) String() string { return string(s) }

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == Pending || s == Completed
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("tasks: invalid status: %q", string(s))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	v := Status(text)
	if !v.Valid() {
		return fmt.Errorf("tasks: invalid status: %q", text)
	}
	*s = v
	return nil
}

func (t Type) String() string { return string(t) }

// Valid reports whether t is a known task type.
func (t Type) Valid() bool {
	return t == Study || t == Review
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("tasks: invalid type: %q", string(t))
	}
	return []byte(t), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	v := Type(text)
	if !v.Valid() {
		return fmt.Errorf("tasks: invalid type: %q", text)
	}
	*t = v
	return nil
}
