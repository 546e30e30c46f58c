package storage

import (
	"bytes"
	"testing"
)

func TestMemoryGetMissing(t *testing.T) {
	m := NewMemory()

	v, err := m.Get("absent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if v != nil {
		t.Errorf("Get(absent) = %v, want nil", v)
	}
}

func TestMemorySetGetDelete(t *testing.T) {
	m := NewMemory()

	if err := m.Set("k", []byte("value")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	v, err := m.Get("k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !bytes.Equal(v, []byte("value")) {
		t.Errorf("Get() = %q, want %q", v, "value")
	}

	if err := m.Delete("k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	v, _ = m.Get("k")
	if v != nil {
		t.Errorf("Get after delete = %v, want nil", v)
	}

	// Deleting again is not an error.
	if err := m.Delete("k"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}

func TestMemoryCopySemantics(t *testing.T) {
	m := NewMemory()

	in := []byte("original")
	m.Set("k", in)
	in[0] = 'X'

	v, _ := m.Get("k")
	if !bytes.Equal(v, []byte("original")) {
		t.Error("stored value aliases the caller's slice")
	}

	v[0] = 'Y'
	v2, _ := m.Get("k")
	if !bytes.Equal(v2, []byte("original")) {
		t.Error("returned value aliases the stored slice")
	}
}
