package mux

import (
	"errors"
	"testing"
)

func TestFakeSelectDeselect(t *testing.T) {
	f := NewFake()

	if f.Selected != nil {
		t.Error("expected nothing selected initially")
	}

	if err := f.Select(5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Selected == nil || *f.Selected != 5 {
		t.Errorf("expected address 5 selected, got %v", f.Selected)
	}

	// A second select replaces the first; the decoder drives one output.
	if err := f.Select(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Selected == nil || *f.Selected != 2 {
		t.Errorf("expected address 2 selected, got %v", f.Selected)
	}

	if err := f.Deselect(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Selected != nil {
		t.Error("expected nothing selected after deselect")
	}

	want := []Op{
		{Select: true, Addr: 5},
		{Select: true, Addr: 2},
		{},
	}
	if len(f.Ops) != len(want) {
		t.Fatalf("expected %d ops, got %d", len(want), len(f.Ops))
	}
	for i := range want {
		if f.Ops[i] != want[i] {
			t.Errorf("op %d: expected %+v, got %+v", i, want[i], f.Ops[i])
		}
	}
}

func TestFakeSelectError(t *testing.T) {
	f := NewFake()
	f.SelectError = errors.New("simulated error")

	if err := f.Select(1); err == nil {
		t.Error("expected error to be returned")
	}
	if len(f.Ops) != 0 {
		t.Errorf("failed select must not be recorded, got %d ops", len(f.Ops))
	}
}

func TestFakeSelections(t *testing.T) {
	f := NewFake()
	f.Select(4)
	f.Deselect()
	f.Select(0)
	f.Deselect()

	got := f.Selections()
	want := []Address{4, 0}
	if len(got) != len(want) {
		t.Fatalf("expected %d selections, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("selection %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestFakeClose(t *testing.T) {
	f := NewFake()
	f.Select(3)

	if err := f.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("expected Closed after Close()")
	}
	if f.Selected != nil {
		t.Error("expected Close to deselect")
	}
}
