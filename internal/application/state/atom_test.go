package state

import (
	"errors"
	"testing"

	"scriptorium/internal/adapters/memory"
	"scriptorium/internal/application"
)

func TestAtom_LoadFallsBackOnMalformedData(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		seed   bool
		want   int
	}{
		{name: "absent key", want: 7},
		{name: "malformed json", stored: "{not json", seed: true, want: 7},
		{name: "wrong type", stored: `"seven"`, seed: true, want: 7},
		{name: "valid value", stored: "3", seed: true, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			if tt.seed {
				store.Seed("n", []byte(tt.stored))
			}
			a := NewAtom(store, "n", 7)
			if got := a.Get(); got != tt.want {
				t.Errorf("Get() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAtom_SetPersistsAndNotifies(t *testing.T) {
	store := memory.NewStore()
	a := NewAtom(store, "n", 0)

	var seen []int
	unsub := a.Subscribe(func(v int) { seen = append(seen, v) })

	if res := a.Set(4); !res.OK() {
		t.Fatalf("Set() result = %v", res.Err)
	}
	a.Update(func(v int) int { return v + 1 })
	unsub()
	a.Set(9)

	if len(seen) != 2 || seen[0] != 4 || seen[1] != 5 {
		t.Errorf("subscriber saw %v, want [4 5]", seen)
	}
	data, err := store.Read("n")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(data) != "9" {
		t.Errorf("stored %q, want %q", data, "9")
	}
}

func TestAtom_FailedWriteKeepsMemoryValue(t *testing.T) {
	store := memory.NewStore()
	a := NewAtom(store, "n", 0)
	a.Set(1)

	var warned error
	a.warn = func(err error) { warned = err }
	store.FailWrites(true)

	res := a.Set(2)
	if res.OK() {
		t.Fatal("Set() result OK, want failure")
	}
	var perr *application.PersistError
	if !errors.As(res.Err, &perr) || perr.Key != "n" {
		t.Errorf("Set() error = %v, want PersistError for key n", res.Err)
	}
	if !errors.Is(warned, memory.ErrWriteFailed) {
		t.Errorf("warn hook got %v, want ErrWriteFailed", warned)
	}
	if got := a.Get(); got != 2 {
		t.Errorf("Get() = %d, want 2", got)
	}
	data, _ := store.Read("n")
	if string(data) != "1" {
		t.Errorf("stored %q, want previous value %q", data, "1")
	}
}

func TestAtom_NilStorage(t *testing.T) {
	a := NewAtom[string](nil, "k", "x")
	res := a.Set("y")
	if res.OK() {
		t.Error("Set() without storage reported OK")
	}
	if a.Get() != "y" {
		t.Errorf("Get() = %q, want %q", a.Get(), "y")
	}
}
