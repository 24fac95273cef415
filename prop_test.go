package observe

import (
	"testing"

	"github.com/pkg/errors"
)

func TestProp_SetAndGet(t *testing.T) {
	s := New()
	count := PropOf[int](s, "count")

	if err := count.Set(42); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if got := count.Get(); got != 42 {
		t.Errorf("Get() = %d, want 42", got)
	}
	if got := s.Get("count"); got != 42 {
		t.Errorf("store Get(count) = %v, want 42", got)
	}
}

func TestProp_GetZeroValue(t *testing.T) {
	s := New()

	t.Run("absent property", func(t *testing.T) {
		p := PropOf[int](s, "missing")
		if got := p.Get(); got != 0 {
			t.Errorf("Get() = %d, want 0", got)
		}
		if _, ok := p.Lookup(); ok {
			t.Error("Lookup() ok = true for absent property")
		}
	})

	t.Run("type mismatch", func(t *testing.T) {
		s.Set("title", "hello")
		p := PropOf[int](s, "title")
		if got := p.Get(); got != 0 {
			t.Errorf("Get() = %d, want 0 for mismatched type", got)
		}
		if _, ok := p.Lookup(); ok {
			t.Error("Lookup() ok = true for mismatched type")
		}
	})
}

func TestProp_Update(t *testing.T) {
	s := New()
	count := PropOf[int](s, "count")
	count.Set(10)

	if err := count.Update(func(v int) int { return v + 5 }); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got := count.Get(); got != 15 {
		t.Errorf("after Update(+5), Get() = %d, want 15", got)
	}
}

func TestProp_Bind(t *testing.T) {
	s := New()
	name := PropOf[string](s, "name")

	var values []string
	sub := name.Bind(func(v string) { values = append(values, v) })

	name.Set("first")
	name.Set("second")

	if len(values) != 2 || values[0] != "first" || values[1] != "second" {
		t.Errorf("values = %v, want [first second]", values)
	}

	sub.Cancel()
	name.Set("third")
	if len(values) != 2 {
		t.Errorf("binding fired after cancel: values = %v", values)
	}
}

func TestProp_BindFiltersMismatchedTypes(t *testing.T) {
	s := New()
	count := PropOf[int](s, "count")

	var calls int
	count.Bind(func(v int) { calls++ })

	// Untyped write of a non-int does not reach the typed binding
	s.Set("count", "not a number")
	if calls != 0 {
		t.Errorf("binding fired %d times for mismatched value, want 0", calls)
	}

	s.Set("count", 3)
	if calls != 1 {
		t.Errorf("binding fired %d times, want 1", calls)
	}
}

func TestProp_ReservedName(t *testing.T) {
	s := New()
	p := PropOf[int](s, "on")

	err := p.Set(1)
	if !errors.Is(err, ErrReservedName) {
		t.Errorf("Set on reserved name: error = %v, want ErrReservedName", err)
	}
}

func TestNewProp_UsesDefaultStore(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)
	SetDefault(New())

	flag := NewProp[bool]("flag")
	flag.Set(true)

	if got := Get("flag"); got != true {
		t.Errorf("default store Get(flag) = %v, want true", got)
	}
	if flag.Name() != "flag" {
		t.Errorf("Name() = %q, want flag", flag.Name())
	}
}
