package registry

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type greeter interface {
	Greet() string
}

type hello struct{}

func (hello) Greet() string { return "hello" }

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := New[greeter]("greeter")
	if err := reg.Register(" Hello ", hello{}); err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := reg.Get("HELLO")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Greet() != "hello" {
		t.Fatalf("unexpected value %q", got.Greet())
	}
	if !reg.Has("hello") {
		t.Fatalf("expected Has to report registered name")
	}
}

func TestRegistry_RejectsInvalidRegistrations(t *testing.T) {
	reg := New[greeter]("greeter")
	reg.MustRegister("hello", hello{})

	cases := []struct {
		name  string
		key   string
		value greeter
		want  string
	}{
		{name: "empty name", key: "  ", value: hello{}, want: "name is required"},
		{name: "nil value", key: "nil", value: nil, want: "implementation is required"},
		{name: "duplicate", key: "Hello", value: hello{}, want: "already registered"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := reg.Register(tc.key, tc.value)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
			if !strings.HasPrefix(err.Error(), "greeter: ") {
				t.Fatalf("expected kind prefix, got %v", err)
			}
		})
	}
}

func TestRegistry_GetMissing(t *testing.T) {
	reg := New[greeter]("greeter")
	if _, err := reg.Get("missing"); err == nil {
		t.Fatalf("expected not found error")
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	reg := New[greeter]("greeter")
	for _, name := range []string{"zeta", "alpha", "mid"} {
		reg.MustRegister(name, hello{})
	}

	if diff := cmp.Diff([]string{"alpha", "mid", "zeta"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_MustRegisterPanicsOnDuplicate(t *testing.T) {
	reg := New[greeter]("greeter")
	reg.MustRegister("hello", hello{})

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	reg.MustRegister("hello", hello{})
}
