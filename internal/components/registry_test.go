package components

import (
	"strings"
	"testing"

	apperrors "github.com/nathanjclark/www/internal/errors"
)

type fakeComponent struct{ name string }

func (f fakeComponent) Name() string   { return f.name }
func (f fakeComponent) Render() string { return "<svg/>" }

func TestRegisterAndResolve(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(fakeComponent{name: "cloud"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	renderer, err := r.Resolve("some-post", "cloud")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if renderer.Name() != "cloud" {
		t.Errorf("unexpected renderer %q", renderer.Name())
	}
}

func TestRegisterDuplicateFails(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(fakeComponent{name: "cloud"}); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	err := r.Register(fakeComponent{name: "cloud"})
	if err == nil {
		t.Fatal("expected duplicate component error")
	}
	if !apperrors.IsFatal(err) {
		t.Error("duplicate registration must be fatal")
	}
	if !apperrors.IsCategory(err, apperrors.CategoryComponent) {
		t.Errorf("expected component category, got %v", apperrors.GetCategory(err))
	}
}

func TestResolveUnknownFails(t *testing.T) {
	r := NewRegistry()
	_, err := r.Resolve("first-post", "cloud")
	if err == nil {
		t.Fatal("expected unknown component error")
	}
	if apperrors.IsFatal(err) {
		t.Error("unknown component is a per-document error, not fatal")
	}
	if !strings.Contains(err.Error(), "first-post") {
		t.Errorf("expected referencing slug in message, got %s", err.Error())
	}
}

func TestRegisterAfterFreezeFails(t *testing.T) {
	r := NewRegistry()
	r.Freeze()
	if err := r.Register(fakeComponent{name: "late"}); err == nil {
		t.Fatal("expected error registering after freeze")
	}
}

func TestBuiltinSet(t *testing.T) {
	r, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin failed: %v", err)
	}
	if r.Len() == 0 {
		t.Fatal("expected builtin components")
	}

	for _, name := range []string{"cloud", "moon", "rocket"} {
		renderer, err := r.Resolve("test", name)
		if err != nil {
			t.Fatalf("expected builtin %q: %v", name, err)
		}
		if !strings.HasPrefix(renderer.Render(), "<svg") {
			t.Errorf("component %q should render an svg artifact", name)
		}
	}

	names := r.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Names not sorted: %v", names)
		}
	}
}
