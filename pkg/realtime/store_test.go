package realtime

import "testing"

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry[*int]()
	calls := 0
	create := func() *int {
		calls++
		v := calls
		return &v
	}

	first, created := r.GetOrCreate("a", create)
	if !created {
		t.Error("first GetOrCreate should create")
	}
	second, created := r.GetOrCreate("a", create)
	if created {
		t.Error("second GetOrCreate should not create")
	}
	if first != second {
		t.Error("GetOrCreate returned a different value for the same id")
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

func TestRegistry_GetDelete(t *testing.T) {
	r := NewRegistry[string]()
	r.GetOrCreate("room1", func() string { return "state1" })

	v, ok := r.Get("room1")
	if !ok || v != "state1" {
		t.Fatalf("Get = %q, %v", v, ok)
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("Get should return false for missing id")
	}
	if r.Len() != 1 {
		t.Errorf("Len %d, want 1", r.Len())
	}

	v, ok = r.Delete("room1")
	if !ok || v != "state1" {
		t.Errorf("Delete = %q, %v", v, ok)
	}
	if _, ok := r.Delete("room1"); ok {
		t.Error("second Delete should report false")
	}
	if len(r.Values()) != 0 {
		t.Error("Values should be empty after delete")
	}
}
