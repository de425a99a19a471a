package registry

import "testing"

func TestAddFindList(t *testing.T) {
	r := New()
	r.Add(&Target{Name: "ruby", Extension: ".rb"})
	r.Add(&Target{Name: "c99", Extension: ".c"})
	r.Add(&Target{Name: "c17", Extension: ".c"})

	if _, err := r.Find("ruby"); err != nil {
		t.Fatalf("expected ruby to be registered: %v", err)
	}
	if _, err := r.Find("go"); err == nil {
		t.Fatalf("expected error for unregistered target")
	}

	names := r.List()
	if len(names) != 3 {
		t.Fatalf("expected 3 names, got %v", names)
	}
}
