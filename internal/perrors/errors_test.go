package perrors

import (
	"errors"
	"testing"
)

func TestFlatten(t *testing.T) {
	got := Flatten(errors.New("limit below minimum, clamped to 1"), nil, errors.New("negative offset, clamped to 0"))
	want := []string{"limit below minimum, clamped to 1", "negative offset, clamped to 0"}

	if len(got) != len(want) {
		t.Fatalf("Flatten() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Flatten()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFlattenEmpty(t *testing.T) {
	if got := Flatten(); got != nil {
		t.Fatalf("Flatten() = %v, want nil", got)
	}
}
