package profctl

import "testing"

func TestCellZeroValueAcceptsFirstWrite(t *testing.T) {
	var c Cell // never constructed via NewXCell, never Reset
	if code := c.SetFloat64(1.5); code != Success {
		t.Fatalf("first write to a zero-value cell should succeed, got %v", code)
	}
	v, code := c.Float64()
	if code != Success || v != 1.5 {
		t.Fatalf("Float64() = (%v, %v), want (1.5, Success)", v, code)
	}
}

func TestCellExplicitZeroRequiresReset(t *testing.T) {
	c := NewUint64Cell(0) // explicitly typed, not merely zero-valued
	if code := c.SetFloat64(2.5); code != InvalidType {
		t.Fatalf("SetFloat64 on an explicit uint64(0) cell should fail without Reset, got %v", code)
	}
	v, code := c.Uint64()
	if code != Success || v != 0 {
		t.Fatalf("cell should be unchanged after the rejected write, got (%v, %v)", v, code)
	}

	c.Reset()
	if code := c.SetFloat64(2.5); code != Success {
		t.Fatalf("SetFloat64 after Reset should succeed, got %v", code)
	}
}

func TestCellSameTypeOverwriteSucceeds(t *testing.T) {
	c := NewUint64Cell(1)
	if code := c.SetUint64(2); code != Success {
		t.Fatalf("same-type overwrite should succeed, got %v", code)
	}
	v, _ := c.Uint64()
	if v != 2 {
		t.Fatalf("Uint64() = %v, want 2", v)
	}
}
