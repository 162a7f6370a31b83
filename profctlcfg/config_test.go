package profctlcfg

import "testing"

func TestFromEnvironDefaults(t *testing.T) {
	opts, err := FromEnviron()
	if err != nil {
		t.Fatalf("FromEnviron: %v", err)
	}
	if opts.MaxGraphEntries != 2000 {
		t.Fatalf("expected default MaxGraphEntries 2000, got %d", opts.MaxGraphEntries)
	}
	if opts.TablePageSize != 500 {
		t.Fatalf("expected default TablePageSize 500, got %d", opts.TablePageSize)
	}
}

func TestFromEnvironOverride(t *testing.T) {
	t.Setenv("PROFCTL_MAX_GRAPH_ENTRIES", "50")
	opts, err := FromEnviron()
	if err != nil {
		t.Fatalf("FromEnviron: %v", err)
	}
	if opts.MaxGraphEntries != 50 {
		t.Fatalf("expected overridden MaxGraphEntries 50, got %d", opts.MaxGraphEntries)
	}
}
