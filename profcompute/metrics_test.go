package profcompute

import "testing"

func TestCacheHitRate(t *testing.T) {
	if got := CacheHitRate(90, 10); got != 0.9 {
		t.Fatalf("CacheHitRate(90,10) = %v, want 0.9", got)
	}
	if got := CacheHitRate(0, 0); got != 0 {
		t.Fatalf("CacheHitRate(0,0) = %v, want 0", got)
	}
}

func TestFabricBandwidth(t *testing.T) {
	got := FabricBandwidth(1_000_000_000, 1_000_000_000) // 1GB in 1s
	if got != 1 {
		t.Fatalf("FabricBandwidth = %v, want 1", got)
	}
	if got := FabricBandwidth(100, 0); got != 0 {
		t.Fatalf("FabricBandwidth with zero window = %v, want 0", got)
	}
}

func TestRegisterUsage(t *testing.T) {
	if got := RegisterUsage(64, 256); got != 0.25 {
		t.Fatalf("RegisterUsage(64,256) = %v, want 0.25", got)
	}
	if got := RegisterUsage(1, 0); got != 0 {
		t.Fatalf("RegisterUsage with zero available = %v, want 0", got)
	}
}

func TestSpeedOfLightRowCompute(t *testing.T) {
	row := SpeedOfLightRow{
		CacheHits: 8, CacheMisses: 2,
		FabricBytes: 2_000_000_000, WindowNanos: 1_000_000_000,
		VGPRUsed: 32, VGPRAvailable: 64,
	}
	metrics := row.Compute()
	if metrics[MetricCacheHitRate] != 0.8 {
		t.Fatalf("cache hit rate = %v, want 0.8", metrics[MetricCacheHitRate])
	}
	if metrics[MetricFabricBandwidth] != 2 {
		t.Fatalf("fabric bandwidth = %v, want 2", metrics[MetricFabricBandwidth])
	}
	if metrics[MetricVGPRUsage] != 0.5 {
		t.Fatalf("vgpr usage = %v, want 0.5", metrics[MetricVGPRUsage])
	}
}
