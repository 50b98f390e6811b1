package pagination

import "testing"

func TestClampPageSize(t *testing.T) {
	cfg := PageSizeConfig{Default: 10, Max: 50}

	if got := ClampPageSize(0, cfg); got != 10 {
		t.Fatalf("zero value = %d, want default 10", got)
	}
	if got := ClampPageSize(-3, cfg); got != 10 {
		t.Fatalf("negative value = %d, want default 10", got)
	}
	if got := ClampPageSize(200, cfg); got != 50 {
		t.Fatalf("oversized value = %d, want max 50", got)
	}
	if got := ClampPageSize(25, cfg); got != 25 {
		t.Fatalf("in-range value = %d, want 25", got)
	}
	if got := ClampPageSize(0, PageSizeConfig{}); got != 1 {
		t.Fatalf("empty config = %d, want floor 1", got)
	}
}
