package render

import (
	"strings"
	"sync"
	"testing"
)

func TestMarkdown_PoolsPerOptions(t *testing.T) {
	ClearCache()
	defer ClearCache()

	opts := plainOptions()
	for i := 0; i < 3; i++ {
		if _, err := Markdown("| a | b |\n| --- | --- |\n| 1 | 2 |\n", opts); err != nil {
			t.Fatalf("Markdown() error = %v", err)
		}
	}
	if got := CacheSize(); got != 1 {
		t.Errorf("CacheSize() = %d, want 1", got)
	}

	if _, err := Markdown("text", opts.WithWidth(40)); err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}
	if got := CacheSize(); got != 2 {
		t.Errorf("CacheSize() = %d, want 2", got)
	}
}

func TestMarkdown_Concurrent(t *testing.T) {
	ClearCache()
	defer ClearCache()

	opts := plainOptions()
	var wg sync.WaitGroup
	errs := make(chan error, 16)

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := Markdown("| Scheme | Ministry |\n| --- | --- |\n| PMAY | Housing |\n", opts)
			if err != nil {
				errs <- err
				return
			}
			if !strings.Contains(out, "PMAY") {
				t.Errorf("output missing cell: %q", out)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Markdown() error = %v", err)
	}
}

func TestCacheKey(t *testing.T) {
	a := cacheKey(plainOptions())
	b := cacheKey(plainOptions().WithTableWrap(false))
	if a == b {
		t.Errorf("cacheKey should differ on TableWrap: %s", a)
	}

	// Theme colours do not reach glamour
	c := cacheKey(plainOptions().WithTheme(DraculaTheme))
	if a != c {
		t.Errorf("cacheKey() = %s, want %s", c, a)
	}
}
