package servicetoken

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fixedNow is the clock used wherever exact claim values are asserted.
var fixedNow = time.Unix(1_700_000_000, 0)

func fixedClock() time.Time { return fixedNow }

func fixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return string(b)
}
