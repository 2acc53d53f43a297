package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Common state documents in the CLI's JSON format.
const (
	ZeroStateJSON = `[[1,0],[0,0]]`
	OneStateJSON  = `[[0,0],[1,0]]`
	BellStateJSON = `{"amplitudes":[{"re":0.7071067811865476,"im":0},{"re":0,"im":0},{"re":0,"im":0},{"re":0.7071067811865476,"im":0}]}`
)

// WriteFile writes body to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

//Personal.AI order the ending
