package code

import (
	"os"
	"path/filepath"
	"testing"
)

// writeAlist writes a minimal two-variable, one-check alist fixture:
// H = [1 1] over GF(64), matching the single-check scenario used throughout
// the scheduler/cnp tests.
func writeAlist(t *testing.T) string {
	t.Helper()
	content := `2 1
64
1 2
1 1
2
0 1
0 1
0 1 1 1
`
	dir := t.TempDir()
	path := filepath.Join(dir, "test.alist")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadAlist_ParsesDimensionsAndDegrees(t *testing.T) {
	// GIVEN a minimal two-variable, one-check alist file
	path := writeAlist(t)

	// WHEN loading it
	p, err := LoadAlist(path)

	// THEN N, M, GF, K and degrees are parsed correctly
	if err != nil {
		t.Fatalf("LoadAlist: %v", err)
	}
	if p.N != 2 || p.M != 1 || p.K != 1 {
		t.Errorf("N=%d M=%d K=%d, want N=2 M=1 K=1", p.N, p.M, p.K)
	}
	if p.GF != 64 || p.LogGF != 6 {
		t.Errorf("GF=%d LogGF=%d, want GF=64 LogGF=6", p.GF, p.LogGF)
	}
	if p.NbBranch != 2 {
		t.Errorf("NbBranch=%d, want 2", p.NbBranch)
	}
	dc, ok := p.RowDegreeConstant()
	if !ok || dc != 2 {
		t.Errorf("RowDegreeConstant() = (%d, %v), want (2, true)", dc, ok)
	}
}

func TestLoadAlist_MissingFile_ReturnsConfigError(t *testing.T) {
	// WHEN loading a nonexistent path
	_, err := LoadAlist(filepath.Join(t.TempDir(), "missing.alist"))

	// THEN ErrConfig is returned
	if err == nil {
		t.Fatal("LoadAlist: want error for missing file, got nil")
	}
}

func TestLoadAlist_UnsupportedGFOrder_ReturnsConfigError(t *testing.T) {
	// GIVEN an alist file declaring an unsupported GF order
	content := `1 0
7
1 0
1
0

`
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.alist")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	// WHEN loading it
	_, err := LoadAlist(path)

	// THEN ErrConfig is returned
	if err == nil {
		t.Fatal("LoadAlist: want error for unsupported GF order, got nil")
	}
}
