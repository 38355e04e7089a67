package decode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd_DefaultVariant_IsBubble(t *testing.T) {
	// GIVEN the decode command with its registered flags
	flag := RootCmd.Flags().Lookup("variant")

	// WHEN we check the default value
	// THEN it must be "bubble" — the L-Bubble-Check CNP is the default path
	assert.NotNil(t, flag, "variant flag must be registered")
	assert.Equal(t, "bubble", flag.DefValue)
}

func TestRootCmd_RequiresSevenPositionalArgs(t *testing.T) {
	// GIVEN the decode command
	// WHEN we check its Args validator against too few arguments
	err := RootCmd.Args(RootCmd, []string{"1", "2", "3"})

	// THEN it rejects anything other than the 7 documented positionals
	// (NbMonteCarlo NbIterMax FileMatrix EbN NbMax Offset NbOper)
	assert.Error(t, err)
}

func TestParseDeviations_ValidString_ParsesAllFour(t *testing.T) {
	// WHEN parsing a well-formed "d1,d2,d3,d4" string
	d, err := parseDeviations("4,10,10,2")

	// THEN all four fields are populated in order
	assert.NoError(t, err)
	assert.Equal(t, 4, d.D1)
	assert.Equal(t, 10, d.D2)
	assert.Equal(t, 10, d.D3)
	assert.Equal(t, 2, d.D4)
}

func TestParseDeviations_Malformed_ReturnsError(t *testing.T) {
	// WHEN parsing a string missing components
	_, err := parseDeviations("4,10")

	// THEN an error is returned rather than a partially-populated value
	assert.Error(t, err)
}

// writeAlist writes the same minimal single-check GF(64) fixture used by
// internal/ldpc/code's tests: two variables, one check, H = [1 1].
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

func TestRootCmd_EndToEnd_WritesResultsFile(t *testing.T) {
	// GIVEN a minimal single-check alist fixture and a scratch working
	// directory (the results file path is relative to cwd, spec §6)
	matrixPath := writeAlist(t)
	dir := t.TempDir()
	wd, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	RootCmd.SetArgs([]string{
		"2", "5", matrixPath, "4.0", "0", "1.0", "8",
		"--nm=4", "--seed=1", "--note=test",
	})

	// WHEN the CLI is executed end to end
	err = RootCmd.Execute()

	// THEN it exits cleanly and a results file is written under data/
	assert.NoError(t, err)
	matches, err := filepath.Glob(filepath.Join(dir, "data", "results_*.txt"))
	assert.NoError(t, err)
	assert.Len(t, matches, 1, "expected exactly one results file to be written")
}
