package montecarlo

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// AppendResultLine appends one formatted result line to path, creating the
// file and any parent directory if needed, matching sim/metrics_utils.go's
// SavetoFile open/bufio.NewWriter/flush/close pattern but in append mode so
// successive SNR points accumulate in the same results file rather than
// truncating it.
func AppendResultLine(path, line string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating results directory %s: %w", dir, err)
		}
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening results file %s: %w", path, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if _, err := fmt.Fprintln(writer, line); err != nil {
		return fmt.Errorf("writing results file %s: %w", path, err)
	}
	return writer.Flush()
}
