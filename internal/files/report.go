package files

import (
	"fmt"
	"io"
	"os"
)

// OpenReport opens the saved grades report for parsing. The caller
// owns the returned reader.
func OpenReport(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open grades report: %w", err)
	}
	return file, nil
}
