package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// reportExtensions are the file extensions a saved grades report can
// carry.
var reportExtensions = []string{".html", ".htm"}

// rosterExtensions are the participant-list export formats.
var rosterExtensions = []string{".csv", ".xlsx"}

// FindReport locates the grades report inside the data folder. Exactly
// one report file must be present; more than one is ambiguous.
func FindReport(dataDir string) (string, error) {
	matches, err := findByExtension(dataDir, reportExtensions)
	if err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no grades report (*.html, *.htm) found in %s", dataDir)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("multiple grades reports found in %s: %s", dataDir, strings.Join(matches, ", "))
}

// FindRoster locates the participant roster inside the data folder.
// Files named like the platform's participant export
// ("...participants...") are preferred; otherwise the folder must hold
// exactly one CSV or XLSX file.
func FindRoster(dataDir string) (string, error) {
	matches, err := findByExtension(dataDir, rosterExtensions)
	if err != nil {
		return "", err
	}

	var preferred []string
	for _, m := range matches {
		if strings.Contains(strings.ToLower(filepath.Base(m)), "participants") {
			preferred = append(preferred, m)
		}
	}
	if len(preferred) == 1 {
		return preferred[0], nil
	}
	if len(preferred) > 1 {
		return "", fmt.Errorf("multiple participant files found in %s: %s", dataDir, strings.Join(preferred, ", "))
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no participant roster (*.csv, *.xlsx) found in %s", dataDir)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("multiple roster candidates found in %s: %s", dataDir, strings.Join(matches, ", "))
}

// findByExtension lists the regular files in dir carrying one of the
// given extensions, sorted by name for deterministic selection.
func findByExtension(dir string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, want := range extensions {
			if ext == want {
				matches = append(matches, filepath.Join(dir, entry.Name()))
				break
			}
		}
	}
	sort.Strings(matches)
	return matches, nil
}
