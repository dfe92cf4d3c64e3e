package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes files into outputDir, creating it when missing, and
// returns the paths it wrote. A file whose content already matches is left
// untouched and not reported.
func WriteFiles(files []GeneratedFile, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var written []string

	for _, file := range files {
		target := filepath.Join(outputDir, file.Filename)

		if current, err := os.ReadFile(target); err == nil && bytes.Equal(current, file.Content) {
			continue
		}

		if err := os.WriteFile(target, file.Content, filePerm); err != nil {
			return written, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		written = append(written, target)
	}

	return written, nil
}

// writeDebugUnformatted saves source that failed to format next to the
// intended output as "x.unformatted.go".
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	name := strings.TrimSuffix(filename, ".go") + ".unformatted.go"

	return os.WriteFile(filepath.Join(outDir, name), content, filePerm)
}
