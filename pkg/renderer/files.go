package renderer

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteFile writes content to outputPath, creating parent directories.
func WriteFile(content []byte, outputPath string) (err error) {
	// Ensure output directory exists
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	// Write a sibling temp file and rename it into place
	tmpPath := outputPath + ".tmp"
	err = os.WriteFile(tmpPath, content, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write file: %s", tmpPath)
		return err
	}

	err = os.Rename(tmpPath, outputPath)
	if err != nil {
		_ = Cleanup(tmpPath)
		err = errors.Wrapf(err, "failed to move file into place: %s", outputPath)
		return err
	}

	return err
}

// Cleanup removes files.
func Cleanup(paths ...string) (err error) {
	for _, path := range paths {
		err = os.Remove(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to remove file: %s", path)
			return err
		}
	}
	return err
}
