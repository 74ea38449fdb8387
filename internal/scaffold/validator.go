package scaffold

import (
	"fmt"
	"os"
)

// CheckExisting checks if destrier.yml or queries.txt already exist
// Returns an error if they do, nil otherwise
func CheckExisting() error {
	var existingFiles []string

	for _, path := range []string{"destrier.yml", "queries.txt"} {
		if _, err := os.Stat(path); err == nil {
			existingFiles = append(existingFiles, path)
		}
	}

	if len(existingFiles) > 0 {
		errMsg := "project already initialized\n\nFound existing"
		if len(existingFiles) == 1 {
			errMsg += fmt.Sprintf(": %s", existingFiles[0])
		} else {
			errMsg += " files:\n"
			for _, file := range existingFiles {
				errMsg += fmt.Sprintf("  - %s\n", file)
			}
		}
		errMsg += "\nUse 'destrier init --force' to reinitialize (this will overwrite existing configuration)"

		return fmt.Errorf("%s", errMsg)
	}

	return nil
}
