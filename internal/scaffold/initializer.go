package scaffold

import (
	"embed"
	"fmt"
	"os"

	"github.com/oakmoor/destrier/internal/config"
)

//go:embed templates/*
var templatesFS embed.FS

// FileInfo represents a file to be created during initialization
type FileInfo struct {
	Path        string
	Content     []byte
	Permissions os.FileMode
}

// Initialize creates the destrier project files in the current directory.
// If force is true, it will remove an existing destrier.yml and queries.txt
func Initialize(force bool) error {
	// Handle --force flag
	if force {
		if err := handleForce(); err != nil {
			return err
		}
	}

	// Get template files
	files, err := getTemplateFiles()
	if err != nil {
		return err
	}

	// Write files
	if err := writeFiles(files); err != nil {
		return err
	}

	// Validate created files
	if err := validateCreatedFiles(); err != nil {
		return err
	}

	return nil
}

// handleForce removes existing files if --force was specified
func handleForce() error {
	for _, path := range []string{"destrier.yml", "queries.txt"} {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("⚠️  Removing existing %s...\n", path)
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to remove %s: %w", path, err)
			}
		}
	}

	return nil
}

// getTemplateFiles reads and processes all template files
func getTemplateFiles() ([]FileInfo, error) {
	files := []FileInfo{}

	// destrier.yml
	destrierYml, err := templatesFS.ReadFile("templates/destrier.yml.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read destrier.yml template: %w", err)
	}
	files = append(files, FileInfo{
		Path:        "destrier.yml",
		Content:     destrierYml,
		Permissions: 0644,
	})

	// queries.txt - sample batch input
	queriesTxt, err := templatesFS.ReadFile("templates/queries.txt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read queries.txt template: %w", err)
	}
	files = append(files, FileInfo{
		Path:        "queries.txt",
		Content:     queriesTxt,
		Permissions: 0644,
	})

	return files, nil
}

// writeFiles writes all template files to disk
func writeFiles(files []FileInfo) error {
	for _, file := range files {
		if err := os.WriteFile(file.Path, file.Content, file.Permissions); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Path, err)
		}
	}

	return nil
}

// validateCreatedFiles validates that created files are correct
func validateCreatedFiles() error {
	// The created destrier.yml must survive a full config load, not just
	// parse as YAML
	if _, err := config.Load("destrier.yml"); err != nil {
		return fmt.Errorf("created destrier.yml is not a valid configuration: %w", err)
	}

	return nil
}

// PrintSuccess prints the success message with created files
func PrintSuccess() {
	fmt.Println("\n✅ Successfully initialized destrier project!")
	fmt.Println("\nCreated:")
	fmt.Println("  ✓ destrier.yml")
	fmt.Println("  ✓ queries.txt")
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Run 'destrier path D4 G8' to solve a single query")
	fmt.Println("  2. Run 'destrier batch < queries.txt' to solve the examples")
	fmt.Println("  3. Enable the journal in destrier.yml to keep solve history")
}
