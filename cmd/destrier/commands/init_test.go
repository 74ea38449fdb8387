package commands

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitCommand(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		setupFunc func() (string, func())
		wantErr   bool
		errMsg    string
	}{
		{
			name: "successful init in empty directory",
			args: []string{"init"},
			setupFunc: func() (string, func()) {
				tmpDir, err := os.MkdirTemp("", "init-cmd-test-*")
				if err != nil {
					t.Fatal(err)
				}
				return tmpDir, func() { os.RemoveAll(tmpDir) }
			},
			wantErr: false,
		},
		{
			name: "fails when already initialized",
			args: []string{"init"},
			setupFunc: func() (string, func()) {
				tmpDir, err := os.MkdirTemp("", "init-existing-test-*")
				if err != nil {
					t.Fatal(err)
				}
				// Create existing destrier.yml
				destrierYml := filepath.Join(tmpDir, "destrier.yml")
				if err := os.WriteFile(destrierYml, []byte("version: '1.0'"), 0644); err != nil {
					os.RemoveAll(tmpDir)
					t.Fatal(err)
				}
				return tmpDir, func() { os.RemoveAll(tmpDir) }
			},
			wantErr: true,
			errMsg:  "project already initialized",
		},
		{
			name: "force flag allows reinitialization",
			args: []string{"init", "--force"},
			setupFunc: func() (string, func()) {
				tmpDir, err := os.MkdirTemp("", "init-force-test-*")
				if err != nil {
					t.Fatal(err)
				}
				// Create existing files
				destrierYml := filepath.Join(tmpDir, "destrier.yml")
				if err := os.WriteFile(destrierYml, []byte("old content"), 0644); err != nil {
					os.RemoveAll(tmpDir)
					t.Fatal(err)
				}
				queriesTxt := filepath.Join(tmpDir, "queries.txt")
				if err := os.WriteFile(queriesTxt, []byte("old queries"), 0644); err != nil {
					os.RemoveAll(tmpDir)
					t.Fatal(err)
				}
				return tmpDir, func() { os.RemoveAll(tmpDir) }
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, cleanup := tt.setupFunc()
			defer cleanup()

			// Change to test directory
			originalDir, err := os.Getwd()
			if err != nil {
				t.Fatal(err)
			}
			defer os.Chdir(originalDir)

			if err := os.Chdir(dir); err != nil {
				t.Fatal(err)
			}

			_, err = executeCommand(t, tt.args...)

			if (err != nil) != tt.wantErr {
				t.Errorf("Execute() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr && err != nil {
				if tt.errMsg != "" && !contains(err.Error(), tt.errMsg) {
					t.Errorf("Execute() error = %v, should contain %v", err.Error(), tt.errMsg)
				}
			}

			if !tt.wantErr {
				// Verify files were created
				expectedFiles := []string{
					"destrier.yml",
					"queries.txt",
				}

				for _, file := range expectedFiles {
					fullPath := filepath.Join(dir, file)
					if _, err := os.Stat(fullPath); err != nil {
						t.Errorf("Expected file %s to exist, but got error: %v", file, err)
					}
				}

				// The scaffolded queries must solve as a batch
				queries, err := os.ReadFile(filepath.Join(dir, "queries.txt"))
				if err != nil {
					t.Fatalf("Failed to read queries.txt: %v", err)
				}
				out, err := executeCommandWithInput(t, string(queries), "batch")
				if err != nil {
					t.Errorf("scaffolded queries.txt failed to solve: %v", err)
				}
				if out == "" {
					t.Error("scaffolded queries.txt produced no output")
				}
			}
		})
	}
}

func contains(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
