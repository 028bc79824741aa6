package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// isolate points every config location at empty temp directories.
func isolate(t *testing.T) (workDir, userDir string) {
	t.Helper()
	workDir = t.TempDir()
	userDir = t.TempDir()
	t.Setenv(EnvConfigHome, userDir)
	t.Setenv(EnvMarker, "")
	t.Setenv(EnvDocFile, "")
	return workDir, userDir
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	workDir, _ := isolate(t)

	cfg, err := Load(workDir, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Precedence(t *testing.T) {
	workDir, userDir := isolate(t)
	writeConfig(t, filepath.Join(userDir, "config.yml"), "doc_file: USER.md\n")

	cfg, err := Load(workDir, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DocFile != "USER.md" || cfg.Source != filepath.Join(userDir, "config.yml") {
		t.Errorf("user config: DocFile=%q Source=%q", cfg.DocFile, cfg.Source)
	}

	project := filepath.Join(workDir, ProjectFile)
	writeConfig(t, project, "doc_file: PROJECT.md\ndebounce: 1s\n")
	cfg, err = Load(workDir, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DocFile != "PROJECT.md" || cfg.Debounce != time.Second || cfg.Source != project {
		t.Errorf("project config: DocFile=%q Debounce=%s Source=%q", cfg.DocFile, cfg.Debounce, cfg.Source)
	}

	explicit := filepath.Join(t.TempDir(), "custom.yml")
	writeConfig(t, explicit, "marker: '<!-- custom -->'\n")
	cfg, err = Load(workDir, explicit)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Marker != "<!-- custom -->" || cfg.DocFile != "README.md" {
		t.Errorf("explicit config: Marker=%q DocFile=%q", cfg.Marker, cfg.DocFile)
	}

	t.Setenv(EnvMarker, "<!-- env -->")
	t.Setenv(EnvDocFile, "ENV.md")
	cfg, err = Load(workDir, explicit)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Marker != "<!-- env -->" || cfg.DocFile != "ENV.md" {
		t.Errorf("env overrides: Marker=%q DocFile=%q", cfg.Marker, cfg.DocFile)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	workDir, _ := isolate(t)
	writeConfig(t, filepath.Join(workDir, ProjectFile), "")

	cfg, err := Load(workDir, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Marker != DefaultMarker {
		t.Errorf("Marker = %q, want default", cfg.Marker)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown field", "markr: x\n", "field markr not found"},
		{"bad yaml", "marker: [\n", "parsing config"},
		{"bad duration", "debounce: soon\n", "parsing config"},
		{"empty marker", "marker: '  '\n", "marker must not be empty"},
		{"multi-line marker", "marker: \"a\\nb\"\n", "single line"},
		{"doc file with directory", "doc_file: docs/README.md\n", "plain file name"},
		{"extension without dot", "extensions: [jnl]\n", "must start with a dot"},
		{"negative debounce", "debounce: -1s\n", "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workDir, _ := isolate(t)
			writeConfig(t, filepath.Join(workDir, ProjectFile), tt.content)

			_, err := Load(workDir, "")
			if err == nil {
				t.Fatal("Load() error = nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	workDir, _ := isolate(t)
	if _, err := Load(workDir, filepath.Join(workDir, "nope.yml")); err == nil {
		t.Error("Load() with missing explicit file error = nil")
	}
}
