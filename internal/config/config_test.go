package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config diff -want +got\n%s", diff)
	}
}

func TestLoadFindsFileInParent(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, `
[convert]
input = "seeds.txt"
on_error = "skip"
strict = true

[batch]
jobs = 3
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("", nested)
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Path = path
	want.Convert.Input = "seeds.txt"
	want.Convert.OnError = "skip"
	want.Convert.Strict = true
	want.Batch.Jobs = 3
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config diff -want +got\n%s", diff)
	}
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[convert]
output = "from-file"
format = "text"
`)
	t.Setenv("LONGCONV_OUTPUT", "from-env")
	t.Setenv("LONGCONV_FORMAT", "msgpack")
	t.Setenv("LONGCONV_STRICT", "true")
	t.Setenv("LONGCONV_JOBS", "4")
	t.Setenv("LONGCONV_TRACE_LEVEL", "detail")

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Convert.Output != "from-env" || cfg.Convert.Format != "msgpack" || !cfg.Convert.Strict {
		t.Errorf("convert = %+v", cfg.Convert)
	}
	if cfg.Batch.Jobs != 4 || cfg.Trace.Level != "detail" {
		t.Errorf("batch = %+v, trace = %+v", cfg.Batch, cfg.Trace)
	}
	if cfg.Convert.Input != "random-bytes" {
		t.Errorf("input = %q, want default", cfg.Convert.Input)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[convert\n", "failed to parse TOML"},
		{"unknown key", "[convert]\ncolour = 1\n", "unknown keys: convert.colour"},
		{"empty input", "[convert]\ninput = \"\"\n", "[convert].input must not be empty"},
		{"bad format", "[convert]\nformat = \"csv\"\n", "convert.format"},
		{"bad policy", "[convert]\non_error = \"retry\"\n", "convert.on_error"},
		{"negative jobs", "[batch]\njobs = -1\n", "batch.jobs"},
		{"bad level", "[trace]\nlevel = \"loud\"\n", "trace.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := Load(path, "")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadBadEnvironment(t *testing.T) {
	t.Setenv("LONGCONV_JOBS", "many")
	if _, err := Load("", t.TempDir()); err == nil {
		t.Error("Load accepted a non-numeric LONGCONV_JOBS")
	}
}
