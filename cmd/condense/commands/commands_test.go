package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/condense/internal/output"
	"github.com/jmylchreest/condense/pkg/cleaner"
	"github.com/jmylchreest/condense/pkg/fetcher"
)

// run executes the CLI with args and stdin, isolated from the user's home
// config.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd := NewRootCmd()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const page = `<p class="lead" onclick="x()">Hi <b>there</b></p>`

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"defaults", []string{"clean"}, "<p>Hi **there**</p>\n"},
		{"explicit stdin", []string{"clean", "-"}, "<p>Hi **there**</p>\n"},
		{"markdown off", []string{"clean", "--markdown=false"}, "<p>Hi there</p>\n"},
		{"keep classes", []string{"clean", "--keep-classes"}, `<p class="lead">Hi **there**</p>` + "\n"},
		{"two passes", []string{"clean", "--passes", "2"}, "<p>Hi there</p>\n"},
		{"raw", []string{"clean", "--raw"}, page + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := run(t, page, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if stdout != tt.want {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestClean_Files(t *testing.T) {
	a := writeFile(t, "a.html", `<html><body><nav>Menu</nav><main><p>A</p></main></body></html>`)
	b := writeFile(t, "b.html", `<article><p>B</p></article><footer>F</footer>`)

	stdout, _, err := run(t, "", "clean", "--core", a, b)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := "<main><p>A</p></main>\n\n<article><p>B</p></article>\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestClean_OutputFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.txt")

	stdout, _, err := run(t, page, "clean", "-o", outPath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if stdout != "" {
		t.Errorf("expected nothing on stdout, got %q", stdout)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<p>Hi **there**</p>\n" {
		t.Errorf("unexpected file content %q", data)
	}
}

func TestClean_StatsJSON(t *testing.T) {
	_, stderr, err := run(t, page, "clean", "--quiet", "--stats", "--stats-format", "json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var report output.Report
	if err := json.Unmarshal([]byte(stderr), &report); err != nil {
		t.Fatalf("stats are not JSON: %v\n%s", err, stderr)
	}
	if report.Source != "stdin" || report.Cleaner != "condense" {
		t.Errorf("unexpected report identity %+v", report)
	}
	if report.Stats.AttributesRemoved != 2 {
		t.Errorf("expected 2 attributes removed, got %d", report.Stats.AttributesRemoved)
	}
	if report.Config == nil || !report.Config.Markdown {
		t.Errorf("expected config in report, got %+v", report.Config)
	}
}

func TestClean_StatsText(t *testing.T) {
	_, stderr, err := run(t, page, "clean", "--quiet", "--stats")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stderr, "stdin [condense]") || !strings.Contains(stderr, "reduction") {
		t.Errorf("unexpected text stats %q", stderr)
	}
}

func TestClean_LogsPerSource(t *testing.T) {
	_, stderr, err := run(t, page, "clean")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"msg=condensed", "source=stdin", "input_bytes=", "output_bytes="} {
		if !strings.Contains(stderr, want) {
			t.Errorf("expected %q in log output, got %q", want, stderr)
		}
	}

	_, stderr, err = run(t, page, "clean", "--json-logs")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stderr, `"source":"stdin"`) {
		t.Errorf("expected source attribute in JSON logs, got %q", stderr)
	}
}

func TestClean_EnvAndConfig(t *testing.T) {
	t.Run("environment", func(t *testing.T) {
		t.Setenv("CONDENSE_KEEP_CLASSES", "true")
		t.Setenv("CONDENSE_MARKDOWN", "false")

		stdout, _, err := run(t, page, "clean")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if stdout != `<p class="lead">Hi there</p>`+"\n" {
			t.Errorf("stdout = %q", stdout)
		}
	})

	t.Run("config file", func(t *testing.T) {
		cfg := writeFile(t, "condense.yaml", "keep_classes: true\nmarkdown: false\n")

		stdout, _, err := run(t, page, "clean", "--config", cfg)
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if stdout != `<p class="lead">Hi there</p>`+"\n" {
			t.Errorf("stdout = %q", stdout)
		}
	})

	t.Run("flag beats config file", func(t *testing.T) {
		cfg := writeFile(t, "condense.yaml", "markdown: false\n")

		stdout, _, err := run(t, page, "clean", "--config", cfg, "--markdown=true")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if stdout != "<p>Hi **there**</p>\n" {
			t.Errorf("stdout = %q", stdout)
		}
	})

	t.Run("missing explicit config", func(t *testing.T) {
		_, _, err := run(t, page, "clean", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
		if err == nil {
			t.Fatal("expected error for missing config file")
		}
	})
}

func TestClean_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"passes below one", []string{"clean", "--passes", "0"}, "--passes must be at least 1"},
		{"passes above ten", []string{"clean", "--passes", "11"}, "--passes must be at most 10"},
		{"stats format", []string{"clean", "--stats-format", "xml"}, "--stats-format must be one of"},
		{"fetch mode", []string{"clean", "--fetch-mode", "browser"}, "--fetch-mode must be one of"},
		{"header shape", []string{"clean", "-H", "NoColon"}, "must look like"},
		{"input size", []string{"clean", "--max-input-size", "lots"}, "invalid --max-input-size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, page, tt.args...)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestClean_MaxInputSize(t *testing.T) {
	_, _, err := run(t, page, "clean", "--max-input-size", "10B")
	if err == nil || !strings.Contains(err.Error(), "above --max-input-size") {
		t.Fatalf("expected size error, got %v", err)
	}

	if _, _, err := run(t, page, "clean", "--max-input-size", "1KB"); err != nil {
		t.Fatalf("expected input under the limit to pass, got %v", err)
	}
}

func TestClean_Errors(t *testing.T) {
	t.Run("empty stdin", func(t *testing.T) {
		_, _, err := run(t, "  ", "clean")
		if !errors.Is(err, fetcher.ErrEmptyInput) {
			t.Errorf("expected ErrEmptyInput, got %v", err)
		}
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		_, _, err := run(t, "", "clean", "ftp://example.com/page")
		if !errors.Is(err, fetcher.ErrUnsupportedScheme) {
			t.Errorf("expected ErrUnsupportedScheme, got %v", err)
		}
	})
}

func TestClean_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Remote</title></head><body><p>` + r.Header.Get("X-Key") + `</p></body></html>`))
	}))
	defer srv.Close()

	stdout, _, err := run(t, "", "clean", "-H", "X-Key: v1", srv.URL)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := "---\ntitle: Remote\n---\n<p>v1</p>\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestCompare(t *testing.T) {
	path := writeFile(t, "page.html", `<html><body><nav>n</nav><main><h1>T</h1><p>Body</p></main></body></html>`)

	t.Run("json", func(t *testing.T) {
		stdout, _, err := run(t, "", "compare", "--format", "json", path)
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		var reports []output.Report
		if err := json.Unmarshal([]byte(stdout), &reports); err != nil {
			t.Fatalf("compare output is not a JSON array: %v\n%s", err, stdout)
		}
		if len(reports) != len(cleaner.Names()) {
			t.Fatalf("expected %d reports, got %d", len(cleaner.Names()), len(reports))
		}
		for _, r := range reports {
			if r.Cleaner == "noop" && r.Stats.ReductionPercent != 0 {
				t.Errorf("expected noop to keep size, got %.1f%%", r.Stats.ReductionPercent)
			}
		}
	})

	t.Run("text", func(t *testing.T) {
		stdout, _, err := run(t, "", "compare", path)
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		for _, name := range cleaner.Names() {
			if !strings.Contains(stdout, name) {
				t.Errorf("expected %q row in:\n%s", name, stdout)
			}
		}
	})

	t.Run("bad format", func(t *testing.T) {
		_, _, err := run(t, "", "compare", "--format", "csv", path)
		if err == nil || !strings.Contains(err.Error(), "--format") {
			t.Errorf("expected format error, got %v", err)
		}
	})

	t.Run("needs one source", func(t *testing.T) {
		if _, _, err := run(t, "", "compare"); err == nil {
			t.Error("expected error without a source")
		}
	})
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "", "version", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	var info map[string]any
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		t.Fatalf("version output is not JSON: %v", err)
	}
	if _, ok := info["version"]; !ok {
		t.Errorf("expected version key, got %v", info)
	}

	stdout, _, err = run(t, "", "version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(stdout, "condense ") {
		t.Errorf("unexpected version text %q", stdout)
	}
}
