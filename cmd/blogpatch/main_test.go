package main

// Notes:
// - runMain: exit codes and output for flags, config and a small blog tree.
//   Page-level patching is covered in the blogpatch package; here we only
//   check that the CLI plans, runs and reports.
// - main() itself is not tested (os.Exit).

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/daisuki-koshian/blogpatch/internal/config"
)

// TestMain fails the package if a run leaves goroutines behind, such as an
// unstopped signal context.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

const testArticle = `<!DOCTYPE html>
<html lang="ja">
<head><style>
  body { margin: 0; }
</style></head>
<body>
<div class="hero"><h1>トークン効率化</h1></div>
<div class="content-wrapper">
  <article>
    <div class="article-header"><dl><dt>日付</dt><dd>2026-02-01</dd></dl></div>
    <h2>背景</h2>
    <p>本文</p>
    <div class="feedback-section"><p>フィードバック</p></div>
  </article>
</div>
<!-- Analytics -->
</body>
</html>
`

const testHome = `<!DOCTYPE html>
<html><head><style>body{}</style></head>
<body><ul><li>home</li></ul></body>
</html>
`

func newTestEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	fixed := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return &Environment{
		Now:        func() time.Time { return fixed },
		Stdout:     &stdout,
		Stderr:     &stderr,
		LoadConfig: config.LoadConfig,
	}, &stdout, &stderr
}

// newTestBlog writes a home page and one article.
func newTestBlog(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("index.html", testHome)
	write("token-efficiency/index.html", testArticle)
	return root
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

// ---------------------------------------------------------------------------
// TestRunMain_Flags - Help, version, usage errors
// ---------------------------------------------------------------------------

func TestRunMain_Flags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"help", []string{"blogpatch", "--help"}, ExitSuccess, "Usage: blogpatch", ""},
		{"short help", []string{"blogpatch", "-h"}, ExitSuccess, "Usage: blogpatch", ""},
		{"version", []string{"blogpatch", "--version"}, ExitSuccess, "blogpatch dev", ""},
		{"unknown flag", []string{"blogpatch", "--watermark"}, ExitUsage, "", "unknown flag"},
		{"too many args", []string{"blogpatch", "a", "b"}, ExitUsage, "", "at most one root"},
		{"unknown job", []string{"blogpatch", "-j", "deploy", "/tmp"}, ExitUsage, "", "available jobs"},
		{"unknown style", []string{"blogpatch", "--highlight-style", "nope", "/tmp"}, ExitUsage, "", "hint: available:"},
		{"missing config", []string{"blogpatch", "-c", "/nonexistent/blog.yaml"}, ExitUsage, "", "config file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv()
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want %q", stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", stderr, tt.wantStderr)
			}
		})
	}
}

func TestRunMain_MissingRoot(t *testing.T) {
	t.Parallel()

	env, _, stderr := newTestEnv()
	code := runMain([]string{"blogpatch", filepath.Join(t.TempDir(), "nope")}, env)

	if code != ExitIO {
		t.Errorf("exit code = %d, want %d", code, ExitIO)
	}
	if !strings.Contains(stderr.String(), "blog root not found") || !strings.Contains(stderr.String(), "hint:") {
		t.Errorf("stderr = %q", stderr)
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Patch - Full runs over a temp blog
// ---------------------------------------------------------------------------

func TestRunMain_Patch(t *testing.T) {
	t.Parallel()

	root := newTestBlog(t)
	article := filepath.Join(root, "token-efficiency", "index.html")

	env, stdout, _ := newTestEnv()
	if code := runMain([]string{"blogpatch", root}, env); code != ExitSuccess {
		t.Fatalf("first run exit code = %d", code)
	}

	out := stdout.String()
	if !strings.Contains(out, "modified: "+article) {
		t.Errorf("missing modified line for article:\n%s", out)
	}
	if !strings.Contains(out, "warning: "+filepath.Join(root, "day1", "index.html")) {
		t.Errorf("missing warning line for absent page:\n%s", out)
	}
	// 18 catalog articles plus about and home.
	if !strings.Contains(out, "\n2/20 files modified\n  hint: run with --verbose") {
		t.Errorf("summary or warning hint missing:\n%s", out)
	}

	patched := readFile(t, article)
	for _, marker := range []string{"<!-- パンくずリスト -->", `class="reading-time"`, `<div class="toc">`, "data-goatcounter="} {
		if !strings.Contains(patched, marker) {
			t.Errorf("article missing %q", marker)
		}
	}

	env2, stdout2, _ := newTestEnv()
	if code := runMain([]string{"blogpatch", root}, env2); code != ExitSuccess {
		t.Fatalf("second run exit code = %d", code)
	}
	if !strings.Contains(stdout2.String(), "skipped: "+article) {
		t.Errorf("second run should skip article:\n%s", stdout2)
	}
	if !strings.Contains(stdout2.String(), "\n0/20 files modified\n") {
		t.Errorf("second run summary:\n%s", stdout2)
	}
	if readFile(t, article) != patched {
		t.Error("second run changed the article")
	}
}

func TestRunMain_JobAndDryRun(t *testing.T) {
	t.Parallel()

	root := newTestBlog(t)
	home := filepath.Join(root, "index.html")

	env, stdout, _ := newTestEnv()
	code := runMain([]string{"blogpatch", "-j", "analytics", "--dry-run", root}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), "2/2 files modified (dry run") {
		t.Errorf("stdout = %q", stdout)
	}
	if readFile(t, home) != testHome {
		t.Error("dry run wrote the home page")
	}
}

func TestRunMain_Quiet(t *testing.T) {
	t.Parallel()

	root := newTestBlog(t)
	env, stdout, _ := newTestEnv()
	if code := runMain([]string{"blogpatch", "-q", "-j", "analytics", root}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if stdout.Len() != 0 {
		t.Errorf("quiet run printed %q", stdout)
	}
}

func TestRunMain_Verbose(t *testing.T) {
	t.Parallel()

	root := newTestBlog(t)
	env, _, stderr := newTestEnv()
	if code := runMain([]string{"blogpatch", "-v", "-j", "analytics", root}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	for _, want := range []string{"planned", "feature=analytics", "finished"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("verbose log missing %q:\n%s", want, stderr)
		}
	}
}

func TestRunMain_VerboseDropsWarningHint(t *testing.T) {
	t.Parallel()

	root := newTestBlog(t)
	env, stdout, _ := newTestEnv()
	if code := runMain([]string{"blogpatch", "-v", root}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), "warning: ") {
		t.Fatalf("expected warnings for absent pages:\n%s", stdout)
	}
	if strings.Contains(stdout.String(), "hint:") {
		t.Errorf("verbose run should not suggest --verbose:\n%s", stdout)
	}
}

func TestRunMain_Config(t *testing.T) {
	t.Parallel()

	root := newTestBlog(t)
	cfgPath := filepath.Join(t.TempDir(), "blog.yaml")
	content := "root: " + root + "\njobs: [analytics]\nanalytics:\n  snippet: '<script data-goatcounter=\"https://x.example/count\"></script>'\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	env, stdout, stderr := newTestEnv()
	if code := runMain([]string{"blogpatch", "-c", cfgPath}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout.String(), "2/2 files modified") {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(readFile(t, filepath.Join(root, "index.html")), "https://x.example/count") {
		t.Error("configured analytics snippet not used")
	}
}
