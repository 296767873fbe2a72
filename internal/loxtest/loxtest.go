// Package loxtest runs the golox binary against the golden .lox programs under testdata/,
// comparing their actual stdout and reported errors against the expectations recorded in each
// program's "// prints:" and "// error:" comments.
package loxtest

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	printsRe = regexp.MustCompile(`// prints: (.+)`)
	errorRe  = regexp.MustCompile(`// error: (.+)`)
)

// MustBuildBinary builds the golox command at the module root and returns the path to the
// resulting binary.
func MustBuildBinary(t *testing.T) string {
	t.Helper()

	rootDir := mustModuleRoot(t)
	buildDir := filepath.Join(rootDir, "build")
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		t.Fatalf("building golox: %s", err)
	}

	binPath := filepath.Join(buildDir, "golox")
	cmd := exec.Command("go", "build", "-o", binPath, "github.com/golox-lang/golox")
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("building golox: %s: %v\nOutput:\n%s\n", cmd.String(), err, output)
	}
	return binPath
}

// Run runs every .lox file under testdata/ against binPath, asserting its stdout and reported
// errors match the file's expectation comments.
func Run(t *testing.T, binPath string) {
	t.Helper()
	rootDir := mustModuleRoot(t)
	matches, err := filepath.Glob(filepath.Join(rootDir, "testdata", "*.lox"))
	if err != nil {
		t.Fatal(err)
	}
	for _, path := range matches {
		path := path
		name := strings.TrimSuffix(filepath.Base(path), ".lox")
		t.Run(name, func(t *testing.T) {
			runOne(t, binPath, path)
		})
	}
}

func runOne(t *testing.T, binPath, path string) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	wantStdout := parseExpectedStdout(data)
	wantErrors := parseComments(data, errorRe)

	cmd := exec.Command(binPath, path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err = cmd.Run()

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		t.Fatalf("running %s: %s", binPath, err)
	}

	if stdout.String() != wantStdout {
		t.Errorf("stdoutmismatch:\n%s", cmp.Diff(wantStdout, stdout.String()))
	}

	gotErrors := parseReportedErrors(stderr.String())
	if diff := cmp.Diff(wantErrors, gotErrors); diff != "" {
		t.Errorf("reported errors mismatch (-want +got):\n%s\nstderr:\n%s", diff, stderr.String())
	}
}

func parseExpectedStdout(data []byte) string {
	var b strings.Builder
	for _, line := range parseComments(data, printsRe) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func parseComments(data []byte, re *regexp.Regexp) []string {
	var lines []string
	for _, match := range re.FindAllSubmatch(data, -1) {
		lines = append(lines, string(match[1]))
	}
	return lines
}

// parseReportedErrors extracts the message portion of each diagnostic line golox writes to
// stderr, in both the static ("[line N] Error ...: msg") and runtime ("line N, lexeme : msg")
// formats.
func parseReportedErrors(stderr string) []string {
	var msgs []string
	for _, line := range strings.Split(strings.TrimRight(stderr, "\n"), "\n") {
		if line == "" {
			continue
		}
		if i := strings.LastIndex(line, ": "); i != -1 && strings.HasPrefix(line, "[line") {
			msgs = append(msgs, line[i+2:])
			continue
		}
		if i := strings.Index(line, " : "); i != -1 && strings.HasPrefix(line, "line ") {
			msgs = append(msgs, line[i+3:])
			continue
		}
	}
	return msgs
}

func mustModuleRoot(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	for d := wd; d != "/"; d = filepath.Dir(d) {
		if info, err := os.Stat(filepath.Join(d, "go.mod")); err == nil && !info.IsDir() {
			return d
		}
	}
	t.Fatal("no go.mod found in any parent directory")
	return ""
}
