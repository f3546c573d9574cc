package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/railway/errors"
	"github.com/kbukum/railway/foodata"
	"github.com/kbukum/railway/version"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const quietConfig = `
name: foodata-cli
environment: production
logging:
  level: error
  format: json
`

func TestRun_Success(t *testing.T) {
	path := writeConfig(t, quietConfig)
	out, _, err := execute(t, "run", "--config", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "foo data: yetAnother") {
		t.Errorf("expected the produced data, got:\n%s", out)
	}
	for _, stage := range []string{foodata.StageGetSomeData, foodata.StageGetAnotherData, foodata.StageGetYetAnotherData, "(run)"} {
		if !strings.Contains(out, stage) {
			t.Errorf("expected %s in the events table, got:\n%s", stage, out)
		}
	}
	if strings.Count(out, "succeeded") != 4 {
		t.Errorf("expected 4 succeeded rows, got:\n%s", out)
	}
}

func TestRun_KnownFailure(t *testing.T) {
	path := writeConfig(t, quietConfig)
	tests := []struct {
		stage string
		want  string
		kind  foodata.ErrorKind
	}{
		{foodata.StageGetSomeData, "some data is unavailable, try again later", foodata.SourceUnavailable},
		{foodata.StageGetAnotherData, "another data could not be derived", foodata.TransformFailed},
		{foodata.StageGetYetAnotherData, "yet another data is unavailable, try again later", foodata.DownstreamUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.stage, func(t *testing.T) {
			out, _, err := execute(t, "run", "--config", path, "--fail", tc.stage)
			if err != nil {
				t.Fatalf("a known fault should not be an error: %v", err)
			}
			if !strings.Contains(out, tc.want) {
				t.Errorf("expected %q, got:\n%s", tc.want, out)
			}
			if !strings.Contains(out, tc.kind.String()) {
				t.Errorf("expected kind %s in the events table, got:\n%s", tc.kind, out)
			}
			if !strings.Contains(out, "failed") {
				t.Errorf("expected a failed row, got:\n%s", out)
			}
		})
	}
}

func TestRun_UnexpectedFault(t *testing.T) {
	path := writeConfig(t, quietConfig)
	out, _, err := execute(t, "run", "--config", path, "--fail", foodata.StageGetAnotherData, "--unexpected")
	if err == nil {
		t.Fatal("expected the unexpected fault to be returned")
	}
	if code, _ := errors.CodeOf(err); code != errors.ErrCodeInternal {
		t.Errorf("expected the internal error to escape unchanged, got %v", err)
	}
	if !strings.Contains(err.Error(), "simulated defect in get_another_data") {
		t.Errorf("unexpected error message: %v", err)
	}
	if strings.Contains(out, "foo data") {
		t.Errorf("expected no description on escape, got:\n%s", out)
	}
}

func TestRun_Direct(t *testing.T) {
	path := writeConfig(t, quietConfig)
	out, _, err := execute(t, "run", "--config", path, "--direct", "--runs", "2", "--fail", foodata.StageGetSomeData)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(out, "some data is unavailable"); n != 2 {
		t.Errorf("expected 2 descriptions, got %d:\n%s", n, out)
	}
	if strings.Contains(out, "(run)") {
		t.Errorf("direct runs should not record events, got:\n%s", out)
	}
}

func TestRun_InvalidFlags(t *testing.T) {
	path := writeConfig(t, quietConfig)
	tests := []struct {
		name string
		args []string
	}{
		{"unknown stage", []string{"--fail", "get_everything"}},
		{"unexpected without a stage", []string{"--unexpected"}},
		{"no runs", []string{"--runs", "0"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"run", "--config", path}, tc.args...)
			_, _, err := execute(t, args...)
			if code, _ := errors.CodeOf(err); code != errors.ErrCodeInvalidInput {
				t.Errorf("expected an invalid input error, got %v", err)
			}
		})
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "environment: somewhere\n")
	_, _, err := execute(t, "run", "--config", path)
	if err == nil {
		t.Fatal("expected the configuration to be rejected")
	}
}

func TestRun_LogsToStderr(t *testing.T) {
	path := writeConfig(t, `
name: foodata-cli
logging:
  level: debug
  format: json
`)
	out, errOut, err := execute(t, "run", "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errOut, `"message":"stage resolved"`) {
		t.Errorf("expected stage logs on stderr, got:\n%s", errOut)
	}
	if !strings.Contains(errOut, `"service":"foodata-cli"`) {
		t.Errorf("expected the configured service name in logs, got:\n%s", errOut)
	}
	if strings.Contains(out, "stage resolved") {
		t.Error("logs leaked into stdout")
	}
}

func TestKinds(t *testing.T) {
	out, _, err := execute(t, "kinds")
	if err != nil {
		t.Fatal(err)
	}
	for _, kind := range foodata.Kinds() {
		if !strings.Contains(out, kind.String()) {
			t.Errorf("expected %s in:\n%s", kind, out)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	out, _, err := execute(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, version.Short()) {
		t.Errorf("expected %q in %q", version.Short(), out)
	}
}

func TestRenderTable(t *testing.T) {
	got := renderTable([]string{"A", "B"}, [][]string{{"1"}, {"2", "3", "ignored"}}, []columnAlignment{alignLeft, alignRight})
	for _, want := range []string{"A", "B", "1", "2", "3"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "ignored") {
		t.Errorf("extra cells should be dropped:\n%s", got)
	}
	if renderTable(nil, nil, nil) != "" {
		t.Error("expected no output without headers")
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("got %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("got %q", got)
	}
}
