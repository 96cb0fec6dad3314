package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mercator-hq/chatlens/pkg/cli"
	"mercator-hq/chatlens/pkg/loader"
)

// resetFlags restores flag variables between command executions, since
// cobra keeps parsed values on the package-level command tree.
func resetFlags(t *testing.T) {
	t.Helper()
	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")
	envFile = ""
	verbose = false
	outputFormat = ""
	stdinFormat = string(loader.FormatJSON)
	statusFlags.details = false
	scanFlags.quiet = false
	scanFlags.strict = false
	historyFlags = historyOptions{}
	logger = nil
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(t)

	if stdin == nil {
		stdin = strings.NewReader("")
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(os.Stdin)
		rootCmd.SetOut(os.Stdout)
		rootCmd.SetErr(os.Stderr)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// writeConfig writes a YAML config file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chatlens.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestCommandsRegistered(t *testing.T) {
	expected := []string{"analyze", "status", "users", "scan", "watch", "history", "config", "version", "completion"}

	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range expected {
		if !registered[name] {
			t.Errorf("expected command %q to be registered", name)
		}
	}
}

func TestHistorySubcommandsRegistered(t *testing.T) {
	expected := map[string]bool{"query": false, "latest": false, "prune": false}
	for _, cmd := range historyCmd.Commands() {
		if _, ok := expected[cmd.Name()]; ok {
			expected[cmd.Name()] = true
		}
	}
	for name, found := range expected {
		if !found {
			t.Errorf("expected history subcommand %q to be registered", name)
		}
	}
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "report:\n  format: xml\n")

	_, _, err := execute(t, nil, "--config", path, "analyze", "chat.json")
	if err == nil {
		t.Fatal("expected error for invalid config")
	}
	if !strings.Contains(err.Error(), "report.format") {
		t.Errorf("expected error to name report.format, got %v", err)
	}
	if code := cli.ExitCode(err); code != cli.ExitConfig {
		t.Errorf("expected exit code %d, got %d", cli.ExitConfig, code)
	}
}
