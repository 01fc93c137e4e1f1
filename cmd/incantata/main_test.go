package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leapstack-labs/incantata/internal/cli"
	"github.com/leapstack-labs/incantata/internal/cli/config"
)

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Errorf("version command error = %v", err)
	}
	if !strings.Contains(buf.String(), "incantata") {
		t.Errorf("version output should contain 'incantata', got: %s", buf.String())
	}
}

func TestGenerateCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	config.ResetConfig()
	defer config.ResetConfig()

	cmd := cli.NewRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"generate", "-n", "3", "--seed", "42"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("generate command error = %v", err)
	}
	if got := strings.Count(strings.TrimSpace(out.String()), "\n") + 1; got != 3 {
		t.Errorf("expected 3 words, got %d: %q", got, out.String())
	}
}

func TestUnknownCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"frobnicate"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected an error for an unknown command")
	}
}
