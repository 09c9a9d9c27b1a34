package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

func runCmd(t *testing.T, cmd *cobra.Command, args []string) string {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&buf)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	return buf.String()
}

func TestRemediateCmdPrintsRemediation(t *testing.T) {
	running := writeTemp(t, "running.cfg", "interface Vlan2\n  ip address 1.1.1.1 255.255.255.0\n")
	compiled := writeTemp(t, "compiled.cfg", "interface Vlan3\n")
	opts := writeTemp(t, "options.yml", "negation: \"no\"\n")

	cmd := newRemediateCmd()
	out := runCmd(t, cmd, []string{
		"--running", running,
		"--compiled", compiled,
		"--options", opts,
	})

	if !strings.Contains(out, "no interface Vlan2") {
		t.Errorf("remediate output missing negation, got:\n%s", out)
	}
	if !strings.Contains(out, "interface Vlan3") {
		t.Errorf("remediate output missing new interface, got:\n%s", out)
	}
}

func TestRemediateCmdDiffMode(t *testing.T) {
	running := writeTemp(t, "running.cfg", "interface Vlan2\n")
	compiled := writeTemp(t, "compiled.cfg", "interface Vlan3\n")
	opts := writeTemp(t, "options.yml", "negation: \"no\"\n")

	cmd := newRemediateCmd()
	out := runCmd(t, cmd, []string{
		"--running", running,
		"--compiled", compiled,
		"--options", opts,
		"--diff",
	})
	if !strings.Contains(out, "-interface Vlan2") || !strings.Contains(out, "+interface Vlan3") {
		t.Errorf("expected a unified diff, got:\n%s", out)
	}
}

func TestTagCmdFiltersByIncludeTag(t *testing.T) {
	cfg := writeTemp(t, "config.cfg", "interface Vlan2\n  description mgmt\ninterface Vlan3\n  description guest\n")
	tagsFile := writeTemp(t, "tags.yml", `
- lineage:
    - startswith: "interface Vlan2"
  add_tags: ["safe"]
`)

	cmd := newTagCmd()
	out := runCmd(t, cmd, []string{
		"--file", cfg,
		"--tags-file", tagsFile,
		"--include", "safe",
	})

	if !strings.Contains(out, "interface Vlan2") {
		t.Errorf("expected the tagged Vlan2 section in output, got:\n%s", out)
	}
	if strings.Contains(out, "Vlan3") {
		t.Errorf("did not expect the untagged Vlan3 section in output, got:\n%s", out)
	}
}

func TestFixupCmdTagsUnusedObject(t *testing.T) {
	running := writeTemp(t, "running.cfg", "route-map UNUSED_RM permit 10\n  match ip address FOO\n")
	remediation := writeTemp(t, "remediation.cfg", "no route-map UNUSED_RM permit 10\n")
	opts := writeTemp(t, "options.yml", "negation: \"no\"\n")

	cmd := newFixupCmd()
	out := runCmd(t, cmd, []string{
		"--running", running,
		"--remediation", remediation,
		"--options", opts,
		"--os", "ios",
		"--tags", "all",
	})
	if !strings.Contains(out, "no route-map UNUSED_RM permit 10") {
		t.Errorf("expected the negation line to survive in output, got:\n%s", out)
	}
	if !strings.Contains(out, "no route-map UNUSED_RM permit 10 ! unused object") {
		t.Errorf("expected the negation line to carry the unused_object scenario's comment, got:\n%s", out)
	}
}
