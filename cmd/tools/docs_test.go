package tools

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runTools(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer

	cmd := NewToolsCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestDocs_SimulatorFlags(t *testing.T) {
	out, err := runTools(t, "docs", "simulator.flags")
	require.NoError(t, err)

	assert.Contains(t, out, "--execute")
	assert.Contains(t, out, "--show-ip")
	assert.Contains(t, out, "--show-estimates")
	assert.Contains(t, out, "--dump-memory <path>")
}

func TestDocs_CatalogFormat(t *testing.T) {
	out, err := runTools(t, "docs", "catalog.format")
	require.NoError(t, err)

	assert.Contains(t, out, "name: decode")
	assert.Contains(t, out, "tests: [37, 38, 39, 40, 41]")
	assert.Contains(t, out, "keep_comments")
}

func TestDocs_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.txt")

	_, err := runTools(t, "docs", "simulator.flags", "--output", path)
	require.NoError(t, err)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "--show-estimates")
}

func TestDocs_UnknownModule(t *testing.T) {
	_, err := runTools(t, "docs", "cpu.machine_code")
	assert.Error(t, err)

	_, err = runTools(t, "docs")
	assert.Error(t, err)
}

func TestModuleNames(t *testing.T) {
	assert.Equal(t, []string{"catalog.format", "simulator.flags"}, moduleNames())
}
