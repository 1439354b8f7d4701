package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vyper-tools/vyperdoc/internal/config"
)

// Test Plan for Export Command:
// - JSON output parses back into the export model with rendered types
// - YAML output parses and carries the same fields
// - --output writes a file and prints a confirmation
// - Unknown formats fail before any extraction happens
// - Missing contracts directory surfaces the pipeline error

const exportFixtureSource = `"""Governance token."""

MAX_SUPPLY: constant(uint256) = 1000000

owner: public(address)

event Transfer(
    sender: indexed(address),
    amount: uint256
)

@external
def transfer(to: address, amount: uint256) -> bool:
    """Move tokens to another account."""
    return True
`

func setupExportConfig(t *testing.T) *config.Config {
	t.Helper()

	contractsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(contractsDir, "token.vy"), []byte(exportFixtureSource), 0644))

	cfg := config.Default()
	cfg.Contracts = contractsDir
	cfg.Output = t.TempDir()
	return cfg
}

func TestExecuteExport_JSON(t *testing.T) {
	t.Parallel()

	cfg := setupExportConfig(t)

	var out bytes.Buffer
	err := executeExport(context.Background(), cfg, "json", "", &out)
	require.NoError(t, err)

	var exports []contractExport
	require.NoError(t, json.Unmarshal(out.Bytes(), &exports))
	require.Len(t, exports, 1)

	token := exports[0]
	assert.Equal(t, "token", token.Name)
	assert.Equal(t, "token.vy", token.Path)
	assert.Equal(t, "Governance token.", token.Docstring)

	require.Len(t, token.Constants, 1)
	assert.Equal(t, constantExport{Name: "MAX_SUPPLY", Type: "uint256", Value: "1000000"}, token.Constants[0])

	require.Len(t, token.Variables, 1)
	assert.Equal(t, variableExport{Name: "owner", Type: "address", Visibility: "public"}, token.Variables[0])

	require.Len(t, token.Events, 1)
	require.Len(t, token.Events[0].Fields, 2)
	assert.Equal(t, eventFieldExport{Name: "sender", Type: "address", Indexed: true}, token.Events[0].Fields[0])
	assert.Equal(t, eventFieldExport{Name: "amount", Type: "uint256"}, token.Events[0].Fields[1])

	require.Len(t, token.Functions, 1)
	fn := token.Functions[0]
	assert.Equal(t, "transfer", fn.Name)
	assert.Equal(t, "transfer(to: address, amount: uint256) -> bool", fn.Signature)
	assert.Equal(t, "bool", fn.ReturnType)
	assert.Equal(t, "external", fn.Visibility)
	assert.Equal(t, "Move tokens to another account.", fn.Docstring)
}

func TestExecuteExport_YAML(t *testing.T) {
	t.Parallel()

	cfg := setupExportConfig(t)

	var out bytes.Buffer
	err := executeExport(context.Background(), cfg, "yaml", "", &out)
	require.NoError(t, err)

	var exports []contractExport
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &exports))
	require.Len(t, exports, 1)

	assert.Equal(t, "token", exports[0].Name)
	require.Len(t, exports[0].Functions, 1)
	assert.Equal(t, "transfer(to: address, amount: uint256) -> bool", exports[0].Functions[0].Signature)
}

func TestExecuteExport_WritesFile(t *testing.T) {
	t.Parallel()

	cfg := setupExportConfig(t)
	outputPath := filepath.Join(t.TempDir(), "contracts.json")

	var out bytes.Buffer
	err := executeExport(context.Background(), cfg, "json", outputPath, &out)
	require.NoError(t, err)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	var exports []contractExport
	require.NoError(t, json.Unmarshal(data, &exports))
	require.Len(t, exports, 1)

	assert.Contains(t, out.String(), "✓ Exported 1 contract(s) to "+outputPath)
}

func TestExecuteExport_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	cfg := setupExportConfig(t)

	var out bytes.Buffer
	err := executeExport(context.Background(), cfg, "toml", "", &out)
	require.Error(t, err)
	assert.EqualError(t, err, `unsupported export format: "toml" (supported: json, yaml)`)
	assert.Empty(t, out.String())
}

func TestExecuteExport_MissingContractsDirectory(t *testing.T) {
	t.Parallel()

	cfg := setupExportConfig(t)
	cfg.Contracts = filepath.Join(t.TempDir(), "missing")

	var out bytes.Buffer
	err := executeExport(context.Background(), cfg, "json", "", &out)
	require.Error(t, err)
	assert.ErrorContains(t, err, "invalid contracts directory")
}
