package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"measure"
)

func writeUnits(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "units.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := RootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAddCommand(t *testing.T) {
	units := writeUnits(t, "1 km = 1000 m\n")
	out, err := run(t, "--units", units, "add", "3[km]", "500[m]")
	require.NoError(t, err)
	assert.Equal(t, "3.5[km]\n", out)
}

func TestSubCommand(t *testing.T) {
	units := writeUnits(t, "1 km = 1000 m\n")
	out, err := run(t, "--units", units, "sub", "1[km]", "250[m]")
	require.NoError(t, err)
	assert.Equal(t, "0.75[km]\n", out)
}

func TestConvertCommand(t *testing.T) {
	units := writeUnits(t, "1 hour = 60 min\n1 min = 60 sec\n")
	out, err := run(t, "--units", units, "convert", "2[hour]", "sec")
	require.NoError(t, err)
	assert.Equal(t, "7200[sec]\n", out)
}

func TestCompareCommand(t *testing.T) {
	units := writeUnits(t, "1 km = 1000 m\n")
	out, err := run(t, "--units", units, "compare", "1001[m]", "1[km]")
	require.NoError(t, err)
	assert.Equal(t, "1001[m] > 1[km]\n", out)
}

func TestMismatchFails(t *testing.T) {
	units := writeUnits(t, "1 km = 1000 m\n1 min = 60 sec\n")
	_, err := run(t, "--units", units, "add", "1[km]", "1[sec]")
	assert.ErrorIs(t, err, measure.ErrUnitMismatch)
}

func TestUnitsFromEnv(t *testing.T) {
	units := writeUnits(t, "1 kg = 1000 g\n")
	t.Setenv("UNITS_UNITS", units)
	out, err := run(t, "convert", "1.5[kg]", "g")
	require.NoError(t, err)
	assert.Equal(t, "1500[g]\n", out)
}

func TestImportThenUseDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "units.db")
	units := writeUnits(t, "1 km = 1000 m\n1 m = 100 cm\n")

	out, err := run(t, "--db", db, "import", units)
	require.NoError(t, err)
	assert.Equal(t, "imported 2 declarations\n", out)

	out, err = run(t, "--db", db, "convert", "1[km]", "cm")
	require.NoError(t, err)
	assert.Equal(t, "100000[cm]\n", out)

	out, err = run(t, "--db", db, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1 km = 1000 m\n")
	assert.Contains(t, out, "1 m = 100 cm\n")
}

func TestImportRequiresDB(t *testing.T) {
	units := writeUnits(t, "1 km = 1000 m\n")
	_, err := run(t, "import", units)
	assert.Error(t, err)
}

func TestBadLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "list")
	assert.Error(t, err)
}
