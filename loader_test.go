package measure

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unitsFile = `# length
1 km = 1000 m
1 m = 100 cm

1 kg = 1000 g
1 ton = 1000 kg
1 hour = 60 min
1 min = 60 sec
1 day = 24 hour
1 month = 30 day
1 year = 12 month
1 USD = 3.33 ILS
`

func TestReadDeclarations(t *testing.T) {
	decls, err := ReadDeclarations(strings.NewReader(unitsFile))
	require.NoError(t, err)
	require.Len(t, decls, 10)
	assert.Equal(t, Declaration{From: "km", Ratio: 1000, To: "m"}, decls[0])
	assert.Equal(t, Declaration{From: "USD", Ratio: 3.33, To: "ILS"}, decls[9])
}

func TestReadDeclarationsNormalisesCount(t *testing.T) {
	decls, err := ReadDeclarations(strings.NewReader("4 quart = 1 gallon\n"))
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, "quart", decls[0].From)
	assert.InDelta(t, 0.25, decls[0].Ratio, 1e-15)
}

func TestReadDeclarationsErrors(t *testing.T) {
	tests := []string{
		"1 km 1000 m",
		"1 km = 1000",
		"1 km : 1000 m",
		"one km = 1000 m",
		"1 km = many m",
		"0 km = 1000 m",
	}
	for _, line := range tests {
		t.Run(line, func(t *testing.T) {
			_, err := ReadDeclarations(strings.NewReader("1 m = 100 cm\n" + line + "\n"))
			require.ErrorIs(t, err, ErrMalformedDeclaration)
			assert.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestReadUnits(t *testing.T) {
	tb := NewTable()
	require.NoError(t, tb.ReadUnits(strings.NewReader(unitsFile)))

	got, err := tb.Convert(1, "year", "sec")
	require.NoError(t, err)
	assert.InDelta(t, 12*30*24*3600, got, 1e-6)

	got, err = tb.Convert(2, "ton", "g")
	require.NoError(t, err)
	assert.InDelta(t, 2e6, got, 1e-6)

	sum, err := NewNumber(3, "km").Add(tb, NewNumber(500, "m"))
	require.NoError(t, err)
	assert.InDelta(t, 3.5, sum.Amount, 1e-12)

	_, err = tb.Convert(1, "km", "sec")
	assert.ErrorIs(t, err, ErrUnitMismatch)
}

func TestReadUnitsRejectsBadRatio(t *testing.T) {
	tb := NewTable()
	err := tb.ReadUnits(strings.NewReader("1 km = -1000 m\n"))
	assert.ErrorIs(t, err, ErrInvalidRatio)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.txt")
	require.NoError(t, os.WriteFile(path, []byte(unitsFile), 0o600))

	tb := NewTable()
	require.NoError(t, tb.LoadFile(path))
	assert.Contains(t, tb.Units(), "ILS")

	err := NewTable().LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
