package measure

import (
	"math"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Declaration states that 1 From equals Ratio To.
type Declaration struct {
	From  string
	Ratio float64
	To    string
}

// Converter converts an amount between two units.
type Converter interface {
	Convert(value float64, from, to string) (float64, error)
}

type Option func(*Table)

func WithLogger(logger zerolog.Logger) Option {
	return func(t *Table) {
		t.logger = logger
	}
}

// Table holds direct ratios between every pair of connected units.
// ratios[A][B] multiplies an amount in A to get the amount in B.
type Table struct {
	ratios       map[string]map[string]float64
	declarations []Declaration
	mutex        sync.RWMutex
	logger       zerolog.Logger
}

func NewTable(opts ...Option) *Table {
	t := &Table{
		ratios: make(map[string]map[string]float64),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Declare records that 1 unit1 = ratio unit2 and connects every unit
// reachable from unit1 with every unit reachable from unit2, so any
// connected pair converts in a single lookup.
func (t *Table) Declare(unit1 string, ratio float64, unit2 string) error {
	if unit1 == "" || unit2 == "" {
		return ErrEmptyUnit
	}
	if !usableRatio(ratio) {
		return &InvalidRatioError{From: unit1, To: unit2, Ratio: ratio}
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	if unit1 == unit2 {
		// 1 u = r u only holds for r == 1, nothing to record
		if ratio != 1 {
			return &InvalidRatioError{From: unit1, To: unit2, Ratio: ratio}
		}
		t.declarations = append(t.declarations, Declaration{From: unit1, Ratio: ratio, To: unit2})
		return nil
	}

	var pairs []pair
	if known, ok := t.ratios[unit1][unit2]; ok {
		// already connected: unit1 moves to its new place next to unit2,
		// every other ratio in the component stays as it was
		for y, fromUnit2 := range t.from(unit2) {
			if y != unit1 {
				pairs = append(pairs, pair{unit1, y, ratio * fromUnit2})
			}
		}
		if known != ratio {
			t.logger.Debug().
				Str("from", unit1).
				Float64("known", known).
				Float64("ratio", ratio).
				Str("to", unit2).
				Msg("ratio restated")
		}
	} else {
		// unit1 and unit2 sit in different components; joining them connects
		// every X reaching unit1 with every Y reachable from unit2.
		from := t.from(unit2)
		for x, toUnit1 := range t.into(unit1) {
			for y, fromUnit2 := range from {
				pairs = append(pairs, pair{x, y, toUnit1 * ratio * fromUnit2})
			}
		}
	}

	// nothing is written unless every derived ratio and its inverse fit
	for _, p := range pairs {
		if !usableRatio(p.ratio) || !usableRatio(1/p.ratio) {
			return &InvalidRatioError{From: p.from, To: p.to, Ratio: p.ratio}
		}
	}
	for _, p := range pairs {
		t.set(p.from, p.to, p.ratio)
	}

	t.declarations = append(t.declarations, Declaration{From: unit1, Ratio: ratio, To: unit2})
	t.logger.Debug().
		Str("from", unit1).
		Float64("ratio", ratio).
		Str("to", unit2).
		Int("units", len(t.ratios)).
		Msg("unit declared")
	return nil
}

type pair struct {
	from, to string
	ratio    float64
}

func usableRatio(r float64) bool {
	return r > 0 && !math.IsInf(r, 0) && !math.IsNaN(r)
}

func (t *Table) DeclareAll(decls []Declaration) error {
	for _, d := range decls {
		if err := t.Declare(d.From, d.Ratio, d.To); err != nil {
			return err
		}
	}
	return nil
}

// into returns, for unit and every unit connected to it, the factor
// converting that unit into unit.
func (t *Table) into(unit string) map[string]float64 {
	out := map[string]float64{unit: 1}
	for other := range t.ratios[unit] {
		out[other] = t.ratios[other][unit]
	}
	return out
}

// from returns the factor converting unit into each unit connected to it.
func (t *Table) from(unit string) map[string]float64 {
	out := map[string]float64{unit: 1}
	for other, ratio := range t.ratios[unit] {
		out[other] = ratio
	}
	return out
}

func (t *Table) set(from, to string, ratio float64) {
	if t.ratios[from] == nil {
		t.ratios[from] = make(map[string]float64)
	}
	if t.ratios[to] == nil {
		t.ratios[to] = make(map[string]float64)
	}
	t.ratios[from][to] = ratio
	t.ratios[to][from] = 1 / ratio
}

// Convert returns value expressed in unit to. Identical units never hit
// the table, so undeclared units still convert to themselves.
func (t *Table) Convert(value float64, from, to string) (float64, error) {
	if from == to {
		return value, nil
	}
	ratio, ok := t.Ratio(from, to)
	if !ok {
		return 0, &UnitMismatchError{From: from, To: to}
	}
	return value * ratio, nil
}

func (t *Table) Ratio(from, to string) (float64, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	ratio, ok := t.ratios[from][to]
	return ratio, ok
}

func (t *Table) Units() []string {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	units := make([]string, 0, len(t.ratios))
	for unit := range t.ratios {
		units = append(units, unit)
	}
	sort.Strings(units)
	return units
}

// Declarations returns a copy of the accepted declarations in order.
func (t *Table) Declarations() []Declaration {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return append([]Declaration(nil), t.declarations...)
}
