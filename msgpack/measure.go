package measuremsgpack

import (
	"time"

	"measure"
)

type Number struct {
	Amount float64 `msgpack:"amount"`
	Unit   string  `msgpack:"unit,omitempty"`
}

type Declaration struct {
	From  string  `msgpack:"from_unit,omitempty"`
	Ratio float64 `msgpack:"ratio,omitempty"`
	To    string  `msgpack:"to_unit,omitempty"`
}

// Table carries a table as its ordered declarations; replaying them
// rebuilds the same closure.
type Table struct {
	Declarations []Declaration `msgpack:"declarations,omitempty"`
	DatetimeMs   int64         `msgpack:"date,omitempty"`
}

func NewNumber(n measure.Number) Number {
	return Number{Amount: n.Amount, Unit: n.Unit}
}

func ToNumber(n *Number) measure.Number {
	return measure.Number{Amount: n.Amount, Unit: n.Unit}
}

func NewDeclaration(d measure.Declaration) Declaration {
	return Declaration{From: d.From, Ratio: d.Ratio, To: d.To}
}

func ToDeclaration(d *Declaration) measure.Declaration {
	return measure.Declaration{From: d.From, Ratio: d.Ratio, To: d.To}
}

func NewTable(t *measure.Table) Table {
	decls := t.Declarations()
	out := Table{
		Declarations: make([]Declaration, 0, len(decls)),
		DatetimeMs:   time.Now().UnixMilli(),
	}
	for _, d := range decls {
		out.Declarations = append(out.Declarations, NewDeclaration(d))
	}
	return out
}

func ToTable(tb *Table, opts ...measure.Option) (*measure.Table, error) {
	t := measure.NewTable(opts...)
	for i := range tb.Declarations {
		d := ToDeclaration(&tb.Declarations[i])
		if err := t.Declare(d.From, d.Ratio, d.To); err != nil {
			return nil, err
		}
	}
	return t, nil
}
