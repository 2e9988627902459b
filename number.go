package measure

// Epsilon absorbs rounding picked up along a conversion chain.
const Epsilon = 0.00001

// Number is an amount tagged with a unit, e.g. 3[km]. Any unit string is
// accepted, but only units without blanks or brackets survive a text
// round trip.
type Number struct {
	Amount float64
	Unit   string
}

func NewNumber(amount float64, unit string) Number {
	return Number{Amount: amount, Unit: unit}
}

// in returns o's amount expressed in n's unit.
func (n Number) in(c Converter, o Number) (float64, error) {
	return c.Convert(o.Amount, o.Unit, n.Unit)
}

func (n Number) ConvertTo(c Converter, unit string) (Number, error) {
	amount, err := c.Convert(n.Amount, n.Unit, unit)
	if err != nil {
		return Number{}, err
	}
	return Number{Amount: amount, Unit: unit}, nil
}

func (n Number) Add(c Converter, o Number) (Number, error) {
	converted, err := n.in(c, o)
	if err != nil {
		return Number{}, err
	}
	return Number{Amount: n.Amount + converted, Unit: n.Unit}, nil
}

func (n Number) Sub(c Converter, o Number) (Number, error) {
	converted, err := n.in(c, o)
	if err != nil {
		return Number{}, err
	}
	return Number{Amount: n.Amount - converted, Unit: n.Unit}, nil
}

func (n Number) Neg() Number {
	return Number{Amount: -n.Amount, Unit: n.Unit}
}

func (n Number) AddScalar(x float64) Number {
	return Number{Amount: n.Amount + x, Unit: n.Unit}
}

func (n Number) SubScalar(x float64) Number {
	return Number{Amount: n.Amount - x, Unit: n.Unit}
}

func (n Number) Scale(x float64) Number {
	return Number{Amount: n.Amount * x, Unit: n.Unit}
}

// ScaleBy is Scale with the scalar on the left.
func ScaleBy(x float64, n Number) Number {
	return n.Scale(x)
}

// AddAssign adds o to n in place and returns n. n is unchanged when the
// units don't match.
func (n *Number) AddAssign(c Converter, o Number) (*Number, error) {
	converted, err := n.in(c, o)
	if err != nil {
		return n, err
	}
	n.Amount += converted
	return n, nil
}

func (n *Number) SubAssign(c Converter, o Number) (*Number, error) {
	converted, err := n.in(c, o)
	if err != nil {
		return n, err
	}
	n.Amount -= converted
	return n, nil
}

func (n *Number) MulAssign(x float64) *Number {
	n.Amount *= x
	return n
}

// Inc increments n and returns the new value.
func (n *Number) Inc() Number {
	n.Amount++
	return *n
}

// PostInc increments n and returns the value it had before.
func (n *Number) PostInc() Number {
	old := *n
	n.Amount++
	return old
}

func (n *Number) Dec() Number {
	n.Amount--
	return *n
}

func (n *Number) PostDec() Number {
	old := *n
	n.Amount--
	return old
}

// Compare returns 1, -1 or 0 when n is greater than, less than or within
// Epsilon of o once o is converted to n's unit.
func (n Number) Compare(c Converter, o Number) (int, error) {
	converted, err := n.in(c, o)
	if err != nil {
		return 0, err
	}
	diff := n.Amount - converted
	switch {
	case diff > Epsilon:
		return 1, nil
	case -diff > Epsilon:
		return -1, nil
	default:
		return 0, nil
	}
}

func (n Number) Equal(c Converter, o Number) (bool, error) {
	cmp, err := n.Compare(c, o)
	return err == nil && cmp == 0, err
}

func (n Number) NotEqual(c Converter, o Number) (bool, error) {
	cmp, err := n.Compare(c, o)
	return err == nil && cmp != 0, err
}

func (n Number) Less(c Converter, o Number) (bool, error) {
	cmp, err := n.Compare(c, o)
	return err == nil && cmp < 0, err
}

func (n Number) LessOrEqual(c Converter, o Number) (bool, error) {
	cmp, err := n.Compare(c, o)
	return err == nil && cmp <= 0, err
}

func (n Number) Greater(c Converter, o Number) (bool, error) {
	cmp, err := n.Compare(c, o)
	return err == nil && cmp > 0, err
}

func (n Number) GreaterOrEqual(c Converter, o Number) (bool, error) {
	cmp, err := n.Compare(c, o)
	return err == nil && cmp >= 0, err
}
