package measure

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// String renders n as amount[unit], e.g. 3.5[km]. Parse reads the result
// back only when the unit is non-empty and holds no blanks or brackets.
func (n Number) String() string {
	return strconv.FormatFloat(n.Amount, 'g', -1, 64) + "[" + n.Unit + "]"
}

// MarshalText refuses units that Parse could not read back.
func (n Number) MarshalText() ([]byte, error) {
	if !parsableUnit(n.Unit) {
		return nil, errors.Wrapf(ErrMalformedNumber, "unit %q cannot be rendered", n.Unit)
	}
	return []byte(n.String()), nil
}

func parsableUnit(unit string) bool {
	if unit == "" {
		return false
	}
	return !strings.ContainsFunc(unit, func(r rune) bool {
		return r == '[' || r == ']' || unicode.IsSpace(r)
	})
}

func (n *Number) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// Parse reads a number in the form amount[unit]. Blanks around the
// brackets are allowed, so "3 [ km ]" parses like "3[km]".
func Parse(s string) (Number, error) {
	r := strings.NewReader(s)
	n, err := ReadNumber(r)
	if err == io.EOF {
		return Number{}, errors.Wrap(ErrMalformedNumber, "empty input")
	}
	if err != nil {
		return Number{}, err
	}
	rest, _ := io.ReadAll(r)
	if strings.TrimSpace(string(rest)) != "" {
		return Number{}, errors.Wrapf(ErrMalformedNumber, "trailing input %q", rest)
	}
	return n, nil
}

// ReadNumber reads the next number from r. It returns io.EOF when r holds
// nothing but blanks. Pass an io.RuneScanner such as *bufio.Reader when
// reading several numbers from the same stream.
func ReadNumber(r io.Reader) (Number, error) {
	var n Number
	if _, err := fmt.Fscan(r, &n); err != nil {
		if err == errNoInput {
			return Number{}, io.EOF
		}
		return Number{}, err
	}
	return n, nil
}

// errNoInput stands in for io.EOF inside Scan, fmt would report a plain
// io.EOF from a Scanner as io.ErrUnexpectedEOF.
var errNoInput = errors.New("no input")

// Scan implements fmt.Scanner.
func (n *Number) Scan(state fmt.ScanState, verb rune) error {
	state.SkipSpace()
	if _, _, err := state.ReadRune(); err != nil {
		if err == io.EOF {
			return errNoInput
		}
		return err
	}
	if err := state.UnreadRune(); err != nil {
		return err
	}

	tok, err := state.Token(false, func(r rune) bool {
		return r != '[' && !unicode.IsSpace(r)
	})
	if err != nil {
		return err
	}
	amountStr := string(tok)
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		return errors.Wrapf(ErrMalformedNumber, "amount %q", amountStr)
	}

	if err := expectRune(state, '['); err != nil {
		return err
	}
	state.SkipSpace()
	tok, err = state.Token(false, func(r rune) bool {
		return r != '[' && r != ']' && !unicode.IsSpace(r)
	})
	if err != nil {
		return err
	}
	unit := string(tok)
	if unit == "" {
		return errors.Wrapf(ErrMalformedNumber, "missing unit after %s", amountStr)
	}
	if err := expectRune(state, ']'); err != nil {
		return err
	}

	n.Amount = amount
	n.Unit = unit
	return nil
}

func expectRune(state fmt.ScanState, want rune) error {
	state.SkipSpace()
	got, _, err := state.ReadRune()
	if err != nil {
		return errors.Wrapf(ErrMalformedNumber, "expected %q", want)
	}
	if got != want {
		return errors.Wrapf(ErrMalformedNumber, "expected %q, got %q", want, got)
	}
	return nil
}
