package measure

import (
	"errors"
	"fmt"
)

var (
	ErrUnitMismatch         = errors.New("units do not match")
	ErrInvalidRatio         = errors.New("ratio must be a positive finite number")
	ErrEmptyUnit            = errors.New("unit name is empty")
	ErrMalformedDeclaration = errors.New("malformed unit declaration")
	ErrMalformedNumber      = errors.New("malformed number with unit")
)

// UnitMismatchError reports a conversion between units with no known ratio.
type UnitMismatchError struct {
	From string
	To   string
}

func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("units do not match - [%s] cannot be converted to [%s]", e.From, e.To)
}

func (e *UnitMismatchError) Is(target error) bool {
	return target == ErrUnitMismatch
}

type InvalidRatioError struct {
	From  string
	To    string
	Ratio float64
}

func (e *InvalidRatioError) Error() string {
	return fmt.Sprintf("invalid ratio %v between [%s] and [%s]", e.Ratio, e.From, e.To)
}

func (e *InvalidRatioError) Is(target error) bool {
	return target == ErrInvalidRatio
}

