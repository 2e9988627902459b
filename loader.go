package measure

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ReadDeclarations parses lines of the form "1 km = 1000 m". Blank lines
// and lines starting with # are skipped. Declarations keep file order.
func ReadDeclarations(r io.Reader) ([]Declaration, error) {
	var decls []Declaration
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		d, err := parseDeclaration(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		decls = append(decls, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read declarations")
	}
	return decls, nil
}

func parseDeclaration(line string) (Declaration, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 || fields[2] != "=" {
		return Declaration{}, errors.Wrapf(ErrMalformedDeclaration, "%q", line)
	}
	n1, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || n1 <= 0 {
		return Declaration{}, errors.Wrapf(ErrMalformedDeclaration, "count %q", fields[0])
	}
	n2, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return Declaration{}, errors.Wrapf(ErrMalformedDeclaration, "count %q", fields[3])
	}
	// n1 u1 = n2 u2, so 1 u1 = n2/n1 u2
	return Declaration{From: fields[1], Ratio: n2 / n1, To: fields[4]}, nil
}

// ReadUnits parses declarations from r and declares them in order.
func (t *Table) ReadUnits(r io.Reader) error {
	decls, err := ReadDeclarations(r)
	if err != nil {
		return err
	}
	return t.DeclareAll(decls)
}

func (t *Table) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open units file")
	}
	defer f.Close()
	if err := t.ReadUnits(f); err != nil {
		return errors.Wrapf(err, "load %s", path)
	}
	return nil
}
