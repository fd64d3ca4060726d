// Package histio reads event-count histograms from text files.
//
// A histogram file holds one bin per line. Fields are separated by whitespace and the count is read
// from a single column. Blank lines and lines starting with '#' are skipped. Files may be gzipped.
package histio

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/brentp/xopen"
	"github.com/pkg/errors"
)

// Read reads the counts in the 1-based column col of r.
func Read(r io.Reader, col int) ([]int, error) {
	if col < 1 {
		return nil, errors.Errorf("histio: column must be >= 1, got %d", col)
	}
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	var counts []int
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, errors.Wrapf(err, "histio: line %d", lineNo)
		}
		if rest := strings.TrimSpace(line); rest != "" && rest[0] != '#' {
			c, perr := parseField(rest, col)
			if perr != nil {
				return nil, errors.Wrapf(perr, "histio: line %d", lineNo)
			}
			counts = append(counts, c)
		}
		if err == io.EOF {
			break
		}
	}
	return counts, nil
}

func parseField(line string, col int) (int, error) {
	toks := strings.Fields(line)
	if len(toks) < col {
		return 0, errors.Errorf("found %d columns, need %d", len(toks), col)
	}
	tok := toks[col-1]
	if c, err := strconv.Atoi(tok); err == nil {
		if c < 0 {
			return 0, errors.Errorf("negative count %d", c)
		}
		return c, nil
	}
	// counts written as floats, e.g. 12.0 or 1e3.
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, errors.Errorf("bad count %q", tok)
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, errors.Errorf("count %q is not a non-negative integer", tok)
	}
	return int(f), nil
}

// ReadFile reads the counts in column col of the (optionally gzipped) file at path.
// A path of "-" reads stdin.
func ReadFile(path string, col int) ([]int, error) {
	fh, err := xopen.Ropen(path)
	if err != nil {
		return nil, errors.Wrapf(err, "histio: open %s", path)
	}
	defer fh.Close()
	counts, err := Read(fh, col)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return counts, nil
}

// Write writes counts one per line, preceded by the bin index.
func Write(w io.Writer, counts []int) error {
	bw := bufio.NewWriter(w)
	for i, c := range counts {
		if _, err := bw.WriteString(strconv.Itoa(i) + "\t" + strconv.Itoa(c) + "\n"); err != nil {
			return errors.Wrap(err, "histio: write")
		}
	}
	return errors.Wrap(bw.Flush(), "histio: write")
}
