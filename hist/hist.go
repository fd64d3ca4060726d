// Package hist bins event times into aligned count histograms, one per detector, ready for loglik
// and lagscan.
package hist

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math"
	"regexp"
	"sort"
	"strconv"

	arg "github.com/alexflint/go-arg"
	"github.com/brentp/xopen"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/burstlag/burstlag"
	"github.com/burstlag/burstlag/histio"
)

type dargs struct {
	Col    int     `arg:"-c,required,help:1-based column number holding event times"`
	Group  int     `arg:"-g,help:optional 1-based column number naming the detector of each event"`
	Sep    string  `arg:"-s,help:optional sep for columns default is '\t'"`
	Width  float64 `arg:"-w,required,help:bin width in the units of the event times"`
	Start  float64 `arg:"help:time of the left edge of the first bin. The default is the earliest event."`
	End    float64 `arg:"help:time past which events are dropped. The default is the latest event."`
	Prefix string  `arg:"required,help:prefix for output files $prefix.$group.hist.txt and $prefix.hist.png"`
	Events string  `arg:"positional,help:file of events. The default reads stdin."`
}

func (d dargs) Version() string {
	return fmt.Sprintf("hist %s", burstlag.Version)
}

func pcheck(e error) {
	if e != nil {
		log.Fatal(e)
	}
}

// Binning is a run of N bins of equal Width from Start.
type Binning struct {
	Start float64
	Width float64
	N     int
}

// Span returns the Binning of the given width that starts at start and covers end. NaN bounds are
// taken from the extent of times.
func Span(start, end, width float64, times ...[]float64) (Binning, error) {
	if !(width > 0) || math.IsInf(width, 0) {
		return Binning{}, errors.Errorf("hist: bin width must be positive, got %v", width)
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, ts := range times {
		for _, t := range ts {
			lo, hi = math.Min(lo, t), math.Max(hi, t)
		}
	}
	if math.IsNaN(start) {
		start = lo
	}
	if math.IsNaN(end) {
		end = hi
	}
	if math.IsInf(start, 0) || math.IsInf(end, 0) || end < start {
		return Binning{}, errors.Errorf("hist: no events to bin in [%v, %v]", start, end)
	}
	// the last bin holds end.
	return Binning{Start: start, Width: width, N: int(math.Floor((end-start)/width)) + 1}, nil
}

// Bin counts the events in each bin. Events outside the bins are dropped.
func (b Binning) Bin(times []float64) []int {
	counts := make([]int, b.N)
	for _, t := range times {
		i := math.Floor((t - b.Start) / b.Width)
		if i >= 0 && i < float64(b.N) {
			counts[int(i)]++
		}
	}
	return counts
}

// Shift returns b moved by offset, for binning one detector at a sub-bin lag.
func (b Binning) Shift(offset float64) Binning {
	b.Start += offset
	return b
}

// Read groups the event times in the 0-based column col of r by the value of column group. A
// negative group puts all events in "default". Unparseable times are logged and skipped.
func Read(r io.Reader, sep *regexp.Regexp, col, group int) (map[string][]float64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 16384), 5e9)

	grouped := make(map[string][]float64)

	nErr := 0
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		toks := sep.Split(line, -1)
		if col >= len(toks) || group >= len(toks) {
			return nil, errors.Errorf("hist: found %d columns in %q", len(toks), line)
		}
		v, err := strconv.ParseFloat(toks[col], 64)
		if err != nil || math.IsNaN(v) {
			if nErr < 5 {
				log.Println(err)
			}
			nErr++
			continue
		}
		g := "default"
		if group > -1 {
			g = toks[group]
		}
		if _, ok := grouped[g]; !ok {
			grouped[g] = make([]float64, 0, 256)
		}
		grouped[g] = append(grouped[g], v)
	}
	if nErr > 0 {
		log.Printf("hist: skipped %d lines with bad event times", nErr)
	}
	return grouped, errors.Wrap(scanner.Err(), "hist: reading events")
}

func mapkeys(m map[string][]float64) []string {
	var ks []string
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

// Main is run from the dispatcher
func Main() {
	args := dargs{Sep: "\t", Events: "-", Start: math.NaN(), End: math.NaN()}
	p := arg.MustParse(&args)
	if args.Col < 1 {
		p.Fail("column must be >= 1")
	}
	args.Group--
	args.Col--
	run(args)
}

func run(args dargs) {
	rdr, err := xopen.Ropen(args.Events)
	pcheck(err)
	grouped, err := Read(rdr, regexp.MustCompile(args.Sep), args.Col, args.Group)
	pcheck(err)
	pcheck(rdr.Close())
	keys := mapkeys(grouped)

	var all [][]float64
	for _, k := range keys {
		all = append(all, grouped[k])
	}
	b, err := Span(args.Start, args.End, args.Width, all...)
	pcheck(err)
	log.Printf("hist: %d groups in %d bins of %g from %g", len(keys), b.N, b.Width, b.Start)

	hists := make([][]int, len(keys))
	for i, k := range keys {
		hists[i] = b.Bin(grouped[k])
		fh, err := xopen.Wopen(fmt.Sprintf("%s.%s.hist.txt", args.Prefix, k))
		pcheck(err)
		pcheck(histio.Write(fh, hists[i]))
		pcheck(fh.Close())
	}
	pcheck(plotHists(args.Prefix+".hist.png", keys, hists))
}

func plotHists(path string, keys []string, hists [][]int) error {
	p := plot.New()
	p.X.Label.Text = "bin"
	p.Y.Label.Text = "Count"

	w := 30 / float64(len(keys))
	var bars []plot.Plotter
	for i, k := range keys {
		vals := make(plotter.Values, len(hists[i]))
		for j, c := range hists[i] {
			vals[j] = float64(c)
		}
		bar, err := plotter.NewBarChart(vals, vg.Points(w+0.01))
		if err != nil {
			return errors.Wrap(err, k)
		}
		bar.LineStyle.Width = vg.Length(0.1)
		bar.Color = plotutil.Color(i)
		bar.Offset = vg.Points(float64(i) * w)
		p.Legend.Add(k, bar)
		bars = append(bars, bar)
	}
	p.Add(bars...)
	p.Legend.Top = true
	return errors.Wrap(p.Save(10*vg.Inch, 3*vg.Inch, path), "hist: save plot")
}
