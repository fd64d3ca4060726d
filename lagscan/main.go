package lagscan

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"

	arg "github.com/alexflint/go-arg"
	"github.com/brentp/xopen"
	"github.com/fatih/color"

	"github.com/burstlag/burstlag"
	"github.com/burstlag/burstlag/histio"
	"github.com/burstlag/burstlag/relation"
)

type cliargs struct {
	Background1 float64 `arg:"--bg1,help:expected background counts per bin in HIST1"`
	Background2 float64 `arg:"--bg2,help:expected background counts per bin in HIST2"`
	Precision   float64 `arg:"-p,help:relative precision of each bin log-likelihood"`
	Column      int     `arg:"-c,help:1-based column of the counts in the histogram files"`
	MaxLag      int     `arg:"-m,help:largest lag in bins to try in either direction"`
	Degree      int     `arg:"-d,help:degree of the polynomial fit to the scan"`
	Workers     int     `arg:"-w,help:number of goroutines to scan with"`
	Exact       bool    `arg:"help:sum every term instead of converging on the peak (slow)"`
	Prefix      string  `arg:"required,help:prefix for output files lagscan.tsv, lagscan.html and lagscan.png"`
	Hist1       string  `arg:"positional,required,help:histogram of the first detector"`
	Hist2       string  `arg:"positional,required,help:histogram of the second detector"`
}

func (c cliargs) Version() string {
	return fmt.Sprintf("lagscan %s", burstlag.Version)
}

func pcheck(e error) {
	if e != nil {
		log.Fatal(e)
	}
}

// Main is called from the burstlag dispatcher
func Main() {
	cli := cliargs{Background1: 1, Background2: 1, Precision: 1e-3, Column: 1, MaxLag: 10, Degree: 10,
		Workers: runtime.GOMAXPROCS(0)}
	p := arg.MustParse(&cli)
	if cli.Precision <= 0 {
		p.Fail("precision must be > 0")
	}
	if cli.Degree < 2 {
		p.Fail("degree must be at least 2 to have a peak")
	}

	h1, err := histio.ReadFile(cli.Hist1, cli.Column)
	pcheck(err)
	h2, err := histio.ReadFile(cli.Hist2, cli.Column)
	pcheck(err)
	rel, err := relation.FromHistograms(cli.Background1, cli.Background2, h1, h2)
	pcheck(err)
	log.Printf("lagscan: %d bins, %s", len(h1), rel)

	points, err := Scan(context.Background(), rel, h1, h2, Options{MaxLag: cli.MaxLag, Precision: cli.Precision,
		Workers: cli.Workers, Exact: cli.Exact})
	pcheck(err)

	fh, err := xopen.Wopen(cli.Prefix + ".lagscan.tsv")
	pcheck(err)
	pcheck(WriteTSV(fh, points))
	pcheck(fh.Close())

	exitCode := 0
	var pk *Peak
	if peak, err := FindPeak(points, cli.Degree); err != nil {
		c := color.New(color.BgRed).Add(color.Bold)
		fmt.Fprintf(os.Stderr, "%s\n", c.SprintFunc()(fmt.Sprintf("ERROR finding peak: %s", err)))
		exitCode = 1
	} else {
		pk = &peak
	}

	label := fmt.Sprintf("%s vs %s", cli.Hist1, cli.Hist2)
	wtr, err := os.Create(cli.Prefix + ".lagscan.html")
	pcheck(err)
	pcheck(WriteHTML(wtr, points, pk, label))
	pcheck(wtr.Close())
	pcheck(SavePNG(cli.Prefix+".lagscan.png", points, pk, label))

	best := Best(points)
	fmt.Printf("best_scanned_lag\t%d\t%.6f\n", best.Lag, best.LogLikelihood)
	if pk != nil {
		fmt.Printf("peak_lag\t%.4f\tstd_dev\t%.4f\n", pk.Lag, pk.StdDev)
	}
	os.Exit(exitCode)
}
