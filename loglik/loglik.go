// Package loglik prints the coincidence log-likelihood of two aligned burst histograms.
package loglik

import (
	"fmt"
	"io"
	"log"
	"os"

	arg "github.com/alexflint/go-arg"
	"github.com/brentp/xopen"
	"github.com/pkg/errors"

	"github.com/burstlag/burstlag"
	"github.com/burstlag/burstlag/histio"
	"github.com/burstlag/burstlag/relation"
)

type cliargs struct {
	Background1 float64 `arg:"--bg1,help:expected background counts per bin in HIST1"`
	Background2 float64 `arg:"--bg2,help:expected background counts per bin in HIST2"`
	Ratio       float64 `arg:"-r,help:sensitivity of detector 2 relative to detector 1. The default infers it from the histograms."`
	Precision   float64 `arg:"-p,help:relative precision of each bin log-likelihood"`
	Column      int     `arg:"-c,help:1-based column of the counts in the histogram files"`
	Exact       bool    `arg:"help:sum every term instead of converging on the peak (slow)"`
	Bins        bool    `arg:"-b,help:print the log-likelihood of each bin"`
	NoCache     bool    `arg:"help:don't reuse results for repeated count pairs"`
	Cache       string  `arg:"help:optional path to write the cached (count1, count2, precision, log-likelihood) results"`
	Hist1       string  `arg:"positional,required,help:histogram of the first detector"`
	Hist2       string  `arg:"positional,required,help:histogram of the second detector"`
}

func (c cliargs) Version() string {
	return fmt.Sprintf("loglik %s", burstlag.Version)
}

func pcheck(e error) {
	if e != nil {
		log.Fatal(e)
	}
}

// Options for Run.
type Options struct {
	Background1, Background2 float64
	// Ratio <= 0 infers the sensitivity ratio from the histograms.
	Ratio     float64
	Precision float64
	Exact     bool
	Bins      bool
	NoCache   bool
}

// Run writes the log-likelihood of h1 against h2 to w and returns the Session used so its cache
// can be inspected.
func Run(w io.Writer, h1, h2 []int, opts Options) (*relation.Session, error) {
	var rel relation.Relation
	var err error
	if opts.Ratio > 0 {
		rel, err = relation.FromBackground(opts.Background1, opts.Background2, opts.Ratio)
	} else {
		rel, err = relation.FromHistograms(opts.Background1, opts.Background2, h1, h2)
	}
	if err != nil {
		return nil, err
	}
	s := relation.NewSession(rel)
	s.Exact = opts.Exact

	if opts.Bins {
		vals, err := s.BinLogLikelihoods(h1, h2, opts.Precision, !opts.NoCache)
		if err != nil {
			return s, err
		}
		var total float64
		for i, v := range vals {
			total += v
			if _, err := fmt.Fprintf(w, "%d\t%d\t%d\t%.6f\n", i, h1[i], h2[i], v); err != nil {
				return s, errors.Wrap(err, "loglik: write")
			}
		}
		_, err = fmt.Fprintf(w, "total\t%d\t%d\t%.6f\n", sum(h1), sum(h2), total)
		return s, errors.Wrap(err, "loglik: write")
	}

	v, err := s.LogLikelihood(h1, h2, opts.Precision, !opts.NoCache)
	if err != nil {
		return s, err
	}
	_, err = fmt.Fprintf(w, "%.6f\n", v)
	return s, errors.Wrap(err, "loglik: write")
}

func sum(h []int) int {
	var s int
	for _, v := range h {
		s += v
	}
	return s
}

// Main is called from the burstlag dispatcher
func Main() {
	cli := cliargs{Background1: 1, Background2: 1, Precision: 1e-3, Column: 1}
	p := arg.MustParse(&cli)
	if cli.Precision <= 0 {
		p.Fail("precision must be > 0")
	}

	h1, err := histio.ReadFile(cli.Hist1, cli.Column)
	pcheck(err)
	h2, err := histio.ReadFile(cli.Hist2, cli.Column)
	pcheck(err)

	s, err := Run(os.Stdout, h1, h2, Options{Background1: cli.Background1, Background2: cli.Background2,
		Ratio: cli.Ratio, Precision: cli.Precision, Exact: cli.Exact, Bins: cli.Bins, NoCache: cli.NoCache})
	pcheck(err)

	hits, misses := s.Outputs.Stats()
	log.Printf("loglik: %s, %d cache hits, %d misses", s.Relation, hits, misses)
	if cli.Cache != "" {
		fh, err := xopen.Wopen(cli.Cache)
		pcheck(err)
		_, err = s.Outputs.WriteTo(fh)
		pcheck(err)
		pcheck(fh.Close())
	}
}
