// Command burstlag dispatches to the burstlag tools.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/fatih/color"

	"github.com/burstlag/burstlag"
	"github.com/burstlag/burstlag/hist"
	"github.com/burstlag/burstlag/lagscan"
	"github.com/burstlag/burstlag/loglik"
)

type progPair struct {
	help string
	main func()
}

var progs = map[string]progPair{
	"hist":    {"bin event times into aligned per-detector count histograms", hist.Main},
	"loglik":  {"log-likelihood of coincident counts in two aligned burst histograms", loglik.Main},
	"lagscan": {"scan bin offsets between two burst histograms and fit the best lag", lagscan.Main},
}

func printProgs(wtr io.Writer) {
	fmt.Fprintf(wtr, "burstlag Version: %s\n\n", burstlag.Version)
	keys := make([]string, 0, len(progs))
	l := 5
	for k := range progs {
		keys = append(keys, k)
		if len(k) > l {
			l = len(k)
		}
	}
	sort.Strings(keys)
	fmtr := "%-" + strconv.Itoa(l) + "s : %s\n"
	for _, k := range keys {
		fmt.Fprintf(wtr, fmtr, k, progs[k].help)
	}
}

func main() {
	if len(os.Args) < 2 {
		printProgs(os.Stdout)
		os.Exit(1)
	}
	p, ok := progs[os.Args[1]]
	if !ok {
		c := color.New(color.FgRed).Add(color.Bold)
		fmt.Fprintf(os.Stderr, "%s\n\n", c.SprintFunc()(fmt.Sprintf("unknown command: %s", os.Args[1])))
		printProgs(os.Stderr)
		os.Exit(1)
	}
	// remove the prog name from the call
	os.Args = append(os.Args[:1], os.Args[2:]...)
	p.main()
}
