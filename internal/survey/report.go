package survey

import (
	"fmt"
	"io"
	"text/tabwriter"

	"toroca/pkg/rules"
)

// Tally counts outcomes for one family and rule across patterns and seeds.
type Tally struct {
	Family    rules.Family
	Rule      rules.Name
	Fixed     int
	Cycles    int
	Unsettled int
	// MaxPeriod is the longest cycle seen.
	MaxPeriod int
}

// Summarize groups results by family and rule, keeping first-seen order.
func Summarize(results []Result) []Tally {
	type key struct {
		f rules.Family
		r rules.Name
	}
	index := map[key]int{}
	var out []Tally
	for _, res := range results {
		k := key{res.Family, res.Rule}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, Tally{Family: res.Family, Rule: res.Rule})
		}
		t := &out[i]
		switch res.Outcome {
		case FixedPoint:
			t.Fixed++
		case Cycle:
			t.Cycles++
			t.MaxPeriod = max(t.MaxPeriod, res.Period)
		default:
			t.Unsettled++
		}
	}
	return out
}

// WriteReport prints one row per result followed by the per-rule tallies.
func WriteReport(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FAMILY\tRULE\tPATTERN\tSEED\tOUTCOME\tPERIOD\tSETTLED\tPOP\tSTATES")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%d\t%d\t%d\t%d\n",
			r.Family, r.Rule, r.Pattern, r.Seed, r.Outcome, r.Period, r.SettledAt, r.Population, r.Distinct)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "FAMILY\tRULE\tFIXED\tCYCLE\tUNSETTLED\tMAX PERIOD")
	for _, t := range Summarize(results) {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\n", t.Family, t.Rule, t.Fixed, t.Cycles, t.Unsettled, t.MaxPeriod)
	}
	return tw.Flush()
}
