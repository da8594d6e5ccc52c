// sl-inspect summarises a stored spectral library: it groups a library's
// features by spectral setting, assembles each group into a block, and
// prints per-setting shape and band statistics.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/fieldspec/speclib/block"
	"github.com/fieldspec/speclib/grouping"
	"github.com/fieldspec/speclib/store"
)

func main() {
	dbPath := flag.String("db", "speclib.db", "path to sqlite store")
	libName := flag.String("library", "", "library name (default: list libraries)")
	fieldName := flag.String("field", "", "profile field to group on (default: first profile field)")
	byField := flag.Bool("group-by-field", false, "treat identical grids from different fields as distinct")
	flag.Parse()

	st, err := store.Open(*dbPath, nil)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	if *libName == "" {
		listLibraries(st)
		return
	}

	lib, err := st.LibraryByName(*libName)
	if err != nil {
		log.Fatalf("library %q: %v", *libName, err)
	}
	feats, err := st.Features(lib.ID)
	if err != nil {
		log.Fatalf("load features: %v", err)
	}

	opts := grouping.Options{GroupByField: *byField}
	if *fieldName != "" {
		opts.Field = grouping.FieldName(*fieldName)
	}
	groups, err := grouping.GroupRecords(store.Records(feats), opts)
	if err != nil {
		log.Fatalf("grouping: %v", err)
	}

	fmt.Printf("library %q: %d features, %d grouped profiles, %d settings\n",
		lib.Name, len(feats), grouping.NProfiles(groups), len(groups))

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tBANDS\tPROFILES\tX-RANGE\tUNITS\tMEAN-Y")
	for _, k := range keys {
		g := groups[k]
		b, err := block.Assemble(g)
		if err != nil {
			log.Fatalf("assemble: %v", err)
		}
		b.CRS = lib.CRS
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%.4g\n",
			g.Setting.FieldName(), b.NBands(), b.NProfiles(),
			xRange(g.Setting), units(g.Setting), overallMean(b))
	}
	w.Flush()
}

func listLibraries(st *store.Store) {
	libs, err := st.Libraries()
	if err != nil {
		log.Fatalf("list libraries: %v", err)
	}
	if len(libs) == 0 {
		fmt.Println("store is empty")
		return
	}
	for _, lib := range libs {
		fmt.Printf("%s\t%s\tfields=%v\n", lib.ID, lib.Name, lib.Fields)
	}
}

func xRange(s grouping.Setting) string {
	xs := s.X()
	if len(xs) == 0 {
		return "-"
	}
	return fmt.Sprintf("%s..%s", xs[0], xs[len(xs)-1])
}

func units(s grouping.Setting) string {
	xu, yu := s.XUnit(), s.YUnit()
	if xu == "" {
		xu = "-"
	}
	if yu == "" {
		yu = "-"
	}
	return xu + "/" + yu
}

// overallMean averages the per-band means, weighted by sample count.
func overallMean(b *block.Block) float64 {
	s := b.Summary()
	sum, n := 0.0, 0
	for band, mean := range s.Mean {
		if s.N[band] == 0 || math.IsNaN(mean) {
			continue
		}
		sum += mean * float64(s.N[band])
		n += s.N[band]
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}
