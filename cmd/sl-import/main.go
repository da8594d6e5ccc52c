// sl-import loads a GeoJSON FeatureCollection into a spectral-library
// store. Profile-bearing properties are decoded through the profile codec,
// stamped with default units from the run configuration, and stored as
// encoded blobs on the library's profile fields.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/fieldspec/speclib/profile"
	"github.com/fieldspec/speclib/store"
)

func main() {
	dbPath := flag.String("db", "speclib.db", "path to sqlite store")
	cfgPath := flag.String("config", "import.yaml", "path to import run configuration")
	input := flag.String("input", "", "path to GeoJSON FeatureCollection")
	verbose := flag.Bool("v", false, "verbose store logging")
	flag.Parse()

	if *input == "" {
		log.Fatal("missing -input")
	}
	cfg, err := LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := zap.NewNop()
	if *verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			log.Fatalf("init logger: %v", err)
		}
	}
	defer logger.Sync()

	st, err := store.Open(*dbPath, logger)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	imported, skipped, err := runImport(st, cfg, *input)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}
	log.Printf("done: imported=%d skipped=%d library=%q", imported, skipped, cfg.Library)
}

// runImport reads the collection and inserts one feature per input feature
// carrying at least one decodable, valid profile. Features with no usable
// profile are counted and skipped, not fatal.
func runImport(st *store.Store, cfg *Config, input string) (imported, skipped int, err error) {
	raw, err := os.ReadFile(input)
	if err != nil {
		return 0, 0, fmt.Errorf("read %s: %w", input, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return 0, 0, fmt.Errorf("parse %s: %w", input, err)
	}

	lib, err := st.LibraryByName(cfg.Library)
	if err != nil {
		lib, err = st.CreateLibrary(cfg.Library, cfg.CRS, cfg.FieldNames())
		if err != nil {
			return 0, 0, err
		}
	}

	for _, feat := range fc.Features {
		nf := store.NewFeature{Values: make(map[string]profile.Profile)}
		if cfg.NameProperty != "" {
			if name, ok := feat.Properties[cfg.NameProperty].(string); ok {
				nf.Name = name
			}
		}
		if pt, ok := feat.Geometry.(orb.Point); ok {
			nf.Point = &pt
		}
		for _, fm := range cfg.Fields {
			raw, ok := feat.Properties[fm.Property]
			if !ok {
				continue
			}
			p, err := profile.DecodeStrict(raw)
			if err != nil || !p.Valid() || p.IsEmpty() {
				continue
			}
			if p.XUnit == "" {
				p.XUnit = profile.NormalizeUnit(fm.XUnit)
			}
			if p.YUnit == "" {
				p.YUnit = profile.NormalizeUnit(fm.YUnit)
			}
			nf.Values[fm.Field] = p
		}
		if len(nf.Values) == 0 {
			skipped++
			continue
		}
		if _, err := st.AddFeature(lib.ID, nf); err != nil {
			return imported, skipped, err
		}
		imported++
	}
	return imported, skipped, nil
}
