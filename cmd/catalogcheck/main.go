// Command catalogcheck validates attraction catalog files before they are
// deployed with catalog.file. For every file it prints each attraction with
// its distance from the configured city center.
//
//	catalogcheck configs/catalog.yaml [more.yaml ...]
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/samirrijal/bucketlist/internal/adapters/memory"
	"github.com/samirrijal/bucketlist/internal/core/domain"
	"github.com/samirrijal/bucketlist/internal/pkg/config"
	"github.com/samirrijal/bucketlist/internal/pkg/logging"
)

func main() {
	cfg, err := config.Load("bucketlist-catalogcheck")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup("bucketlist-catalogcheck", cfg.Log.Level, "text")

	paths := os.Args[1:]
	if len(paths) == 0 && cfg.Catalog.File != "" {
		paths = []string{cfg.Catalog.File}
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: catalogcheck <catalog.yaml> [...]")
		os.Exit(2)
	}

	center := domain.GeoPoint{Lat: cfg.City.Lat, Lon: cfg.City.Lon}
	os.Exit(run(os.Stdout, paths, center))
}

// run checks every file and returns the process exit code: 0 when all are
// valid, 1 when a file has invalid or duplicate records, 2 when a file could
// not be read or parsed.
func run(w io.Writer, paths []string, center domain.GeoPoint) int {
	code := 0
	for _, path := range paths {
		catalog, err := memory.LoadCatalogFile(path)
		if err != nil {
			slog.Error("catalog rejected", "file", path, "error", err)
			if errors.Is(err, domain.ErrInvalidCoordinate) || errors.Is(err, domain.ErrDuplicateID) {
				code = max(code, 1)
			} else {
				code = 2
			}
			continue
		}

		fmt.Fprintf(w, "%s: %d attractions\n", path, catalog.Len())
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, a := range catalog.All() {
			card, err := domain.NewAttractionCard(a, center)
			if err != nil {
				slog.Error("distance failed", "file", path, "attraction", a.Name, "error", err)
				code = max(code, 1)
				continue
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", a.ID, a.Name, card.DistanceLabel)
		}
		tw.Flush()
	}
	return code
}
