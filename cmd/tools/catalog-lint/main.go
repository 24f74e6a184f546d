// catalog-lint validates rule catalog bundle files before publication.
//
// Usage:
//
//	catalog-lint <bundle.json | bundle-dir> [...]
//
// Exits non-zero when any bundle fails validation.
package main

import (
	"fmt"
	"os"

	"immigration-engine/internal/catalog"
	"immigration-engine/pkg/catalogfile"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: catalog-lint <bundle.json | bundle-dir> [...]")
		os.Exit(2)
	}

	failed := 0
	for _, arg := range os.Args[1:] {
		info, err := os.Stat(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "catalog-lint: %v\n", err)
			failed++
			continue
		}

		if info.IsDir() {
			entries, err := catalogfile.LoadDir(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "catalog-lint: %v\n", err)
				failed++
				continue
			}
			for _, entry := range entries {
				printEntry(arg, entry)
			}
			continue
		}

		entry, err := catalogfile.Load(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "catalog-lint: %v\n", err)
			failed++
			continue
		}
		printEntry(arg, entry)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func printEntry(source string, entry *catalog.RuleCatalogEntry) {
	fmt.Printf("ok  %s: %s/%s effective %s, %d criteria (max %d points), %d gates\n",
		source, entry.Country, entry.Program,
		entry.EffectiveDate.Format("2006-01-02"),
		len(entry.Criteria), entry.MaxScore(), len(entry.Gates),
	)
}
