// Command content-check validates a directory of path YAML documents and
// prints an index summary. Intended as a CI gate for card data changes.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/glorybound/cardbot/internal/library"
	"github.com/glorybound/cardbot/internal/library/catalog"
	"github.com/glorybound/cardbot/internal/platform/config"
)

func main() {
	dir := flag.String("content", "paths", "Directory of path YAML documents")
	flag.Parse()

	paths, err := library.LoadDir(os.DirFS(*dir), ".")
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	cat := catalog.New(paths)
	for _, warning := range cat.Warnings() {
		fmt.Printf("warning: %s\n", warning)
	}
	fmt.Printf("%d paths, %d cards OK\n", len(cat.Paths()), cat.CardCount())
}
