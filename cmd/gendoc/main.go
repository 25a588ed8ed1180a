package main

import (
	"flag"
	"log"
	"time"

	"github.com/spaceinventor/sidoc/internal/gendoc"
)

func main() {
	hostname := flag.String("hostname", "pdup4", "target hostname")
	docDate := flag.String("date", time.Now().Format("2006-01-02"), "document date")
	flag.Parse()

	g := gendoc.New(*hostname)

	if err := g.EnsureTool(gendoc.RequiredVersion()); err != nil {
		log.Fatalf("[GENDOC] %v", err)
	}

	if err := g.Generate(*docDate); err != nil {
		log.Fatalf("[GENDOC] %v", err)
	}
}
