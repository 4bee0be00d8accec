// animego-dump resolves every dub and episode of a title into DASH
// manifests on disk. Pass either a search query (the first hit is used)
// or a full detail link.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/TMKSpace/anime-tmkspace/internal/config"
	"github.com/TMKSpace/anime-tmkspace/internal/core"
	"github.com/TMKSpace/anime-tmkspace/internal/downloader"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	query := flag.String("query", "", "search query; the first catalog hit is dumped")
	link := flag.String("link", "", "full detail link, bypasses the search")
	output := flag.String("output", "", "output directory (default from config)")
	keepGoing := flag.Bool("keep-going", false, "continue after a failed episode instead of aborting")
	flag.Parse()

	if *query == "" && *link == "" {
		fmt.Fprintln(os.Stderr, "either -query or -link is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *output != "" {
		cfg.Output.Path = *output
	}

	app := core.NewWithConfig(cfg)
	parser := app.Parser()

	target := *link
	if target == "" {
		hits, err := parser.FastSearch(*query)
		if err != nil {
			log.Fatalf("Search failed: %v", err)
		}
		if len(hits) == 0 {
			log.Fatalf("No results for %q", *query)
		}
		log.Printf("Using first hit: %s (%s)", hits[0].Title, hits[0].Link)
		target = hits[0].Link
	}

	anime, err := parser.AnimeInfo(target)
	if err != nil {
		log.Fatalf("Detail lookup failed: %v", err)
	}
	log.Printf("Resolved %q: %d episode(s), %d dub(s)",
		anime.Title, len(anime.EpisodesList), len(anime.Translations))
	if len(anime.Translations) == 0 {
		log.Fatal("No playable dubs; nothing to dump.")
	}

	dumper := &downloader.Dumper{
		Resolver:        parser,
		Sink:            downloader.DirSink{Root: cfg.Output.Path},
		Workers:         cfg.Fetch.Workers,
		ContinueOnError: *keepGoing,
	}

	results, err := dumper.DumpAll(context.Background(), anime)

	var saved, failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			log.Printf("FAILED %s / episode %d: %v", r.Job.Translation.Name, r.Job.Episode.Index, r.Err)
			continue
		}
		saved++
	}
	fmt.Printf("Saved %d manifest(s) to %s, %d failed.\n", saved, cfg.Output.Path, failed)

	if err != nil {
		log.Fatalf("Dump aborted: %v", err)
	}
}
