// One-shot audit from the command line: run the full pipeline for a single
// clinic and print the sections, optionally writing the CSV export.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"smileaudit/internal/adapters/cse"
	"smileaudit/internal/adapters/fetch"
	"smileaudit/internal/adapters/observability"
	"smileaudit/internal/adapters/places"
	"smileaudit/internal/app"
	"smileaudit/internal/domain"
	"smileaudit/internal/export"
	"smileaudit/internal/shared"
)

func main() {
	var (
		name    = flag.String("name", "", "clinic name")
		address = flag.String("address", "", "clinic address")
		phone   = flag.String("phone", "", "clinic phone")
		website = flag.String("website", "", "clinic website URL")
		out     = flag.String("out", "", "write the CSV export to this path")
	)
	flag.Parse()

	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	q := domain.ClinicQuery{
		Name:    strings.TrimSpace(*name),
		Address: strings.TrimSpace(*address),
		Phone:   strings.TrimSpace(*phone),
		Website: strings.TrimSpace(*website),
	}
	if q.Name == "" && q.Website == "" {
		fmt.Fprintln(os.Stderr, "provide at least -name or -website")
		flag.Usage()
		os.Exit(2)
	}

	fetcher := fetch.New(cfg.HTTPTimeout, cfg.UserAgent)
	placesCl := places.New(cfg.PlacesBase, cfg.PlacesKey, cfg.PlacesRPS, cfg.HTTPTimeout)
	searchCl := cse.New(cfg.CSEBase, cfg.CSEKey, cfg.CSECX, cfg.HTTPTimeout)
	// no cache for a one-shot run
	svc := app.NewAuditService(fetcher, placesCl, searchCl, nil, 0)

	rep, err := svc.Run(context.Background(), q)
	if err != nil {
		log.Fatal().Err(err).Msg("audit failed")
	}

	printReport(rep)

	if *out != "" {
		if err := export.WriteFile(*out, rep); err != nil {
			log.Fatal().Err(err).Str("path", *out).Msg("csv export failed")
		}
		fmt.Printf("  CSV written to %s\n\n", *out)
	}
}

func printReport(r domain.Report) {
	sep := strings.Repeat("=", 64)
	thin := strings.Repeat("-", 56)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🦷 SMILE AUDIT\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	for _, sec := range r.Sections {
		fmt.Printf("\033[1;33m  %s\033[0m\n", sec.Title)
		fmt.Printf("  %s\n", thin)
		for _, m := range sec.Metrics {
			fmt.Printf("  %-38s : \033[1m%s\033[0m\n", m.Name, m.Value.String())
			if m.Advice != "" {
				fmt.Printf("  %-38s   → %s\n", "", m.Advice)
			}
		}
		fmt.Println()
	}

	fmt.Printf("\033[1;33m  Smile Score\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Composite  : \033[1;32m%.1f/100\033[0m\n", r.Score.Composite)
	fmt.Printf("  Visibility : %.1f/30\n", r.Score.Visibility)
	fmt.Printf("  Reputation : %.1f/40\n", r.Score.Reputation)
	fmt.Printf("  Experience : %.1f/30\n", r.Score.Experience)
	fmt.Println()
}
