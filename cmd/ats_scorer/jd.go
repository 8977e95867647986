package main

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-scorer/internal/fetch"
	"github.com/jonathan/ats-scorer/internal/ingestion"
)

// jdSource selects where a command reads the job description from.
type jdSource struct {
	path     string
	url      string
	demo     bool
	withDemo bool
}

// addFlags registers --jd and --jd-url, plus --demo-jd when withDemo is set.
func (s *jdSource) addFlags(cmd *cobra.Command, withDemo bool) {
	cmd.Flags().StringVarP(&s.path, "jd", "j", "", "Path to job description text file")
	cmd.Flags().StringVar(&s.url, "jd-url", "", "URL of a job posting to fetch the job description from")
	cmd.Flags().Bool("use-browser", false, "Render --jd-url pages in headless Chrome when plain HTTP yields too little text")

	s.withDemo = withDemo
	exclusive := []string{"jd", "jd-url"}
	if withDemo {
		cmd.Flags().BoolVar(&s.demo, "demo-jd", false, "Use a built-in full-stack engineer JD")
		exclusive = append(exclusive, "demo-jd")
	}
	cmd.MarkFlagsMutuallyExclusive(exclusive...)
}

// loadJD returns the JD text. File and URL sources are cleaned.
func (a *app) loadJD(ctx context.Context, s jdSource) (string, error) {
	switch {
	case s.path != "":
		return ingestion.FromFile(s.path)
	case s.url != "":
		var renderer fetch.Renderer
		if a.cfg.Ingest.UseBrowser {
			renderer = fetch.NewChromeRenderer(a.cfg.Ingest.BrowserTimeout, a.log)
		}
		ingester := ingestion.NewURLIngester(fetch.New(a.cfg.FetchOptions()), renderer, a.log)
		return ingester.FromURL(ctx, s.url)
	case s.demo:
		return demoJD, nil
	}

	flags := []string{"--jd", "--jd-url"}
	if s.withDemo {
		flags = append(flags, "--demo-jd")
	}
	return "", errors.New("one of " + strings.Join(flags, ", ") + " must be provided")
}
