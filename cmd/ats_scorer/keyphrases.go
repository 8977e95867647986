package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-scorer/internal/observability"
	"github.com/jonathan/ats-scorer/internal/types"
)

func newKeyphrasesCmd(a *app) *cobra.Command {
	var (
		jd      jdSource
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "keyphrases",
		Short: "Extract the top keyphrases of a job description",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runKeyphrases(cmd.Context(), cmd.OutOrStdout(), jd, jsonOut)
		},
	}

	jd.addFlags(cmd, false)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the response as JSON")

	return cmd
}

func (a *app) runKeyphrases(ctx context.Context, out io.Writer, source jdSource, jsonOut bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	jd, err := a.loadJD(ctx, source)
	if err != nil {
		return err
	}

	deps, err := a.buildDeps(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = deps.Close() }()

	keywords, err := deps.keyphrases.Extract(ctx, types.KeyphraseRequest{JD: jd})
	if err != nil {
		return err
	}

	if jsonOut {
		return writeJSON(out, types.KeyphraseResponse{Keywords: keywords})
	}
	observability.NewPrinter(out).PrintKeyphrases(keywords)
	return nil
}
