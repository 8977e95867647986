package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-scorer/internal/observability"
	"github.com/jonathan/ats-scorer/internal/pipeline"
	"github.com/jonathan/ats-scorer/internal/types"
)

// demoJD is the full-stack engineering posting used by --demo-jd.
const demoJD = `Job Title: Full Stack Software Engineer

We are looking for a skilled Full Stack Software Engineer to join our team.

Requirements:
- 2+ years of experience in software development
- Proficiency in JavaScript, TypeScript, Python, or Java
- Experience with React, Angular, or Vue.js for frontend development
- Backend experience with Node.js, Express, Django, or Spring Boot
- Database experience with MongoDB, PostgreSQL, or MySQL
- Familiarity with RESTful APIs and microservices architecture
- Experience with Git, CI/CD pipelines, and cloud platforms (AWS/GCP/Azure)
- Strong problem-solving and communication skills
- Experience with Docker, Kubernetes, or containerization is a plus
- Knowledge of system design and distributed systems is preferred

Responsibilities:
- Design, develop, and maintain web applications
- Collaborate with cross-functional teams to deliver features
- Write clean, testable, and well-documented code
- Participate in code reviews and mentor junior developers
- Optimize application performance and scalability
`

type scoreOptions struct {
	jd         jdSource
	resumePath string
	jsonOut    bool
	verbose    bool
}

func newScoreCmd(a *app) *cobra.Command {
	opts := &scoreOptions{}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a resume against a job description",
		Long: `Runs the scoring pipeline locally: segment the resume, compare each section
with the JD, apply bonus heuristics and report keyword overlap.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runScore(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	opts.jd.addFlags(cmd, true)
	cmd.Flags().StringVarP(&opts.resumePath, "resume", "r", "", "Path to resume text file")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print the response as JSON")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print each pipeline stage")
	_ = cmd.MarkFlagRequired("resume")

	return cmd
}

func (a *app) runScore(ctx context.Context, out io.Writer, opts *scoreOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	jd, err := a.loadJD(ctx, opts.jd)
	if err != nil {
		return err
	}
	resume, err := os.ReadFile(opts.resumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	deps, err := a.buildDeps(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = deps.Close() }()

	printer := observability.NewPrinter(out)
	var onProgress pipeline.ProgressCallback
	if opts.verbose {
		onProgress = func(_ context.Context, event pipeline.ProgressEvent) {
			printer.PrintStage(event)
		}
	}

	resp, err := deps.scorer.Run(ctx, types.ScoreRequest{JD: jd, Resume: string(resume)}, onProgress)
	if err != nil {
		return err
	}

	if opts.jsonOut {
		return writeJSON(out, resp)
	}
	printer.PrintScoreReport(resp)
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
