package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-scorer/internal/observability"
	"github.com/jonathan/ats-scorer/internal/pipeline"
	"github.com/jonathan/ats-scorer/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume, optionally against job requirements",
	Long: `Score a structured resume JSON file and print the ScoreResult with recommendations.
With --text the resume file is treated as raw text and run through extraction first.`,
	RunE: runScore,
}

var (
	scoreResumeFile string
	scoreJobFile    string
	scoreIndustry   string
	scoreTenant     string
	scoreText       bool
	scoreSkipRecs   bool
	scoreVerbose    bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreResumeFile, "resume", "r", "", "Path to resume JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreJobFile, "job", "j", "", "Path to job requirements JSON file")
	scoreCmd.Flags().StringVar(&scoreIndustry, "industry", "", "Benchmark industry (overrides the job's industry)")
	scoreCmd.Flags().StringVar(&scoreTenant, "tenant", "", "Score with a configured tenant's weights")
	scoreCmd.Flags().BoolVar(&scoreText, "text", false, "Treat the resume file as raw text")
	scoreCmd.Flags().BoolVar(&scoreSkipRecs, "skip-recommendations", false, "Do not generate recommendations")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")

	_ = scoreCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	resume, err := readFile(scoreResumeFile, "resume")
	if err != nil {
		return err
	}
	job, err := readFile(scoreJobFile, "job")
	if err != nil {
		return err
	}

	var progress pipeline.ProgressCallback
	if scoreVerbose {
		progress = func(e pipeline.ProgressEvent) {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", e.Step, e.Message)
		}
	}
	runner, err := commandRunner(cmd, scoreTenant, progress)
	if err != nil {
		return err
	}

	req := pipeline.Request{
		Job:                 json.RawMessage(job),
		Industry:            scoreIndustry,
		SkipRecommendations: scoreSkipRecs,
		Tenant:              scoreTenant,
	}
	if scoreText {
		req.ResumeText = string(resume)
	} else {
		req.Resume = json.RawMessage(resume)
	}

	resp, err := runner.Run(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("failed to score resume: %w", err)
	}

	if scoreVerbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		if resp.Extraction != nil {
			printer.PrintExtraction(&types.Extraction{Provenance: resp.Extraction.Provenance, Reason: resp.Extraction.Reason})
		}
		printer.PrintScoreResult(resp.Result)
		printer.PrintRecommendations(resp.Recommendations)
	}
	return writeJSON(cmd, resp)
}
