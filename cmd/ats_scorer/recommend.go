package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-scorer/internal/observability"
	"github.com/jonathan/ats-scorer/internal/pipeline"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Generate improvement recommendations for a resume",
	Long:  "Score a resume and print the full RecommendationSet: priority actions, quick wins, keyword and skill guidance.",
	RunE:  runRecommend,
}

var (
	recommendResumeFile string
	recommendJobFile    string
	recommendIndustry   string
	recommendTenant     string
	recommendVerbose    bool
)

func init() {
	recommendCmd.Flags().StringVarP(&recommendResumeFile, "resume", "r", "", "Path to resume JSON file (required)")
	recommendCmd.Flags().StringVarP(&recommendJobFile, "job", "j", "", "Path to job requirements JSON file")
	recommendCmd.Flags().StringVar(&recommendIndustry, "industry", "", "Benchmark industry")
	recommendCmd.Flags().StringVar(&recommendTenant, "tenant", "", "Use a configured tenant's weights")
	recommendCmd.Flags().BoolVarP(&recommendVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")

	_ = recommendCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	resume, err := readFile(recommendResumeFile, "resume")
	if err != nil {
		return err
	}
	job, err := readFile(recommendJobFile, "job")
	if err != nil {
		return err
	}

	runner, err := commandRunner(cmd, recommendTenant, nil)
	if err != nil {
		return err
	}

	resp, err := runner.Run(cmd.Context(), pipeline.Request{
		Resume:   json.RawMessage(resume),
		Job:      json.RawMessage(job),
		Industry: recommendIndustry,
		Tenant:   recommendTenant,
	})
	if err != nil {
		return fmt.Errorf("failed to generate recommendations: %w", err)
	}

	if recommendVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintRecommendations(resp.Recommendations)
	}
	return writeJSON(cmd, resp.Recommendations)
}
