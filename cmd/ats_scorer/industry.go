package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/ats-scorer/internal/observability"
	"github.com/jonathan/ats-scorer/internal/pipeline"
)

var industryCmd = &cobra.Command{
	Use:   "industry",
	Short: "Measure how well a resume matches an industry's skill patterns",
	RunE:  runIndustry,
}

var (
	industryResumeFile string
	industryName       string
	industryVerbose    bool
)

func init() {
	industryCmd.Flags().StringVarP(&industryResumeFile, "resume", "r", "", "Path to resume JSON file (required)")
	industryCmd.Flags().StringVar(&industryName, "industry", "", "Industry to analyze against (required)")
	industryCmd.Flags().BoolVarP(&industryVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")

	_ = industryCmd.MarkFlagRequired("resume")
	_ = industryCmd.MarkFlagRequired("industry")
	rootCmd.AddCommand(industryCmd)
}

func runIndustry(cmd *cobra.Command, _ []string) error {
	data, err := readFile(industryResumeFile, "resume")
	if err != nil {
		return err
	}
	resume, err := pipeline.DecodeResume(data)
	if err != nil {
		return err
	}

	runner, err := commandRunner(cmd, "", nil)
	if err != nil {
		return err
	}

	analysis := runner.Engine().IndustryAnalysis(resume, industryName)
	if industryVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintIndustryAnalysis(&analysis)
	}
	return writeJSON(cmd, analysis)
}
