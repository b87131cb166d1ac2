package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-scorer/internal/observability"
	"github.com/jonathan/ats-scorer/internal/pipeline"
)

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "Analyze skill gaps between a resume and job requirements",
	RunE:  runGaps,
}

var (
	gapsResumeFile string
	gapsJobFile    string
	gapsVerbose    bool
)

func init() {
	gapsCmd.Flags().StringVarP(&gapsResumeFile, "resume", "r", "", "Path to resume JSON file (required)")
	gapsCmd.Flags().StringVarP(&gapsJobFile, "job", "j", "", "Path to job requirements JSON file (required)")
	gapsCmd.Flags().BoolVarP(&gapsVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")

	_ = gapsCmd.MarkFlagRequired("resume")
	_ = gapsCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(gapsCmd)
}

func runGaps(cmd *cobra.Command, _ []string) error {
	resumeData, err := readFile(gapsResumeFile, "resume")
	if err != nil {
		return err
	}
	jobData, err := readFile(gapsJobFile, "job")
	if err != nil {
		return err
	}
	resume, err := pipeline.DecodeResume(resumeData)
	if err != nil {
		return err
	}
	job, err := pipeline.DecodeJob(jobData)
	if err != nil {
		return err
	}
	if job == nil {
		return errors.New("job requirements are required")
	}

	runner, err := commandRunner(cmd, "", nil)
	if err != nil {
		return err
	}

	gaps := runner.Engine().SkillGaps(resume, job)
	if gapsVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintSkillGaps(&gaps)
	}
	return writeJSON(cmd, gaps)
}
