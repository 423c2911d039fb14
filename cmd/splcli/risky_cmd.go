package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"splqlineage/internal/risky"
)

var (
	flagFullPolicy bool
	flagUseRegex   bool
	flagWrite      string
)

var riskyCmd = &cobra.Command{
	Use:   "risky <file.spl>",
	Short: "Detect and optionally strip risky commands from an SPL query",
}

var riskyDetectCmd = &cobra.Command{
	Use:   "detect <file.spl>",
	Short: "Report spans of risky commands in the query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		report := riskyDetector().Detect(string(source))
		printRiskyReport(report)
		return nil
	},
}

var riskyRemoveCmd = &cobra.Command{
	Use:   "remove <file.spl>",
	Short: "Print the query with every risky command removed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		source := string(raw)
		report := riskyDetector().Detect(source)
		cleaned := risky.Remove(source, report.Commands)

		if flagWrite == "" {
			fmt.Println(cleaned)
			return nil
		}
		return os.WriteFile(flagWrite, []byte(cleaned+"\n"), 0o644)
	},
}

func init() {
	riskyCmd.PersistentFlags().BoolVar(&flagFullPolicy, "full-policy", false,
		"use the extended risky-command policy (outputcsv, sendemail, script, delete, summaryindex) instead of the default")
	riskyCmd.PersistentFlags().BoolVar(&flagUseRegex, "regex-fallback", false,
		"detect risky commands via the regex fallback path instead of the parsed stage list")

	riskyRemoveCmd.Flags().StringVarP(&flagWrite, "output", "o", "", "write the cleaned query to this file instead of stdout")

	riskyCmd.AddCommand(riskyDetectCmd)
	riskyCmd.AddCommand(riskyRemoveCmd)
}

func riskyDetector() risky.Detector {
	policy := risky.DefaultPolicy()
	if flagFullPolicy {
		policy = risky.FullPolicy()
	}
	if flagUseRegex {
		return risky.NewRegexDetector(policy)
	}
	return risky.NewStageDetector(policy)
}

func printRiskyReport(report risky.Report) {
	if !report.HasRisky {
		fmt.Println("no risky commands found")
		return
	}
	fmt.Printf("%d risky command span(s): %v\n\n", len(report.Commands), report.UniqueNames)
	for _, s := range report.Commands {
		fmt.Printf("  %s  lines %d-%d  offsets [%d,%d]\n",
			riskyStyle.Render(s.CommandName), s.StartLine, s.EndLine, s.StartOffset, s.EndOffset)
	}
}
