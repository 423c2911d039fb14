package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"splqlineage/internal/analyze"
	"splqlineage/internal/lineage"
)

var (
	flagJSON  bool
	flagStats bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.spl>",
	Short: "Run field-lineage analysis over an SPL query file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		before, statErr := selfStats()

		result := analyze.New(reg).Analyze(string(source))

		if flagJSON {
			if err := printAnalyzeJSON(result); err != nil {
				return err
			}
		} else {
			printAnalyzeHuman(result)
		}

		if flagStats {
			if statErr != nil {
				fmt.Fprintf(os.Stderr, "stats: %v\n", statErr)
			} else {
				printSelfStats(before)
			}
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&flagJSON, "json", false, "emit machine-readable JSON instead of a formatted report")
	analyzeCmd.Flags().BoolVar(&flagStats, "stats", false, "additionally report this process's own RSS and CPU time for the run")
}

type jsonAnalyzeResult struct {
	Fields      []jsonField      `json:"fields"`
	Stages      []lineage.StageSummary `json:"stages"`
	Diagnostics []lineage.Diagnostic   `json:"diagnostics"`
}

type jsonField struct {
	Name         string   `json:"name"`
	OriginStage  int      `json:"origin_stage"`
	OriginCmd    string   `json:"origin_command"`
	DataType     string   `json:"data_type"`
	Confidence   string   `json:"confidence"`
	DependsOn    []string `json:"depends_on,omitempty"`
}

func printAnalyzeJSON(result analyze.Result) error {
	out := jsonAnalyzeResult{
		Stages:      result.Lineage.Stages(),
		Diagnostics: result.Diagnostics,
	}
	for _, name := range result.Lineage.ListFields(nil) {
		n, ok := result.Lineage.GetFieldLineage(name)
		if !ok {
			continue
		}
		out.Fields = append(out.Fields, jsonField{
			Name:        n.FieldName,
			OriginStage: n.OriginStageIndex,
			OriginCmd:   n.OriginCommand,
			DataType:    string(n.DataType),
			Confidence:  string(n.Confidence),
			DependsOn:   n.DependsOn,
		})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printAnalyzeHuman(result analyze.Result) {
	fmt.Println(headingStyle.Render("Fields"))
	for _, name := range result.Lineage.ListFields(nil) {
		n, ok := result.Lineage.GetFieldLineage(name)
		if !ok {
			continue
		}
		deps := ""
		if len(n.DependsOn) > 0 {
			deps = fmt.Sprintf(" <- %v", n.DependsOn)
		}
		fmt.Printf("  %s  %s  [%s/%s] (stage %d, %s)%s\n",
			fieldNameStyle.Render(n.FieldName), string(n.EffectKind), n.DataType, n.Confidence,
			n.OriginStageIndex, n.OriginCommand, deps)
	}

	fmt.Println()
	fmt.Println(headingStyle.Render("Stages"))
	for _, s := range result.Lineage.Stages() {
		status := "matched"
		if !s.Matched {
			status = "unmatched"
		}
		fmt.Printf("  [%d] %s (%s)\n", s.Index, s.CommandName, status)
	}

	if len(result.Diagnostics) == 0 {
		return
	}
	fmt.Println()
	fmt.Println(headingStyle.Render("Diagnostics"))
	for _, d := range result.Diagnostics {
		fmt.Printf("  %s stage %d: %s\n", severityStyle(d.Severity).Render(string(d.Severity)), d.StageIndex, d.Message)
	}
}
