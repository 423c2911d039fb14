package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"splqlineage/internal/analyze"
	"splqlineage/internal/pattern"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive shell for analyzing queries line by line",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		return runREPL(reg)
	},
}

var replCommands = []string{"analyze", "risky", "fields", "help", "quit"}

func runREPL(reg *pattern.Registry) error {
	completer := readline.NewPrefixCompleter()
	for _, c := range replCommands {
		completer.Children = append(completer.Children, readline.PcItem(c))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "splcli> ",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	an := analyze.New(reg)
	var lastSource string

	fmt.Println("splcli repl — paste or type an SPL query, then run 'analyze' or 'risky'. Type 'help' for commands.")

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch strings.Fields(line)[0] {
		case "quit", "exit":
			return nil
		case "help":
			printREPLHelp()
		case "analyze":
			if lastSource == "" {
				fmt.Println("no query loaded yet — type one first, then 'analyze'")
				continue
			}
			printAnalyzeHuman(an.Analyze(lastSource))
		case "risky":
			if lastSource == "" {
				fmt.Println("no query loaded yet — type one first, then 'risky'")
				continue
			}
			printRiskyReport(riskyDetector().Detect(lastSource))
		case "fields":
			if lastSource == "" {
				fmt.Println("no query loaded yet")
				continue
			}
			res := an.Analyze(lastSource)
			fmt.Println(res.Lineage.ListFields(nil))
		default:
			lastSource = line
			fmt.Println("query loaded, run 'analyze' or 'risky'")
		}
	}
}

func printREPLHelp() {
	fmt.Println("commands:")
	fmt.Println("  <query>   set the current query (anything not matching a command below)")
	fmt.Println("  analyze   run lineage analysis over the current query")
	fmt.Println("  risky     report risky command spans in the current query")
	fmt.Println("  fields    list the field names live at the end of the current query")
	fmt.Println("  quit      exit the repl")
}
