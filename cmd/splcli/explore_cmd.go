package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"splqlineage/internal/analyze"
	"splqlineage/internal/lineage"
)

var exploreCmd = &cobra.Command{
	Use:   "explore <file.spl>",
	Short: "Browse a query's field lineage interactively",
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
		result := analyze.New(reg).Analyze(string(source))
		return runExplore(result)
	},
}

type fieldItem struct {
	node *lineage.Node
}

func (f fieldItem) FilterValue() string { return f.node.FieldName }
func (f fieldItem) Title() string       { return f.node.FieldName }
func (f fieldItem) Description() string {
	return fmt.Sprintf("%s  [%s/%s]", f.node.EffectKind, f.node.DataType, f.node.Confidence)
}

type exploreModel struct {
	list     list.Model
	result   analyze.Result
	renderer *glamour.TermRenderer
	detail   string
}

func runExplore(result analyze.Result) error {
	var items []list.Item
	for _, name := range result.Lineage.ListFields(nil) {
		if n, ok := result.Lineage.GetFieldLineage(name); ok {
			items = append(items, fieldItem{node: n})
		}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Fields"

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return fmt.Errorf("init markdown renderer: %w", err)
	}

	m := exploreModel{list: l, result: result, renderer: renderer}
	_, err = tea.NewProgram(m).Run()
	return err
}

func (m exploreModel) Init() tea.Cmd { return nil }

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			if fi, ok := m.list.SelectedItem().(fieldItem); ok {
				m.detail = m.renderDetail(fi.node)
			}
			return m, nil
		case "esc":
			m.detail = ""
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m exploreModel) View() string {
	if m.detail != "" {
		return m.detail + "\n" + lipgloss.NewStyle().Faint(true).Render("(esc to go back, q to quit)")
	}
	return m.list.View()
}

func (m exploreModel) renderDetail(n *lineage.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", n.FieldName)
	fmt.Fprintf(&b, "- effect: `%s`\n", n.EffectKind)
	fmt.Fprintf(&b, "- type: `%s`\n", n.DataType)
	fmt.Fprintf(&b, "- confidence: `%s`\n", n.Confidence)
	fmt.Fprintf(&b, "- origin: stage %d (`%s`)\n", n.OriginStageIndex, n.OriginCommand)
	if len(n.DependsOn) > 0 {
		fmt.Fprintf(&b, "- depends on: %s\n", strings.Join(backtickJoin(n.DependsOn), ", "))
	}
	transitive := m.result.Lineage.GetTransitiveDependencies(n.FieldName)
	if len(transitive) > 0 {
		fmt.Fprintf(&b, "\n## transitive dependencies\n\n")
		for _, d := range transitive {
			fmt.Fprintf(&b, "- %s\n", d)
		}
	}

	out, err := m.renderer.Render(b.String())
	if err != nil {
		return b.String()
	}
	return strings.TrimRight(out, "\n")
}

func backtickJoin(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = "`" + n + "`"
	}
	return out
}
