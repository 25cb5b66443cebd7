package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"mint/internal/mint"
	"mint/internal/registry"
)

var browseCmd = &cobra.Command{
	Use:   "browse [flags] mint-file [defs...]",
	Short: "Browse a mint tree interactively",
	Long: `Browse opens an interactive viewer over an encoded mint. Struct
references resolve against the additional mint files given as defs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	for _, def := range args[1:] {
		if _, err := s.loadMint(def); err != nil {
			return err
		}
	}
	m, err := s.loadMint(args[0])
	if err != nil {
		return err
	}
	model := newBrowseModel(args[0], m, s.registry)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

type browseRow struct {
	depth    int
	label    string
	detail   string
	ref      string // resolvable struct reference, "" otherwise
	expanded bool
}

type browseModel struct {
	title    string
	reg      *registry.Registry
	rows     []browseRow
	cursor   int
	vp       viewport.Model
	ready    bool
	titleSty lipgloss.Style
	rowSty   lipgloss.Style
	selSty   lipgloss.Style
	dimSty   lipgloss.Style
}

func newBrowseModel(title string, m mint.Mint, reg *registry.Registry) *browseModel {
	return &browseModel{
		title:    title,
		reg:      reg,
		rows:     mintRows(m, reg, 0),
		titleSty: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		rowSty:   lipgloss.NewStyle(),
		selSty:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		dimSty:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// mintRows flattens a mint into display rows at the given depth.
func mintRows(m mint.Mint, reg *registry.Registry, depth int) []browseRow {
	var rows []browseRow
	switch mm := m.(type) {
	case *mint.CallableMint:
		rows = append(rows, browseRow{depth: depth, label: mm.Name, detail: "callable -> " + mm.ReturnType.String()})
		for _, p := range mm.Parameters {
			detail := p.Type.String() + "  (" + p.Kind.String() + ")"
			if p.HasDefault {
				detail += fmt.Sprintf("  = %v", p.Default)
			}
			rows = append(rows, browseRow{depth: depth + 1, label: p.Name, detail: detail, ref: refName(p.Type, reg)})
		}
	case *mint.StructMint:
		rows = append(rows, browseRow{depth: depth, label: mm.Name, detail: "struct"})
		for _, f := range mm.Fields {
			detail := f.Type.String()
			if !f.Required {
				detail += "  (optional)"
			}
			if f.HasDefault {
				detail += fmt.Sprintf("  = %v", f.Default)
			}
			rows = append(rows, browseRow{depth: depth + 1, label: f.Name, detail: detail, ref: refName(f.Type, reg)})
		}
	case *mint.LeafMint:
		rows = append(rows, browseRow{depth: depth, label: "<leaf>", detail: mm.Type.String()})
	}
	return rows
}

// refName returns the reference target when it resolves in the registry.
func refName(t mint.Type, reg *registry.Registry) string {
	if t.Kind != mint.KindStruct || t.Ref == "" {
		return ""
	}
	if _, ok := reg.Lookup(t.Ref); !ok {
		return ""
	}
	return t.Ref
}

func (m *browseModel) Init() tea.Cmd { return nil }

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - 2
		}
		m.vp.SetContent(m.render())
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "enter", " ":
			m.toggle()
		}
		if m.ready {
			m.vp.SetContent(m.render())
			m.scrollToCursor()
		}
	}
	return m, nil
}

// toggle expands or collapses the struct reference under the cursor.
func (m *browseModel) toggle() {
	row := &m.rows[m.cursor]
	if row.ref == "" {
		return
	}
	if row.expanded {
		// Collapse: drop following rows deeper than this one.
		end := m.cursor + 1
		for end < len(m.rows) && m.rows[end].depth > row.depth {
			end++
		}
		m.rows = append(m.rows[:m.cursor+1], m.rows[end:]...)
		row.expanded = false
		return
	}
	shape, ok := m.reg.Lookup(row.ref)
	if !ok {
		return
	}
	children := mintRows(shape, m.reg, row.depth+1)
	rest := append([]browseRow(nil), m.rows[m.cursor+1:]...)
	m.rows = append(m.rows[:m.cursor+1], append(children, rest...)...)
	m.rows[m.cursor].expanded = true
}

func (m *browseModel) scrollToCursor() {
	if m.cursor < m.vp.YOffset {
		m.vp.SetYOffset(m.cursor)
	}
	if m.cursor >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(m.cursor - m.vp.Height + 1)
	}
}

func (m *browseModel) render() string {
	labelWidth := 0
	for _, r := range m.rows {
		w := r.depth*2 + runewidth.StringWidth(r.label)
		if w > labelWidth {
			labelWidth = w
		}
	}
	var b strings.Builder
	for i, r := range m.rows {
		marker := "  "
		if r.ref != "" {
			if r.expanded {
				marker = "▾ "
			} else {
				marker = "▸ "
			}
		}
		label := strings.Repeat("  ", r.depth) + r.label
		pad := labelWidth - runewidth.StringWidth(label)
		line := marker + label + strings.Repeat(" ", pad+2) + r.detail
		if i == m.cursor {
			b.WriteString(m.selSty.Render(line))
		} else if r.detail == "" {
			b.WriteString(m.dimSty.Render(line))
		} else {
			b.WriteString(m.rowSty.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *browseModel) View() string {
	if !m.ready {
		return "loading..."
	}
	header := m.titleSty.Render(m.title) + m.dimSty.Render("  (enter expands references, q quits)")
	return header + "\n" + m.vp.View()
}
