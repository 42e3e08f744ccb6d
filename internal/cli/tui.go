package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/treeoflife/pkg/geometry"
	"github.com/matzehuels/treeoflife/pkg/radial"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// LeafListModel - Interactive leaf browser
// =============================================================================

// LeafListModel is the bubbletea model for browsing the leaves of a layout
// and the ancestor chain of the selected leaf.
type LeafListModel struct {
	Layout *radial.Layout
	Leaves []radial.Node
	Mode   geometry.Mode
	Cursor int
	Height int
	Offset int
}

// NewLeafListModel creates a new leaf list model.
func NewLeafListModel(l *radial.Layout, mode geometry.Mode) LeafListModel {
	return LeafListModel{
		Layout: l,
		Leaves: l.Leaves(),
		Mode:   mode,
		Height: 10,
	}
}

func (m LeafListModel) Init() tea.Cmd {
	return nil
}

func (m LeafListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Leaves)-1 {
				m.Cursor++
			}
		case "g", "home":
			m.Cursor = 0
		case "G", "end":
			m.Cursor = max(len(m.Leaves)-1, 0)
		case "m":
			m.Mode = m.Mode.Other()
		}
	case tea.WindowSizeMsg:
		m.Height = max((msg.Height-8)/2, 3)
	}
	m.scroll()
	return m, nil
}

// scroll keeps the cursor inside the visible window.
func (m *LeafListModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m LeafListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Tree of Life"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%s branches", m.Mode)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  m toggle lengths  q quit"))
	b.WriteString("\n\n")

	if len(m.Leaves) == 0 {
		b.WriteString(listDimStyle.Render("  no leaves"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Leaves))
	for i := m.Offset; i < end; i++ {
		leaf := m.Leaves[i]
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(cursor + swatch(leaf.Color) + " " + style.Render(displayName(leaf.Name)))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Leaves))))
	b.WriteString("\n\n")

	b.WriteString(m.ancestorTable())
	b.WriteString("\n")
	return b.String()
}

// ancestorTable lists the selected leaf and its ancestors up to the root.
func (m LeafListModel) ancestorTable() string {
	chain := m.Layout.Ancestors(m.Leaves[m.Cursor].ID)
	rows := make([][]string, 0, len(chain))
	for _, id := range chain {
		n := m.Layout.Nodes[id]
		rows = append(rows, []string{
			swatch(n.Color),
			displayName(n.Name),
			geometry.FormatNumber(n.Length),
			geometry.FormatNumber(n.Angle),
			geometry.FormatNumber(m.Mode.Radius(n)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Length", "Angle", "Radius").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == 0 {
				return lipgloss.NewStyle().Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		}).
		Render()
}

// =============================================================================
// Helpers
// =============================================================================

func swatch(color string) string {
	if color == "" {
		return listDimStyle.Render(iconSwatch)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(iconSwatch)
}

func displayName(name string) string {
	if name == "" {
		return "N/A"
	}
	return name
}
