package main

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

var (
	styleCursor = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	styleBranch = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	styleLeaf   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	styleStatus = lipgloss.NewStyle().Faint(true)
)

// browser is the bubbletea model for the interactive tree view.
type browser struct {
	root   *node
	rows   []row
	file   string
	cursor int
	offset int
	height int
}

func newBrowser(root *node, file string) *browser {
	b := &browser{root: root, file: file, height: 24}
	b.rows = flatten(b.root, 0, nil)

	return b
}

func (b *browser) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement, expand/collapse, resize, and quit.
func (b *browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return b, tea.Quit

		case "up", "k":
			if b.cursor > 0 {
				b.cursor--
			}

		case "down", "j":
			if b.cursor < len(b.rows)-1 {
				b.cursor++
			}

		case "enter", " ":
			n := b.rows[b.cursor].node
			if len(n.children) > 0 {
				n.expanded = !n.expanded
				b.rows = flatten(b.root, 0, nil)

				if b.cursor >= len(b.rows) {
					b.cursor = len(b.rows) - 1
				}
			}

		case "e":
			setExpanded(b.root, true)
			b.rows = flatten(b.root, 0, nil)

		case "c":
			setExpanded(b.root, false)
			b.rows = flatten(b.root, 0, nil)
			b.cursor = 0
		}

	case tea.WindowSizeMsg:
		b.height = msg.Height
	}

	b.scroll()

	return b, nil
}

// scroll keeps the cursor inside the visible window.
func (b *browser) scroll() {
	visible := b.visibleLines()

	if b.cursor < b.offset {
		b.offset = b.cursor
	}

	if b.cursor >= b.offset+visible {
		b.offset = b.cursor - visible + 1
	}
}

// visibleLines is the row budget after the status line.
func (b *browser) visibleLines() int {
	if b.height <= 1 {
		return 1
	}

	return b.height - 1
}

func (b *browser) View() tea.View {
	var sb strings.Builder

	visible := b.visibleLines()
	end := min(b.offset+visible, len(b.rows))

	for i := b.offset; i < end; i++ {
		r := b.rows[i]

		marker := "  "
		if len(r.node.children) > 0 {
			marker = "▸ "
			if r.node.expanded {
				marker = "▾ "
			}
		}

		line := strings.Repeat("  ", r.depth) + marker + r.node.label

		style := styleLeaf
		if len(r.node.children) > 0 {
			style = styleBranch
		}

		if i == b.cursor {
			style = styleCursor
		}

		sb.WriteString(style.Render(line))
		sb.WriteString("\n")
	}

	sb.WriteString(styleStatus.Render(
		b.file + "  ↑/↓ move · enter expand/collapse · e/c all · q quit"))

	v := tea.NewView(sb.String())
	v.AltScreen = true

	return v
}

func setExpanded(n *node, expanded bool) {
	n.expanded = expanded
	for _, c := range n.children {
		setExpanded(c, expanded)
	}
}
