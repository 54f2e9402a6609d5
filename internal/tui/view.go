package tui

import (
	"fmt"
	"strings"
)

// View renders the model.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.mode {
	case ModeHelp:
		content = m.viewHelp()
	case ModeNormal, ModeConfirm, ModeInputName:
		content = m.viewMain()
	}

	return m.styles.App.Render(content)
}

// viewMain renders the main task list view.
func (m *Model) viewMain() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.ErrorMsg.Render("Error: "+m.err.Error()) + "\n\n")
	} else if m.status != "" {
		b.WriteString(m.styles.StatusMsg.Render(m.status) + "\n\n")
	}

	if m.mode == ModeInputName {
		b.WriteString(m.styles.InputPrompt.Render("New task: "))
		b.WriteString(m.nameInput.View())
		b.WriteString("\n\n")
	}

	if len(m.taskList.Items()) == 0 {
		b.WriteString(m.styles.EmptyState.Render("No tasks. Press n to create one."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.taskList.View())
		b.WriteString("\n")
	}

	if m.mode == ModeConfirm {
		b.WriteString("\n")
		b.WriteString(m.viewConfirm())
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return b.String()
}

// viewHeader renders the title line with task counts.
func (m *Model) viewHeader() string {
	running := 0
	for _, s := range m.active {
		if s.Task.IsRunning() {
			running++
		}
	}

	counts := fmt.Sprintf("%d active, %d running, %d completed", len(m.active), running, len(m.completed))
	if !m.showAll && len(m.completed) > 0 {
		counts += " (a: show completed)"
	}
	if m.caller != "" {
		counts = m.caller + " · " + counts
	}

	return m.styles.Header.Render("tasktimer") + "  " + m.styles.HeaderText.Render(counts)
}

// viewConfirm renders the confirmation dialog.
func (m *Model) viewConfirm() string {
	name := ""
	for _, s := range append(append(m.active[:0:0], m.active...), m.completed...) {
		if s.Task.ID == m.confirmTaskID {
			name = s.Task.Name
			break
		}
	}
	prompt := fmt.Sprintf("%s task #%d %q? (y/N)", capitalize(m.confirmAction.String()), m.confirmTaskID, name)
	if m.confirmAction == ConfirmDelete {
		prompt += "\nIts notes are deleted too."
	}
	return m.styles.ConfirmDialog.Render(prompt)
}

// viewHelp renders the help overlay.
func (m *Model) viewHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("tasktimer help"))
	b.WriteString("\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("Press any key to return"))
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
