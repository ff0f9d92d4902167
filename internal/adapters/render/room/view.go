package room

import (
	"fmt"
	"strings"

	"github.com/bnema/meetroom-cli/internal/application"
	"github.com/bnema/meetroom-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const loaderLabel = "Not in the call. Press j to join."

// Render draws a snapshot without a running program. The loader glyph is
// static here; the interactive model animates it.
func Render(snapshot application.RoomSnapshot) string {
	return renderView(snapshot, "*", newStyles())
}

func renderView(snapshot application.RoomSnapshot, loader string, s styles) string {
	lines := []string{headerLine(snapshot, s)}
	lines = append(lines, s.header.Render(fmt.Sprintf("layout: %s", snapshot.Layout.Label())))

	if snapshot.Joined {
		lines = append(lines, s.section.Render(lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.stopwatch.Render(snapshot.Elapsed),
			" ",
			s.header.Render(fmt.Sprintf("timer: %s", snapshot.TimerState)),
		)))
	} else {
		lines = append(lines, s.section.Render(s.loader.Render(fmt.Sprintf("%s %s", loader, loaderLabel))))
	}

	if snapshot.ShowParticipants {
		lines = append(lines, s.section.Render(participantPanel(snapshot.Participants, s)))
	}

	if len(snapshot.Toasts) > 0 {
		lines = append(lines, s.section.Render(toastList(snapshot, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func headerLine(snapshot application.RoomSnapshot, s styles) string {
	title := s.title.Render(snapshot.Title)
	if snapshot.Personal {
		return lipgloss.JoinHorizontal(lipgloss.Top, title, " ", s.badge.Render("[personal room]"))
	}

	return title
}

func participantPanel(names []string, s styles) string {
	parts := []string{s.panelTitle.Render(fmt.Sprintf("Participants (%d)", len(names)))}
	if len(names) == 0 {
		parts = append(parts, s.empty.Render("No participants."))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	for _, name := range names {
		parts = append(parts, s.detail.Render("  "+name))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func toastList(snapshot application.RoomSnapshot, s styles) string {
	parts := make([]string, 0, len(snapshot.Toasts)*2)
	for i, toast := range snapshot.Toasts {
		parts = append(parts, toastTitle(toast, s))
		parts = append(parts, s.detail.Render("  "+toast.Description))

		last := i == len(snapshot.Toasts)-1
		if last && toast.HasAction() && snapshot.CanExtend {
			parts = append(parts, s.hint.Render(fmt.Sprintf("  [e] %s", toast.Action.Label)))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func toastTitle(toast domain.NotificationEvent, s styles) string {
	stamp := domain.FormatTimestamp(toast.EmittedAt)
	if toast.Kind == domain.NotificationWarning {
		return s.warning.Render(strings.TrimSpace(stamp + " " + toast.Title))
	}

	return s.ended.Render(strings.TrimSpace(stamp + " " + toast.Title))
}
