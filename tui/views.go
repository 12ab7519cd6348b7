package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"seance-finder-cli/schedule"
)

var (
	chipStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	activeChipStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Foreground(lipgloss.Color("63"))
	soldOutChipStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Faint(true).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Strikethrough(true)
	titleStyle = lipgloss.NewStyle().Bold(true)
)

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func (m appModel) headerView() string {
	title := titleStyle.Render("Séance Finder")
	sub := []string{}
	if m.typeFilter != "" {
		sub = append(sub, "Type : "+typeLabel(m.typeFilter))
	}
	if m.genreFilter != "" {
		sub = append(sub, "Genre : "+m.genreFilter)
	}
	if m.event.Title != "" && (m.state == stateSessionPicker || m.state == stateSessionConfirmed) {
		sub = append(sub, "Événement : "+m.event.Title)
	}
	if m.programmeDate != "" && (m.state == stateProgramme || m.state == stateSelectDate) {
		sub = append(sub, "Date : "+schedule.FormatShortDate(m.programmeDate))
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + hint(meta)
	}

	hints := "ctrl+c quitter • esc retour • taper pour filtrer"
	switch m.state {
	case stateBrowseEvents:
		hints = "ctrl+c quitter • enter séances • ctrl+g genres • ctrl+s type • ctrl+p programme • ctrl+h accueil • taper pour filtrer"
	case stateSessionPicker:
		hints = "←/→ séance • ↑/↓ date • enter choisir • c confirmer • t bande-annonce • esc retour"
	case stateProgramme:
		hints = "ctrl+c quitter • enter séances • ctrl+d autre date • esc retour"
	case stateSelectDate:
		hints = "ctrl+c quitter • enter choisir la date • esc retour"
	case stateHome:
		hints = "ctrl+c quitter • esc retour • ctrl+p programme"
	}

	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint("Filtre : "+filter)
		}
	}
	return title + meta + filterLine + "\n" + hint(hints)
}

func (m appModel) loadingView() string {
	title := "Chargement"
	switch m.state {
	case stateLoadingEvents:
		title = "Chargement des événements"
	case stateLoadingEventSessions:
		title = "Chargement des séances"
	case stateLoadingProgramme:
		title = "Chargement du programme"
	case stateLoadingHome:
		title = "Chargement de l'accueil"
	}
	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), title, hint("Récupération des données..."))
}

// pickerView renders the session picker: a row of date chips, the active
// date's session chips and the event details underneath.
func (m appModel) pickerView() string {
	if len(m.dateKeys) == 0 {
		return hint("Aucune séance disponible pour cet événement.")
	}

	dateChips := make([]string, 0, len(m.dateKeys))
	for _, key := range m.dateKeys {
		label := schedule.FormatShortDate(key)
		if key == m.selection.ActiveDateKey {
			dateChips = append(dateChips, activeChipStyle.Render(label))
		} else {
			dateChips = append(dateChips, chipStyle.Render(label))
		}
	}
	dateRow := lipgloss.JoinHorizontal(lipgloss.Top, dateChips...)

	sessions := m.activeSessions()
	effective, _ := m.selection.EffectiveSession(sessions)
	sessionChips := make([]string, 0, len(sessions))
	for i, session := range sessions {
		label := session.Time + " " + session.Version
		if session.SoldOut() {
			label += " (complet)"
		}
		if i == m.sessionCursor {
			label = "> " + label
		}
		switch {
		case session.SoldOut():
			sessionChips = append(sessionChips, soldOutChipStyle.Render(label))
		case session.ID == effective.ID:
			sessionChips = append(sessionChips, activeChipStyle.Render(label))
		default:
			sessionChips = append(sessionChips, chipStyle.Render(label))
		}
	}
	sessionRow := lipgloss.JoinHorizontal(lipgloss.Top, sessionChips...)

	details := []string{titleStyle.Render(m.event.Title)}
	metaParts := []string{}
	for _, part := range []string{m.event.DurationLabel, m.event.GenresLabel, m.event.AgeRestriction} {
		if part != "" {
			metaParts = append(metaParts, part)
		}
	}
	if len(metaParts) > 0 {
		details = append(details, hint(strings.Join(metaParts, " • ")))
	}
	if effective.ID != "" {
		seats := fmt.Sprintf("%d places", effective.AvailableSeats)
		if effective.SoldOut() {
			seats = "complet"
		}
		details = append(details, hint(fmt.Sprintf("Sélection : %s %s • %s", effective.Time, effective.Version, seats)))
	}

	return strings.Join([]string{dateRow, "", sessionRow, "", strings.Join(details, "\n")}, "\n")
}

func (m appModel) confirmedView() string {
	when := schedule.FormatShortDate(m.confirmed.Date)
	lines := []string{
		titleStyle.Render("Séance confirmée"),
		"",
		fmt.Sprintf("%s — %s à %s (%s)", m.event.Title, when, m.confirmed.Time, m.confirmed.Version),
		hint(fmt.Sprintf("%d places disponibles", m.confirmed.AvailableSeats)),
		"",
		hint("esc retour • ctrl+c quitter"),
	}
	return strings.Join(lines, "\n")
}

func (m appModel) homeView() string {
	sections := []string{}

	if len(m.home.HeroSlides) > 0 {
		slide := m.home.HeroSlides[0]
		hero := titleStyle.Render(strings.TrimSpace(slide.TitleLead + " " + slide.TitleHighlight))
		if slide.Subtitle != "" {
			hero += "\n" + hint(slide.Subtitle)
		}
		sections = append(sections, hero)
	}

	if len(m.home.NowShowing) > 0 {
		lines := []string{titleStyle.Render("À l'affiche")}
		for _, card := range m.home.NowShowing {
			line := "  " + card.Title
			if card.Badge != "" {
				line += " [" + card.Badge + "]"
			}
			if card.Meta != "" {
				line += "  " + hint(card.Meta)
			}
			lines = append(lines, line)
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if len(m.home.Spectacles) > 0 {
		lines := []string{titleStyle.Render("Spectacles")}
		for _, card := range m.home.Spectacles {
			line := "  " + card.Title
			if card.Genre != "" {
				line += "  " + hint(card.Genre)
			}
			lines = append(lines, line)
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if len(m.home.Upcoming) > 0 {
		lines := []string{titleStyle.Render("Prochainement")}
		for _, card := range m.home.Upcoming {
			lines = append(lines, "  "+card.Title+"  "+hint(card.Date))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if len(sections) == 0 {
		return hint("Rien à afficher pour le moment.")
	}
	return strings.Join(sections, "\n\n")
}

// errorRecoveryView is shown when a programme date has no sessions; it
// offers the next day as the obvious recovery.
func (m appModel) errorRecoveryView() string {
	nextKey := m.nextProgrammeDate()
	headerChip := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("63")).
		Padding(0, 2)
	actionChip := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("63")).
		Width(8).
		Align(lipgloss.Center).
		Padding(0, 1)

	title := headerChip.Render("Aucune séance")
	message := lipgloss.NewStyle().
		Foreground(lipgloss.Color("203")).
		Bold(true).
		Render(fmt.Sprintf("Aucune séance trouvée pour le %s.", schedule.FormatShortDate(m.programmeDate)))
	sub := hint("Appuyez sur ENTRÉE pour essayer demain, ou CTRL+D pour choisir une autre date.")

	enterAction := lipgloss.JoinHorizontal(
		lipgloss.Top,
		actionChip.Render("ENTRÉE"),
		"  ",
		titleStyle.Render(fmt.Sprintf("Essayer le %s (demain)", schedule.FormatShortDate(nextKey))),
	)
	dateAction := lipgloss.JoinHorizontal(
		lipgloss.Top,
		actionChip.Render("CTRL+D"),
		"  ",
		"Choisir une autre date",
	)
	footer := hint("ESC retour • CTRL+C quitter")

	content := strings.Join([]string{title, "", message, "", sub, "", enterAction, "", dateAction, "", footer}, "\n")

	panelStyle := lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("63")).
		MarginTop(1)
	if m.width > 56 {
		cardWidth := m.width - 8
		if cardWidth > 84 {
			cardWidth = 84
		}
		panelStyle = panelStyle.Width(cardWidth)
	}
	panel := panelStyle.Render(content)
	if m.width > 0 {
		panel = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, panel)
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(panel)
}

func typeLabel(showType string) string {
	switch showType {
	case "movie":
		return "Films"
	case "show":
		return "Spectacles"
	default:
		return showType
	}
}
