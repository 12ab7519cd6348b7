package tui

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"seance-finder-cli/model"
	"seance-finder-cli/schedule"
	"seance-finder-cli/service"
	"seance-finder-cli/store"
)

type appState int

const (
	stateLoadingEvents appState = iota
	stateBrowseEvents
	stateSelectGenre
	stateLoadingEventSessions
	stateSessionPicker
	stateSessionConfirmed
	stateLoadingProgramme
	stateProgramme
	stateSelectDate
	stateLoadingHome
	stateHome
	stateError
)

const programmeWindowDays = 10

type appModel struct {
	client *service.Client

	state     appState
	lastState appState
	err       error

	width  int
	height int

	listing model.Listing
	home    model.HomeData

	typeFilter  string
	genreFilter string

	event    model.Event
	sessions []model.Session

	buckets       map[string][]model.Session
	dateKeys      []string
	selection     schedule.Selection
	sessionCursor int
	confirmed     model.Session

	programmeDate string
	daySchedule   model.DaySchedule

	dateReturnState    appState
	dateReturnStateSet bool

	eventList     list.Model
	genreList     list.Model
	programmeList list.Model
	dateList      list.Model

	spinner spinner.Model

	errorSuggestNextDay bool
}

type errMsg struct {
	err            error
	returnState    appState
	returnStateSet bool
	suggestNextDay bool
}

type listingMsg struct {
	listing model.Listing
}

type homeMsg struct {
	home model.HomeData
}

type eventSessionsMsg struct {
	event    model.Event
	sessions []model.Session
	found    bool
}

type scheduleMsg struct {
	day model.DaySchedule
}

// New builds the TUI root model against the given API client.
func New(client *service.Client) tea.Model {
	m := appModel{
		client:        client,
		state:         stateLoadingEvents,
		typeFilter:    "movie",
		programmeDate: schedule.DateKey(time.Now()),
	}

	m.eventList = newList("Événements")
	m.genreList = newList("Choisir un genre")
	m.programmeList = newList("Programme")
	m.dateList = newList("Choisir une date")
	m.genreList.SetItems(buildGenreItems())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.fetchListingCmd(m.typeFilter, m.genreFilter), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.handleFilterInput(msg) {
			return m, nil
		}
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoadingState() {
			return m, cmd
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		if msg.returnStateSet {
			m.lastState = msg.returnState
		} else {
			m.lastState = recoverStateFrom(m.state)
		}
		m.errorSuggestNextDay = msg.suggestNextDay
		m.state = stateError
		return m, nil

	case listingMsg:
		m.listing = msg.listing
		if len(m.listing.Events) == 0 {
			return m, errWithOptionsCmd(errors.New("aucun événement trouvé pour ces filtres"), stateBrowseEvents, false)
		}
		m.eventList.SetItems(buildEventItems(m.listing))
		m.eventList.Select(0)
		m.state = stateBrowseEvents
		return m, nil

	case homeMsg:
		m.home = msg.home
		m.state = stateHome
		return m, nil

	case eventSessionsMsg:
		if !msg.found {
			return m, errCmd(errors.New("événement introuvable"))
		}
		sameEvent := m.event.ID != "" && m.event.ID == msg.event.ID
		m.event = msg.event
		m.sessions = msg.sessions
		_ = store.RememberEvent(m.event)
		m.buckets, m.dateKeys = schedule.GroupSessionsByDate(m.sessions, time.Now())
		if sameEvent && containsKey(m.dateKeys, m.selection.ActiveDateKey) {
			// Refreshing the same event keeps the pick when it survived.
			m.selection = m.selection.Clamp(m.buckets[m.selection.ActiveDateKey])
		} else {
			m.selection = schedule.NewSelection(m.dateKeys, schedule.DateKey(time.Now()))
		}
		m.sessionCursor = m.effectiveIndex()
		m.confirmed = model.Session{}
		m.state = stateSessionPicker
		return m, nil

	case scheduleMsg:
		m.daySchedule = msg.day
		m.programmeDate = msg.day.Date
		if len(m.daySchedule.Events) == 0 {
			return m, errWithOptionsCmd(
				fmt.Errorf("aucune séance pour le %s", schedule.FormatShortDate(m.programmeDate)),
				stateBrowseEvents,
				true,
			)
		}
		m.programmeList.Title = "Programme • " + schedule.FormatShortDate(m.programmeDate)
		m.programmeList.SetItems(buildProgrammeItems(m.daySchedule))
		m.programmeList.Select(0)
		m.state = stateProgramme
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateBrowseEvents:
		m.eventList, cmd = m.eventList.Update(msg)
	case stateSelectGenre:
		m.genreList, cmd = m.genreList.Update(msg)
	case stateProgramme:
		m.programmeList, cmd = m.programmeList.Update(msg)
	case stateSelectDate:
		m.dateList, cmd = m.dateList.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateLoadingEvents, stateLoadingEventSessions, stateLoadingProgramme, stateLoadingHome:
		return header + "\n\n" + m.loadingView()
	case stateBrowseEvents:
		return header + "\n\n" + m.eventList.View()
	case stateSelectGenre:
		return header + "\n\n" + m.genreList.View()
	case stateSessionPicker:
		return header + "\n\n" + m.pickerView()
	case stateSessionConfirmed:
		return header + "\n\n" + m.confirmedView()
	case stateProgramme:
		return header + "\n\n" + m.programmeList.View()
	case stateSelectDate:
		return header + "\n\n" + m.dateList.View()
	case stateHome:
		return header + "\n\n" + m.homeView()
	case stateError:
		if m.errorSuggestNextDay {
			return header + "\n\n" + m.errorRecoveryView()
		}
		return header + "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error()) + "\n\n" + hint("esc retour • ctrl+c quitter")
	default:
		return header
	}
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit, true
	case "esc":
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		next, cmd := m.goBack()
		return next, cmd, true
	case "ctrl+h":
		if m.state != stateLoadingHome {
			m.state = stateLoadingHome
			return m, tea.Batch(m.fetchHomeCmd(), m.spinner.Tick), true
		}
	case "ctrl+g":
		if m.state == stateBrowseEvents {
			m.state = stateSelectGenre
			return m, nil, true
		}
	case "ctrl+s":
		if m.state == stateBrowseEvents {
			m.typeFilter = nextTypeFilter(m.typeFilter)
			m.state = stateLoadingEvents
			return m, tea.Batch(m.fetchListingCmd(m.typeFilter, m.genreFilter), m.spinner.Tick), true
		}
	case "ctrl+p":
		if m.state == stateBrowseEvents || m.state == stateHome {
			m.state = stateLoadingProgramme
			return m, tea.Batch(m.fetchScheduleCmd(m.programmeDate), m.spinner.Tick), true
		}
	case "t":
		if m.state == stateSessionPicker && m.event.TrailerLink != "" {
			return m, openURLCmd(m.event.TrailerLink), true
		}
	case "c":
		if m.state == stateSessionPicker {
			if effective, ok := m.selection.EffectiveSession(m.activeSessions()); ok {
				m.confirmed = effective
				m.state = stateSessionConfirmed
			}
			return m, nil, true
		}
	case "left", "right", "up", "down":
		if m.state == stateSessionPicker {
			return m.movePickerCursor(msg.String()), nil, true
		}
	}

	if msg.String() == "ctrl+d" && (m.state == stateProgramme || m.state == stateBrowseEvents) {
		m.openDatePicker(m.state)
		return m, nil, true
	}
	if msg.String() == "ctrl+d" && m.state == stateError && m.errorSuggestNextDay {
		m.openDatePicker(stateProgramme)
		return m, nil, true
	}

	if msg.Type == tea.KeyEnter {
		if m.state == stateError && m.errorSuggestNextDay {
			return m.advanceToNextDayFromError()
		}
		switch m.state {
		case stateBrowseEvents:
			item, ok := m.eventList.SelectedItem().(eventItem)
			if !ok {
				return m, nil, true
			}
			m.state = stateLoadingEventSessions
			return m, tea.Batch(m.fetchEventSessionsCmd(item.event.ID), m.spinner.Tick), true
		case stateSelectGenre:
			item, ok := m.genreList.SelectedItem().(genreItem)
			if !ok {
				return m, nil, true
			}
			m.genreFilter = item.genre
			m.state = stateLoadingEvents
			return m, tea.Batch(m.fetchListingCmd(m.typeFilter, m.genreFilter), m.spinner.Tick), true
		case stateSessionPicker:
			sessions := m.activeSessions()
			if m.sessionCursor < 0 || m.sessionCursor >= len(sessions) {
				return m, nil, true
			}
			picked := sessions[m.sessionCursor]
			if picked.SoldOut() {
				return m, nil, true
			}
			m.selection = m.selection.WithSession(picked.ID, sessions)
			return m, nil, true
		case stateProgramme:
			item, ok := m.programmeList.SelectedItem().(programmeItem)
			if !ok {
				return m, nil, true
			}
			m.state = stateLoadingEventSessions
			return m, tea.Batch(m.fetchEventSessionsCmd(item.entry.Event.ID), m.spinner.Tick), true
		case stateSelectDate:
			item, ok := m.dateList.SelectedItem().(dateItem)
			if !ok {
				return m, nil, true
			}
			m.programmeDate = item.option.Value
			m.dateReturnStateSet = false
			m.state = stateLoadingProgramme
			return m, tea.Batch(m.fetchScheduleCmd(m.programmeDate), m.spinner.Tick), true
		}
	}
	return m, nil, false
}

// movePickerCursor moves across sessions with left/right and across dates
// with up/down. A date change clears the stored session pick.
func (m appModel) movePickerCursor(key string) appModel {
	switch key {
	case "left":
		if m.sessionCursor > 0 {
			m.sessionCursor--
		}
	case "right":
		if m.sessionCursor < len(m.activeSessions())-1 {
			m.sessionCursor++
		}
	case "up", "down":
		index := m.activeDateIndex()
		if key == "up" {
			index--
		} else {
			index++
		}
		if index < 0 || index >= len(m.dateKeys) {
			return m
		}
		m.selection = m.selection.WithDate(m.dateKeys[index])
		m.sessionCursor = m.effectiveIndex()
	}
	return m
}

func (m appModel) activeSessions() []model.Session {
	return m.buckets[m.selection.ActiveDateKey]
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func (m appModel) activeDateIndex() int {
	for i, key := range m.dateKeys {
		if key == m.selection.ActiveDateKey {
			return i
		}
	}
	return 0
}

// effectiveIndex locates the effective session in the active bucket so
// the cursor lands on what the view highlights.
func (m appModel) effectiveIndex() int {
	sessions := m.activeSessions()
	effective, ok := m.selection.EffectiveSession(sessions)
	if !ok {
		return 0
	}
	for i, session := range sessions {
		if session.ID == effective.ID {
			return i
		}
	}
	return 0
}

func (m appModel) goBack() (appModel, tea.Cmd) {
	switch m.state {
	case stateSelectGenre:
		m.state = stateBrowseEvents
	case stateSessionPicker:
		m.state = stateBrowseEvents
	case stateSessionConfirmed:
		m.state = stateSessionPicker
	case stateProgramme:
		m.state = stateBrowseEvents
	case stateHome:
		m.state = stateBrowseEvents
	case stateSelectDate:
		if m.dateReturnStateSet {
			m.state = m.dateReturnState
			m.dateReturnStateSet = false
		} else {
			m.state = stateProgramme
		}
	case stateError:
		m.state = m.lastState
		m.errorSuggestNextDay = false
	default:
		return m, nil
	}
	if m.state == stateBrowseEvents && len(m.eventList.Items()) == 0 {
		m.state = stateLoadingEvents
		return m, tea.Batch(m.fetchListingCmd(m.typeFilter, m.genreFilter), m.spinner.Tick)
	}
	return m, nil
}

func (m appModel) advanceToNextDayFromError() (appModel, tea.Cmd, bool) {
	m.programmeDate = m.nextProgrammeDate()
	m.state = stateLoadingProgramme
	m.errorSuggestNextDay = false
	return m, tea.Batch(m.fetchScheduleCmd(m.programmeDate), m.spinner.Tick), true
}

func (m appModel) nextProgrammeDate() string {
	date, ok := schedule.ParseDateKey(m.programmeDate)
	if !ok {
		date = schedule.Truncate(time.Now())
	}
	return schedule.DateKey(date.AddDate(0, 0, 1))
}

func (m *appModel) openDatePicker(returnState appState) {
	m.dateReturnState = returnState
	m.dateReturnStateSet = true
	m.state = stateSelectDate
	options := schedule.BuildDateOptions(time.Now(), programmeWindowDays, m.programmeDate)
	m.dateList.SetItems(buildDateItems(options))
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	current := listPtr.FilterValue()
	listPtr.SetFilterText(current + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := listPtr.FilterValue()
	if value == "" {
		return
	}
	value = trimLastRune(value)
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateBrowseEvents:
		return &m.eventList
	case stateSelectGenre:
		return &m.genreList
	case stateProgramme:
		return &m.programmeList
	default:
		return nil
	}
}

func (m appModel) isLoadingState() bool {
	return m.state == stateLoadingEvents ||
		m.state == stateLoadingEventSessions ||
		m.state == stateLoadingProgramme ||
		m.state == stateLoadingHome
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.eventList.SetSize(m.width, h)
	m.genreList.SetSize(m.width, h)
	m.programmeList.SetSize(m.width, h)
	m.dateList.SetSize(m.width, h)
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err}
	}
}

func errWithOptionsCmd(err error, returnState appState, suggestNextDay bool) tea.Cmd {
	return func() tea.Msg {
		return errMsg{
			err:            err,
			returnState:    returnState,
			returnStateSet: true,
			suggestNextDay: suggestNextDay,
		}
	}
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateLoadingEvents, stateLoadingEventSessions, stateLoadingProgramme, stateLoadingHome:
		return stateBrowseEvents
	default:
		return state
	}
}

// nextTypeFilter toggles films <-> spectacles. The listing always queries
// one of the two types, films being the default.
func nextTypeFilter(current string) string {
	if current == "movie" {
		return "show"
	}
	return "movie"
}

func openURLCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := openURL(url); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func openURL(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return fmt.Errorf("unsupported OS for opening browser: %s", runtime.GOOS)
	}
}

func (m appModel) fetchListingCmd(showType string, genre string) tea.Cmd {
	return func() tea.Msg {
		if cached, fresh, err := store.LoadListingCache(showType, genre); err == nil && fresh && len(cached.Events) > 0 {
			return listingMsg{listing: cached}
		}
		ctx := context.Background()
		listing := m.client.EventsWithALaffiche(ctx, service.EventsQuery{Type: showType, Genre: genre})
		if len(listing.Events) > 0 {
			_ = store.SaveListingCache(showType, genre, listing)
		}
		return listingMsg{listing: listing}
	}
}

func (m appModel) fetchHomeCmd() tea.Cmd {
	return func() tea.Msg {
		if cached, fresh, err := store.LoadHomeCache(); err == nil && fresh && len(cached.NowShowing) > 0 {
			return homeMsg{home: cached}
		}
		ctx := context.Background()
		home := m.client.Home(ctx, time.Now())
		if len(home.NowShowing) > 0 || len(home.Upcoming) > 0 {
			_ = store.SaveHomeCache(home)
		}
		return homeMsg{home: home}
	}
}

func (m appModel) fetchEventSessionsCmd(eventID string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		event, sessions, found := m.client.EventSessions(ctx, eventID)
		return eventSessionsMsg{event: event, sessions: sessions, found: found}
	}
}

func (m appModel) fetchScheduleCmd(dateKey string) tea.Cmd {
	return func() tea.Msg {
		if cached, fresh, err := store.LoadScheduleCache(dateKey); err == nil && fresh && len(cached.Events) > 0 {
			return scheduleMsg{day: cached}
		}
		ctx := context.Background()
		day := m.client.SessionsByDate(ctx, dateKey)
		if len(day.Events) > 0 {
			_ = store.SaveScheduleCache(dateKey, day)
		}
		return scheduleMsg{day: day}
	}
}
