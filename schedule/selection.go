package schedule

import "seance-finder-cli/model"

// Selection tracks which date and session the user has picked while
// browsing an event's showtimes. The zero value selects nothing.
type Selection struct {
	ActiveDateKey     string
	SelectedSessionID string
}

// NewSelection starts on todayKey when it is among the available dates,
// otherwise on the first one, with no session picked.
func NewSelection(dateKeys []string, todayKey string) Selection {
	if len(dateKeys) == 0 {
		return Selection{}
	}
	for _, key := range dateKeys {
		if key == todayKey {
			return Selection{ActiveDateKey: key}
		}
	}
	return Selection{ActiveDateKey: dateKeys[0]}
}

// WithDate switches to another date and clears the session pick; a stale
// session id must never survive a date change.
func (s Selection) WithDate(dateKey string) Selection {
	if dateKey == s.ActiveDateKey {
		return s
	}
	return Selection{ActiveDateKey: dateKey}
}

// WithSession records a session pick, but only if the id belongs to the
// active date's sessions. Unknown ids leave the selection untouched.
func (s Selection) WithSession(id string, sessions []model.Session) Selection {
	for _, session := range sessions {
		if session.ID == id {
			s.SelectedSessionID = id
			return s
		}
	}
	return s
}

// Clamp revalidates the selection against a fresh session list, clearing
// a session id that no longer exists on the active date.
func (s Selection) Clamp(sessions []model.Session) Selection {
	if s.SelectedSessionID == "" {
		return s
	}
	for _, session := range sessions {
		if session.ID == s.SelectedSessionID {
			return s
		}
	}
	s.SelectedSessionID = ""
	return s
}

// EffectiveSession resolves what the view should highlight: the stored
// pick when it is still present, otherwise the first session with seats
// left, otherwise the first session, otherwise nothing.
func (s Selection) EffectiveSession(sessions []model.Session) (model.Session, bool) {
	if len(sessions) == 0 {
		return model.Session{}, false
	}
	if s.SelectedSessionID != "" {
		for _, session := range sessions {
			if session.ID == s.SelectedSessionID {
				return session, true
			}
		}
	}
	for _, session := range sessions {
		if !session.SoldOut() {
			return session, true
		}
	}
	return sessions[0], true
}
