package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"seance-finder-cli/model"
	"seance-finder-cli/schedule"
)

const (
	newBadgeWindow  = 7 * 24 * time.Hour
	maxNowShowing   = 5
	maxUpcoming     = 2
	fallbackSlideID = "fallback"
)

// Home fetches and normalizes the home page payload. now drives the
// Nouveau badge and the upcoming date labels. Failures are logged and
// yield the static fallback hero with empty strips.
func (c *Client) Home(ctx context.Context, now time.Time) model.HomeData {
	endpoint := fmt.Sprintf("%s/events/home", c.baseURL)

	var payload model.HomePayload
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		log.Printf("home unavailable: %v", err)
		return model.HomeData{HeroSlides: []model.HeroSlide{fallbackSlide()}}
	}
	return normalizeHome(payload, now)
}

func normalizeHome(payload model.HomePayload, now time.Time) model.HomeData {
	data := model.HomeData{}

	slides := make([]model.RawSlide, 0, len(payload.HomeSlider))
	for _, slide := range payload.HomeSlider {
		if slide.Active != nil && !*slide.Active {
			continue
		}
		slides = append(slides, slide)
	}
	sort.SliceStable(slides, func(i, j int) bool {
		return slideOrder(slides[i]) < slideOrder(slides[j])
	})
	for _, slide := range slides {
		image := slide.Poster
		if image == "" {
			image = schedule.FallbackPoster
		}
		lead, highlight := splitHeroTitle(slide.Title)
		data.HeroSlides = append(data.HeroSlides, model.HeroSlide{
			ID:             slide.MongoID,
			TitleLead:      lead,
			TitleHighlight: highlight,
			Subtitle:       slide.Subtitle,
			Image:          image,
			ImageAlt:       slide.Title,
			EventID:        slide.EventID,
		})
	}
	if len(data.HeroSlides) == 0 {
		data.HeroSlides = []model.HeroSlide{fallbackSlide()}
	}

	for _, raw := range payload.ALaffiche {
		if len(data.NowShowing) == maxNowShowing {
			break
		}
		event, ok := schedule.NormalizeEvent(raw)
		if !ok {
			continue
		}
		badge := ""
		if isRecent(raw, now) {
			badge = "Nouveau"
		}
		data.NowShowing = append(data.NowShowing, model.NowShowingCard{
			ID:       event.ID,
			Title:    event.Title,
			Meta:     cardMeta(event),
			Badge:    badge,
			Image:    event.Poster,
			ImageAlt: event.Title,
		})
	}

	for _, raw := range payload.Spectacles {
		event, ok := schedule.NormalizeEvent(raw)
		if !ok {
			continue
		}
		data.Spectacles = append(data.Spectacles, model.SpectacleCard{
			ID:       event.ID,
			Title:    event.Title,
			Genre:    event.GenresLabel,
			Meta:     event.DurationLabel,
			Image:    event.Poster,
			ImageAlt: event.Title,
		})
	}

	for _, raw := range payload.Prochainement {
		if len(data.Upcoming) == maxUpcoming {
			break
		}
		event, ok := schedule.NormalizeEvent(raw)
		if !ok {
			continue
		}
		data.Upcoming = append(data.Upcoming, model.UpcomingCard{
			ID:          event.ID,
			Title:       event.Title,
			Date:        upcomingLabel(raw),
			Description: event.Description,
			Image:       event.Poster,
			ImageAlt:    event.Title,
		})
	}
	return data
}

func fallbackSlide() model.HeroSlide {
	return model.HeroSlide{
		ID:             fallbackSlideID,
		TitleLead:      "Vivez le cinéma",
		TitleHighlight: "en grand",
		Subtitle:       "Films, spectacles et avant-premières près de chez vous.",
		Image:          schedule.FallbackPoster,
		ImageAlt:       "Vivez le cinéma en grand",
	}
}

func slideOrder(slide model.RawSlide) int {
	if slide.Order == nil {
		return 0
	}
	return *slide.Order
}

// splitHeroTitle splits a slide title so the last word can be rendered
// highlighted. Single-word titles highlight the whole title.
func splitHeroTitle(title string) (string, string) {
	words := strings.Fields(title)
	if len(words) < 2 {
		return "", title
	}
	return strings.Join(words[:len(words)-1], " "), words[len(words)-1]
}

// isRecent reports whether the event was added within the badge window.
func isRecent(raw model.RawEvent, now time.Time) bool {
	for _, stamp := range []string{raw.CreatedAt, raw.ReleaseDate} {
		if when, ok := parseDayStamp(stamp); ok {
			return now.Sub(when) <= newBadgeWindow && !when.After(now)
		}
	}
	return false
}

// upcomingLabel renders the release date as "Le 03 Septembre"; events
// without a parseable date fall back to a generic teaser.
func upcomingLabel(raw model.RawEvent) string {
	for _, stamp := range []string{raw.AvailableFrom, raw.ReleaseDate} {
		if when, ok := parseDayStamp(stamp); ok {
			return "Le " + schedule.FormatLongDate(when)
		}
	}
	return "Prochainement"
}

// parseDayStamp reads the date portion of an upstream timestamp.
func parseDayStamp(value string) (time.Time, bool) {
	if len(value) > 10 {
		value = value[:10]
	}
	return schedule.ParseDateKey(value)
}

func cardMeta(event model.Event) string {
	parts := make([]string, 0, 2)
	if event.DurationLabel != "" {
		parts = append(parts, event.DurationLabel)
	}
	if event.GenresLabel != "" {
		parts = append(parts, event.GenresLabel)
	}
	return strings.Join(parts, " • ")
}
