package model

// HeroSlide is one entry of the home carousel.
type HeroSlide struct {
	ID             string `json:"id"`
	TitleLead      string `json:"titleLead"`
	TitleHighlight string `json:"titleHighlight"`
	Subtitle       string `json:"subtitle"`
	Image          string `json:"image"`
	ImageAlt       string `json:"imageAlt"`
	EventID        string `json:"eventId"`
}

// NowShowingCard is a compact à-l'affiche card on the home view.
type NowShowingCard struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Meta     string `json:"meta"`
	Badge    string `json:"badge"`
	Image    string `json:"image"`
	ImageAlt string `json:"imageAlt"`
}

// SpectacleCard is a live-show card on the home view.
type SpectacleCard struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Genre    string `json:"genre"`
	Meta     string `json:"meta"`
	Image    string `json:"image"`
	ImageAlt string `json:"imageAlt"`
}

// UpcomingCard is a prochainement teaser on the home view.
type UpcomingCard struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ImageAlt    string `json:"imageAlt"`
}

// HomeData is the normalized home payload.
type HomeData struct {
	HeroSlides []HeroSlide      `json:"heroSlides"`
	NowShowing []NowShowingCard `json:"nowShowing"`
	Spectacles []SpectacleCard  `json:"spectacles"`
	Upcoming   []UpcomingCard   `json:"upcoming"`
}
