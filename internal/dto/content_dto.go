package dto

import "lilass/internal/model"

// HomeContentResponse backs the storefront landing page.
type HomeContentResponse struct {
	Hero             HeroContent     `json:"hero"`
	Highlights       []Highlight     `json:"highlights"`
	FeaturedProducts []model.Product `json:"featuredProducts"`
}

type HeroContent struct {
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle"`
	CTA      ContentCTA `json:"cta"`
	Image    string     `json:"image"`
}

type ContentCTA struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type Highlight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type PageContentResponse struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
