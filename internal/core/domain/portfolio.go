package domain

import "time"

// PortfolioItem is a single public-facing project entry.
type PortfolioItem struct {
	ID               int64     `json:"id" bson:"_id"`
	Title            string    `json:"title" bson:"title"`
	Description      string    `json:"description" bson:"description"`
	ShortDescription *string   `json:"shortDescription" bson:"short_description,omitempty"`
	ImageURL         *string   `json:"imageUrl" bson:"image_url,omitempty"`
	Technologies     []string  `json:"technologies" bson:"technologies"`
	ProjectURL       *string   `json:"projectUrl" bson:"project_url,omitempty"`
	GithubURL        *string   `json:"githubUrl" bson:"github_url,omitempty"`
	Content          *string   `json:"content" bson:"content,omitempty"`
	Featured         bool      `json:"featured" bson:"featured"`
	CreatedAt        time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" bson:"updated_at"`
}
