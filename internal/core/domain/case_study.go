package domain

import "time"

// CaseStudy is a longer narrative write-up of a project.
type CaseStudy struct {
	ID              int64     `json:"id" bson:"_id"`
	Title           string    `json:"title" bson:"title"`
	Excerpt         string    `json:"excerpt" bson:"excerpt"`
	Content         string    `json:"content" bson:"content"`
	ImageURL        *string   `json:"imageUrl" bson:"image_url,omitempty"`
	Tags            []string  `json:"tags" bson:"tags"`
	ClientName      *string   `json:"clientName" bson:"client_name,omitempty"`
	ProjectDuration *string   `json:"projectDuration" bson:"project_duration,omitempty"`
	Outcome         *string   `json:"outcome" bson:"outcome,omitempty"`
	Featured        bool      `json:"featured" bson:"featured"`
	CreatedAt       time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updated_at"`
}
