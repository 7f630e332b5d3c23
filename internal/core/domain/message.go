package domain

import "time"

// ContactMessage is a submission of the public contact form.
// Read only ever moves from false to true, via the mark-as-read operation.
type ContactMessage struct {
	ID             int64     `json:"id" bson:"_id"`
	Name           string    `json:"name" bson:"name"`
	Email          string    `json:"email" bson:"email"`
	Message        string    `json:"message" bson:"message"`
	AttachmentURL  *string   `json:"attachmentUrl" bson:"attachment_url,omitempty"`
	AttachmentName *string   `json:"attachmentName" bson:"attachment_name,omitempty"`
	Read           bool      `json:"read" bson:"read"`
	CreatedAt      time.Time `json:"createdAt" bson:"created_at"`
}
