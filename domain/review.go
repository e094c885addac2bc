package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is one record of the shared collection. ID and DateTime are assigned
// once by the store on creation and never change afterwards.
type Review struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	DateTime time.Time `json:"dateTime"`
}
