package models

import "github.com/google/uuid"

// Category is a predefined product classification. The set of categories is
// seeded by migration and read-only for this service.
type Category struct {
	ID   uuid.UUID
	Name string
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
