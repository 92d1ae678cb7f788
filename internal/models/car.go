package models

// DefaultColor is used when the registration form leaves color blank.
const DefaultColor = "Slate"

// Car is a vehicle owned by exactly one user.
type Car struct {
	ID             string `json:"id"`
	UserID         string `json:"-"` // ownership partition, never exposed
	Make           string `json:"make"`
	Model          string `json:"model"`
	Year           int    `json:"year"`
	Plate          string `json:"plate,omitempty"`
	CurrentMileage int    `json:"currentMileage"` // raised by ledger saves, never lowered
	Color          string `json:"color"`
}
