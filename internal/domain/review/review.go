package review

import "time"

type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product"`
	UserID    int64     `json:"-"`
	User      string    `json:"user"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	MinRating = 1
	MaxRating = 5
)

func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
