package entity

import (
	"github.com/google/uuid"
)

// Review ties one user's rating and comment to one TMDb film.
// MovieID is the TMDb id, not a local catalog key.
type Review struct {
	BaseSimple
	UserID  uuid.UUID `db:"user_id"`
	MovieID int64     `db:"movie_id"`
	Rating  int       `db:"rating"` // 1-5
	Comment string    `db:"comment"`
}
