package domain

import (
	"time"

	userdomain "github.com/AlibekovAA/postboard/internal/user/domain"
)

type ID string

type Post struct {
	ID        ID
	AuthorID  userdomain.ID
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Page is one slice of the post listing plus the full count.
type Page struct {
	Posts []Post
	Total int
}
