package repository

import (
	"errors"

	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/database"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateName = errors.New("duplicate name")
	ErrAlreadyLinked = errors.New("already linked")
)

// Store is the document store the repositories read and mutate.
// *database.JSONDatabase satisfies it.
type Store interface {
	View(fn func(doc *database.Document))
	Update(fn func(doc *database.Document) error) error
}
