package repository

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/database"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/models"
)

type GymProgramRepository struct {
	db Store
}

func NewGymProgramRepository(db Store) *GymProgramRepository {
	return &GymProgramRepository{db: db}
}

// List returns copies of every program ordered by id, which is creation order.
func (r *GymProgramRepository) List(ctx context.Context) ([]models.GymProgram, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var programs []models.GymProgram
	r.db.View(func(doc *database.Document) {
		programs = make([]models.GymProgram, 0, len(doc.Programs))
		for _, program := range sortedPrograms(doc) {
			programs = append(programs, *program)
		}
	})
	return programs, nil
}

func (r *GymProgramRepository) GetByID(ctx context.Context, id string) (*models.GymProgram, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var found *models.GymProgram
	r.db.View(func(doc *database.Document) {
		if program, ok := doc.Programs[id]; ok {
			cp := *program
			found = &cp
		}
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// NameTaken reports whether any stored program has name, ignoring case.
func (r *GymProgramRepository) NameTaken(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var taken bool
	r.db.View(func(doc *database.Document) {
		taken = findByName(doc, name) != nil
	})
	return taken, nil
}

// Insert stores program and persists. The name uniqueness check is repeated
// under the write lock so two concurrent creates cannot both succeed.
func (r *GymProgramRepository) Insert(ctx context.Context, program models.GymProgram) (*models.GymProgram, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stored := program
	err := r.db.Update(func(doc *database.Document) error {
		if findByName(doc, stored.Name) != nil {
			return ErrDuplicateName
		}
		cp := stored
		doc.Programs[stored.ID] = &cp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// Update applies fn to a copy of the stored program with the given id and
// persists it. A rename onto another program's name is rejected with
// ErrDuplicateName and leaves the record unchanged.
func (r *GymProgramRepository) Update(
	ctx context.Context,
	id string,
	fn func(program *models.GymProgram),
) (*models.GymProgram, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var updated models.GymProgram
	err := r.db.Update(func(doc *database.Document) error {
		program, ok := doc.Programs[id]
		if !ok {
			return ErrNotFound
		}
		candidate := *program
		fn(&candidate)
		candidate.ID = id
		if existing := findByName(doc, candidate.Name); existing != nil && existing.ID != id {
			return ErrDuplicateName
		}
		*program = candidate
		updated = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveByName deletes the first program, in id order, whose name matches
// ignoring case, unlinks it from members and persists.
func (r *GymProgramRepository) RemoveByName(ctx context.Context, name string) (*models.GymProgram, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var removed models.GymProgram
	err := r.db.Update(func(doc *database.Document) error {
		program := findByName(doc, name)
		if program == nil {
			return ErrNotFound
		}
		removed = *program
		delete(doc.Programs, program.ID)
		for _, member := range doc.Members {
			member.GymPrograms = slices.DeleteFunc(member.GymPrograms, func(id string) bool {
				return id == removed.ID
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

func findByName(doc *database.Document, name string) *models.GymProgram {
	target := strings.ToLower(name)
	for _, program := range sortedPrograms(doc) {
		if strings.ToLower(program.Name) == target {
			return program
		}
	}
	return nil
}

func sortedPrograms(doc *database.Document) []*models.GymProgram {
	programs := make([]*models.GymProgram, 0, len(doc.Programs))
	for _, program := range doc.Programs {
		programs = append(programs, program)
	}
	sort.Slice(programs, func(i, j int) bool {
		return idLess(programs[i].ID, programs[j].ID)
	})
	return programs
}

// idLess orders decimal ids numerically; shorter strings are smaller numbers.
func idLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
