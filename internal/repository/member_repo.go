package repository

import (
	"context"
	"slices"
	"sort"

	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/database"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/models"
)

type MemberRepository struct {
	db Store
}

func NewMemberRepository(db Store) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) List(ctx context.Context) ([]models.Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var members []models.Member
	r.db.View(func(doc *database.Document) {
		ids := make([]string, 0, len(doc.Members))
		for id := range doc.Members {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return idLess(ids[i], ids[j]) })

		members = make([]models.Member, 0, len(ids))
		for _, id := range ids {
			members = append(members, copyMember(doc.Members[id]))
		}
	})
	return members, nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id string) (*models.Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var found *models.Member
	r.db.View(func(doc *database.Document) {
		if member, ok := doc.Members[id]; ok {
			cp := copyMember(member)
			found = &cp
		}
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (r *MemberRepository) Insert(ctx context.Context, member models.Member) (*models.Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stored := copyMember(&member)
	err := r.db.Update(func(doc *database.Document) error {
		cp := copyMember(&stored)
		doc.Members[stored.ID] = &cp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *MemberRepository) Update(
	ctx context.Context,
	id string,
	fn func(member *models.Member),
) (*models.Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var updated models.Member
	err := r.db.Update(func(doc *database.Document) error {
		member, ok := doc.Members[id]
		if !ok {
			return ErrNotFound
		}
		fn(member)
		member.ID = id
		updated = copyMember(member)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(doc *database.Document) error {
		if _, ok := doc.Members[id]; !ok {
			return ErrNotFound
		}
		delete(doc.Members, id)
		return nil
	})
}

// AssignProgram links an existing program to a member.
func (r *MemberRepository) AssignProgram(ctx context.Context, memberID, programID string) (*models.Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var updated models.Member
	err := r.db.Update(func(doc *database.Document) error {
		member, ok := doc.Members[memberID]
		if !ok {
			return ErrNotFound
		}
		if _, ok := doc.Programs[programID]; !ok {
			return ErrNotFound
		}
		if slices.Contains(member.GymPrograms, programID) {
			return ErrAlreadyLinked
		}
		member.GymPrograms = append(member.GymPrograms, programID)
		updated = copyMember(member)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func copyMember(member *models.Member) models.Member {
	cp := *member
	cp.GymPrograms = append([]string{}, member.GymPrograms...)
	return cp
}
