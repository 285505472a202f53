package services

import (
	"context"
	"errors"
	"strings"

	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/idgen"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/models"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/repository"
	"go.uber.org/zap"
)

var ErrInvalidInput = errors.New("invalid input")

// ValidationError carries every rule a submitted record violated.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

type gymProgramStore interface {
	List(ctx context.Context) ([]models.GymProgram, error)
	GetByID(ctx context.Context, id string) (*models.GymProgram, error)
	NameTaken(ctx context.Context, name string) (bool, error)
	Insert(ctx context.Context, program models.GymProgram) (*models.GymProgram, error)
	Update(ctx context.Context, id string, fn func(program *models.GymProgram)) (*models.GymProgram, error)
	RemoveByName(ctx context.Context, name string) (*models.GymProgram, error)
}

type ProgramService struct {
	programRepo gymProgramStore
	ids         idgen.Generator
	events      EventPublisher
	logger      *zap.Logger
}

// ProgramPatch holds the fields an update replaces; nil fields are kept.
type ProgramPatch struct {
	Name           *string
	FocusBodyPart  *string
	Intensity      *string
	Difficulty     *string
	TargetAudience *string
	Reps           *int
	IsActive       *bool
}

func NewProgramService(
	programRepo *repository.GymProgramRepository,
	ids idgen.Generator,
	logger *zap.Logger,
) *ProgramService {
	return newProgramService(programRepo, ids, logger)
}

func newProgramService(programRepo gymProgramStore, ids idgen.Generator, logger *zap.Logger) *ProgramService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgramService{
		programRepo: programRepo,
		ids:         ids,
		events:      nopPublisher{},
		logger:      logger,
	}
}

// WithEvents routes change notifications to events.
func (s *ProgramService) WithEvents(events EventPublisher) *ProgramService {
	if events != nil {
		s.events = events
	}
	return s
}

func (s *ProgramService) CreateProgram(ctx context.Context, input ProgramFields) (*models.GymProgram, error) {
	fields := NormalizeProgramFields(input)

	var lookupErr error
	messages := ValidateProgram(fields, func(name string) bool {
		taken, err := s.programRepo.NameTaken(ctx, name)
		if err != nil {
			lookupErr = err
		}
		return taken
	})
	if lookupErr != nil {
		return nil, lookupErr
	}
	if len(messages) > 0 {
		s.logger.Info("rejected program", zap.String("name", fields.Name), zap.Strings("errors", messages))
		return nil, &ValidationError{Messages: messages}
	}

	program, err := s.programRepo.Insert(ctx, models.GymProgram{
		ID:             s.ids.Generate(),
		Name:           fields.Name,
		FocusBodyPart:  fields.FocusBodyPart,
		Intensity:      fields.Intensity,
		Difficulty:     fields.Difficulty,
		TargetAudience: fields.TargetAudience,
		Reps:           *fields.Reps,
		IsActive:       *fields.IsActive,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, &ValidationError{Messages: []string{MsgDuplicateName}}
		}
		return nil, err
	}

	s.logger.Info("program created", zap.String("id", program.ID), zap.String("name", strings.ToUpper(program.Name)))
	s.events.Publish(EventProgramCreated, program.ID, *program)
	return program, nil
}

func (s *ProgramService) ListPrograms(ctx context.Context) ([]models.GymProgram, error) {
	return s.programRepo.List(ctx)
}

func (s *ProgramService) GetProgram(ctx context.Context, id string) (*models.GymProgram, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, repository.ErrNotFound
	}
	return s.programRepo.GetByID(ctx, id)
}

// UpdateProgram replaces the provided fields. The creation rules are not
// re-applied; only name uniqueness is enforced by the repository.
func (s *ProgramService) UpdateProgram(ctx context.Context, id string, patch ProgramPatch) (*models.GymProgram, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, repository.ErrNotFound
	}

	program, err := s.programRepo.Update(ctx, id, func(p *models.GymProgram) {
		applyProgramPatch(p, patch)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, &ValidationError{Messages: []string{MsgDuplicateName}}
		}
		return nil, err
	}

	s.logger.Info("program updated", zap.String("id", program.ID))
	s.events.Publish(EventProgramUpdated, program.ID, *program)
	return program, nil
}

func (s *ProgramService) DeleteProgramByName(ctx context.Context, name string) (*models.GymProgram, error) {
	if name == "" {
		return nil, ErrInvalidInput
	}

	program, err := s.programRepo.RemoveByName(ctx, strings.ToLower(name))
	if err != nil {
		return nil, err
	}

	s.logger.Info("program deleted", zap.String("id", program.ID), zap.String("name", program.Name))
	s.events.Publish(EventProgramDeleted, program.ID, nil)
	return program, nil
}

func applyProgramPatch(p *models.GymProgram, patch ProgramPatch) {
	if patch.Name != nil {
		p.Name = strings.ToLower(*patch.Name)
	}
	if patch.FocusBodyPart != nil {
		p.FocusBodyPart = strings.ToLower(*patch.FocusBodyPart)
	}
	if patch.Intensity != nil {
		p.Intensity = strings.ToLower(*patch.Intensity)
	}
	if patch.Difficulty != nil {
		p.Difficulty = strings.ToLower(*patch.Difficulty)
	}
	if patch.TargetAudience != nil {
		p.TargetAudience = strings.ToLower(*patch.TargetAudience)
	}
	if patch.Reps != nil {
		p.Reps = *patch.Reps
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
}
