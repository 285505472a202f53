package services

import (
	"context"
	"net/mail"
	"strings"

	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/idgen"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/models"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/repository"
	"go.uber.org/zap"
)

const (
	MsgMemberNameRequired = "Name is required and should be a string."
	MsgMemberEmailInvalid = "Email must be a valid email address."
)

type memberStore interface {
	List(ctx context.Context) ([]models.Member, error)
	GetByID(ctx context.Context, id string) (*models.Member, error)
	Insert(ctx context.Context, member models.Member) (*models.Member, error)
	Update(ctx context.Context, id string, fn func(member *models.Member)) (*models.Member, error)
	Delete(ctx context.Context, id string) error
	AssignProgram(ctx context.Context, memberID, programID string) (*models.Member, error)
}

type MemberService struct {
	memberRepo memberStore
	ids        idgen.Generator
	events     EventPublisher
	logger     *zap.Logger
}

type MemberInput struct {
	Name  *string
	Email *string
}

func NewMemberService(
	memberRepo *repository.MemberRepository,
	ids idgen.Generator,
	logger *zap.Logger,
) *MemberService {
	return newMemberService(memberRepo, ids, logger)
}

func newMemberService(memberRepo memberStore, ids idgen.Generator, logger *zap.Logger) *MemberService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemberService{memberRepo: memberRepo, ids: ids, events: nopPublisher{}, logger: logger}
}

// WithEvents routes change notifications to events.
func (s *MemberService) WithEvents(events EventPublisher) *MemberService {
	if events != nil {
		s.events = events
	}
	return s
}

func (s *MemberService) CreateMember(ctx context.Context, input MemberInput) (*models.Member, error) {
	var messages []string

	name := ""
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
	}
	if name == "" {
		messages = append(messages, MsgMemberNameRequired)
	}

	email, ok := parseEmail(input.Email)
	if !ok {
		messages = append(messages, MsgMemberEmailInvalid)
	}

	if len(messages) > 0 {
		return nil, &ValidationError{Messages: messages}
	}

	member, err := s.memberRepo.Insert(ctx, models.Member{
		ID:          s.ids.Generate(),
		Name:        name,
		AdminNumber: email,
		GymPrograms: []string{},
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("member created", zap.String("id", member.ID))
	s.events.Publish(EventMemberCreated, member.ID, *member)
	return member, nil
}

func (s *MemberService) ListMembers(ctx context.Context) ([]models.Member, error) {
	return s.memberRepo.List(ctx)
}

func (s *MemberService) GetMember(ctx context.Context, id string) (*models.Member, error) {
	return s.memberRepo.GetByID(ctx, strings.TrimSpace(id))
}

// UpdateMember replaces the name and/or email when present.
func (s *MemberService) UpdateMember(ctx context.Context, id string, input MemberInput) (*models.Member, error) {
	var messages []string

	var name string
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
		if name == "" {
			messages = append(messages, MsgMemberNameRequired)
		}
	}

	var email string
	if input.Email != nil {
		parsed, ok := parseEmail(input.Email)
		if !ok {
			messages = append(messages, MsgMemberEmailInvalid)
		}
		email = parsed
	}

	if len(messages) > 0 {
		return nil, &ValidationError{Messages: messages}
	}

	member, err := s.memberRepo.Update(ctx, strings.TrimSpace(id), func(m *models.Member) {
		if input.Name != nil {
			m.Name = name
		}
		if input.Email != nil {
			m.AdminNumber = email
		}
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(EventMemberUpdated, member.ID, *member)
	return member, nil
}

func (s *MemberService) DeleteMember(ctx context.Context, id string) error {
	if err := s.memberRepo.Delete(ctx, strings.TrimSpace(id)); err != nil {
		return err
	}
	s.logger.Info("member deleted", zap.String("id", id))
	s.events.Publish(EventMemberDeleted, strings.TrimSpace(id), nil)
	return nil
}

func (s *MemberService) AssignProgram(ctx context.Context, memberID, programID string) (*models.Member, error) {
	member, err := s.memberRepo.AssignProgram(ctx, strings.TrimSpace(memberID), strings.TrimSpace(programID))
	if err != nil {
		return nil, err
	}

	s.events.Publish(EventProgramAssigned, member.ID, *member)
	return member, nil
}

func parseEmail(raw *string) (string, bool) {
	if raw == nil {
		return "", false
	}
	parsed, err := mail.ParseAddress(strings.TrimSpace(*raw))
	if err != nil {
		return "", false
	}
	return strings.ToLower(parsed.Address), true
}
