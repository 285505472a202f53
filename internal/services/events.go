package services

const (
	EventProgramCreated  = "program.created"
	EventProgramUpdated  = "program.updated"
	EventProgramDeleted  = "program.deleted"
	EventMemberCreated   = "member.created"
	EventMemberUpdated   = "member.updated"
	EventMemberDeleted   = "member.deleted"
	EventProgramAssigned = "member.program_assigned"
)

// EventPublisher receives a notification after each committed change.
// Publish must not block the caller.
type EventPublisher interface {
	Publish(eventType, id string, payload any)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, string, any) {}
