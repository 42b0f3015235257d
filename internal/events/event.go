package events

import (
	"context"
	"time"
)

// Type names a side-effect event.
type Type string

const (
	TypeInvitationSent Type = "invitation.sent"
	TypeMemberAdded    Type = "member.added"
)

// Event is a side effect requested by a completed core operation. It is a flat
// record so it can travel unchanged through a Redis stream.
type Event struct {
	Type          Type      `json:"type"`
	WorkspaceID   int64     `json:"workspaceID"`
	WorkspaceName string    `json:"workspaceName"`
	ActorID       int64     `json:"actorID"`
	ActorName     string    `json:"actorName"`
	RecipientID   *int64    `json:"recipientID,omitempty"`
	Email         string    `json:"email,omitempty"`
	InvitationID  int64     `json:"invitationID,omitempty"`
	Token         string    `json:"token,omitempty"`
	Role          string    `json:"role,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// Handler performs the side effect for an event.
type Handler interface {
	Handle(ctx context.Context, evt Event) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, evt Event) error

// Handle calls f(ctx, evt).
func (f HandlerFunc) Handle(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

// Dispatcher hands events off for execution after the caller has returned.
// Dispatch never reports failure to the caller; implementations log instead.
type Dispatcher interface {
	Dispatch(ctx context.Context, evt Event)
}
