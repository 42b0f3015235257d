package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	portssvc "github.com/SscSPs/survey_workspace_app/internal/core/ports/services"
	"github.com/SscSPs/survey_workspace_app/internal/events"
	"github.com/SscSPs/survey_workspace_app/internal/mailer"
)

// sideEffectHandler performs the email and notification work behind dispatched events.
type sideEffectHandler struct {
	BaseService
	mailer        mailer.Mailer
	notifications portssvc.NotificationSinkSvc
	frontendURL   string
}

// NewSideEffectHandler creates the handler the dispatchers and the stream worker run.
func NewSideEffectHandler(m mailer.Mailer, notifications portssvc.NotificationSinkSvc, frontendURL string) events.Handler {
	return &sideEffectHandler{
		mailer:        m,
		notifications: notifications,
		frontendURL:   frontendURL,
	}
}

var _ events.Handler = (*sideEffectHandler)(nil)

// Handle routes evt to its side effects. Independent effects all run; their errors are joined.
func (h *sideEffectHandler) Handle(ctx context.Context, evt events.Event) error {
	switch evt.Type {
	case events.TypeInvitationSent:
		return h.invitationSent(ctx, evt)
	case events.TypeMemberAdded:
		return h.memberAdded(ctx, evt)
	default:
		h.LogWarn(ctx, "Ignoring unknown event", slog.String("event_type", string(evt.Type)))
		return nil
	}
}

func (h *sideEffectHandler) invitationSent(ctx context.Context, evt events.Event) error {
	var errs []error

	err := h.mailer.SendWorkspaceInvitation(ctx, mailer.InvitationEmail{
		To:            evt.Email,
		InviterName:   evt.ActorName,
		WorkspaceName: evt.WorkspaceName,
		Token:         evt.Token,
		FrontendURL:   h.frontendURL,
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("sending invitation email: %w", err))
	}

	if evt.RecipientID != nil {
		err := h.notifications.NotifyWorkspaceInvitation(ctx, *evt.RecipientID, evt.WorkspaceID, evt.ActorID, invitationMessage(evt.WorkspaceName), evt.Token)
		if err != nil {
			errs = append(errs, fmt.Errorf("recording invitation notification: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (h *sideEffectHandler) memberAdded(ctx context.Context, evt events.Event) error {
	if evt.RecipientID == nil {
		return nil
	}
	err := h.notifications.NotifyMemberAdded(ctx, *evt.RecipientID, evt.WorkspaceID, memberAddedMessage(evt.ActorName, evt.WorkspaceName))
	if err != nil {
		return fmt.Errorf("recording member added notification: %w", err)
	}
	return nil
}
