package memstore

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
)

func (r *repo) FindInvitationByID(ctx context.Context, invitationID int64) (*domain.WorkspaceInvitation, error) {
	defer r.lock()()
	inv, ok := r.db().invitations[invitationID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &inv, nil
}

func (r *repo) FindInvitationByToken(ctx context.Context, token string) (*domain.WorkspaceInvitation, error) {
	defer r.lock()()
	for _, inv := range r.db().invitations {
		if inv.Token == token {
			return &inv, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *repo) FindPendingInvitation(ctx context.Context, workspaceID int64, email string) (*domain.WorkspaceInvitation, error) {
	defer r.lock()()
	if inv, ok := r.pendingFor(workspaceID, email, 0); ok {
		return &inv, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *repo) ListInvitationsByWorkspace(ctx context.Context, workspaceID int64, statuses []domain.InvitationStatus) ([]domain.WorkspaceInvitation, error) {
	defer r.lock()()
	return r.collectInvitations(func(inv domain.WorkspaceInvitation) bool {
		return inv.WorkspaceID == workspaceID && (len(statuses) == 0 || slices.Contains(statuses, inv.Status))
	}), nil
}

func (r *repo) ListPendingInvitationsByEmail(ctx context.Context, email string) ([]domain.WorkspaceInvitation, error) {
	defer r.lock()()
	return r.collectInvitations(func(inv domain.WorkspaceInvitation) bool {
		return inv.Status == domain.InvitationPending && strings.EqualFold(inv.InviteeEmail, email)
	}), nil
}

func (r *repo) SaveInvitation(ctx context.Context, invitation domain.WorkspaceInvitation) error {
	defer r.lock()()
	db := r.db()
	if _, ok := db.workspaces[invitation.WorkspaceID]; !ok {
		return apperrors.ErrWorkspaceNotFound
	}
	for _, inv := range db.invitations {
		if inv.Token == invitation.Token {
			return apperrors.NewConflictError("Invitation token already exists")
		}
	}
	if invitation.Status == domain.InvitationPending {
		if _, ok := r.pendingFor(invitation.WorkspaceID, invitation.InviteeEmail, 0); ok {
			return apperrors.ErrDuplicateInvitation
		}
	}
	invitation.InviteeEmail = strings.ToLower(invitation.InviteeEmail)
	db.invitations[invitation.InvitationID] = invitation
	return nil
}

func (r *repo) TransitionInvitation(ctx context.Context, invitationID int64, from, to domain.InvitationStatus, inviteeID *int64) (bool, error) {
	defer r.lock()()
	inv, ok := r.db().invitations[invitationID]
	if !ok || inv.Status != from {
		return false, nil
	}
	inv.Status = to
	if inviteeID != nil {
		id := *inviteeID
		inv.InviteeID = &id
	}
	inv.UpdatedAt = r.store.now()
	r.db().invitations[invitationID] = inv
	return true, nil
}

func (r *repo) ReissueInvitation(ctx context.Context, invitationID int64, token string, expiresAt, sentAt time.Time) error {
	defer r.lock()()
	db := r.db()
	inv, ok := db.invitations[invitationID]
	if !ok {
		return apperrors.ErrInvitationNotFound
	}
	if !inv.CanReissue() {
		return apperrors.ErrInvitationNotPending
	}
	if _, clash := r.pendingFor(inv.WorkspaceID, inv.InviteeEmail, invitationID); clash {
		return apperrors.ErrDuplicateInvitation
	}
	inv.Token = token
	inv.ExpiresAt = expiresAt
	inv.SentAt = sentAt
	inv.Status = domain.InvitationPending
	inv.UpdatedAt = r.store.now()
	db.invitations[invitationID] = inv
	return nil
}

// pendingFor finds a pending invitation for the pair other than exclude.
func (r *repo) pendingFor(workspaceID int64, email string, exclude int64) (domain.WorkspaceInvitation, bool) {
	for _, inv := range r.db().invitations {
		if inv.InvitationID != exclude && inv.WorkspaceID == workspaceID &&
			inv.Status == domain.InvitationPending && strings.EqualFold(inv.InviteeEmail, email) {
			return inv, true
		}
	}
	return domain.WorkspaceInvitation{}, false
}

func (r *repo) collectInvitations(keep func(domain.WorkspaceInvitation) bool) []domain.WorkspaceInvitation {
	out := make([]domain.WorkspaceInvitation, 0)
	for _, inv := range r.db().invitations {
		if keep(inv) {
			out = append(out, inv)
		}
	}
	slices.SortFunc(out, func(a, b domain.WorkspaceInvitation) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return compareDesc(a.InvitationID, b.InvitationID)
	})
	return out
}
