package repositories

import (
	"context"

	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
)

// MembershipReader defines read operations over the workspace membership relation.
type MembershipReader interface {
	// FindMembership returns the member row, or apperrors.ErrNotFound.
	FindMembership(ctx context.Context, workspaceID, userID int64) (*domain.WorkspaceMember, error)

	// FindMembershipByEmail resolves a member through the user's email, or apperrors.ErrNotFound.
	FindMembershipByEmail(ctx context.Context, workspaceID int64, email string) (*domain.WorkspaceMember, error)

	// ListMembers lists members with user name and email, oldest first.
	ListMembers(ctx context.Context, workspaceID int64) ([]domain.WorkspaceMember, error)
}

// MembershipWriter defines write operations over the workspace membership relation.
type MembershipWriter interface {
	// UpsertMembership inserts the member or updates its role when the pair already exists.
	UpsertMembership(ctx context.Context, member domain.WorkspaceMember) (*domain.WorkspaceMember, error)

	// DeleteMembership removes the pair and reports whether a row existed.
	DeleteMembership(ctx context.Context, workspaceID, userID int64) (bool, error)
}

// MembershipRepositoryFacade combines all membership repository interfaces
type MembershipRepositoryFacade interface {
	MembershipReader
	MembershipWriter
}
