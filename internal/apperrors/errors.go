package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates a conflict with existing state (duplicate row, already a member, etc).
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is authenticated but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected failure (database, encoding, ...).
var ErrInternal = errors.New("internal error")

// Machine-readable error codes returned to API clients.
const (
	CodeNotFound               = "NOT_FOUND"
	CodeWorkspaceNotFound      = "WORKSPACE_NOT_FOUND"
	CodeUserNotFound           = "USER_NOT_FOUND"
	CodeInvitationNotFound     = "INVITATION_NOT_FOUND"
	CodeSurveyNotFound         = "SURVEY_NOT_FOUND"
	CodeForbidden              = "FORBIDDEN"
	CodeOnlyOwnerCanAddMembers = "ONLY_OWNER_CAN_ADD_MEMBERS"
	CodeInviteRequired         = "INVITE_REQUIRED"
	CodeValidation             = "VALIDATION_ERROR"
	CodeInvalidRole            = "INVALID_ROLE"
	CodeAlreadyMember          = "ALREADY_MEMBER"
	CodeDuplicateInvitation    = "DUPLICATE_INVITATION"
	CodeNameConflict           = "NAME_CONFLICT"
	CodeConflict               = "CONFLICT"
	CodeInvalidToken           = "INVALID_TOKEN"
	CodeInvitationExpired      = "INVITATION_EXPIRED"
	CodeInvitationNotPending   = "INVITATION_NOT_PENDING"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeInternal               = "INTERNAL_ERROR"
)

// AppError is a coded application error. Kind is one of the sentinel errors above
// and drives the HTTP status; Code is the stable identifier clients switch on.
type AppError struct {
	Code    string
	Message string
	Kind    error
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes both the kind sentinel and the underlying cause to errors.Is/As.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Is reports whether target is an AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMessage returns a copy of e carrying a different message.
func (e *AppError) WithMessage(msg string) *AppError {
	cp := *e
	cp.Message = msg
	return &cp
}

// Wrap returns a copy of e carrying cause.
func (e *AppError) Wrap(cause error) *AppError {
	cp := *e
	cp.Err = cause
	return &cp
}

func newCoded(code string, kind error, msg string) *AppError {
	return &AppError{Code: code, Message: msg, Kind: kind}
}

// Predefined coded errors. Compare with errors.Is.
var (
	ErrWorkspaceNotFound      = newCoded(CodeWorkspaceNotFound, ErrNotFound, "Workspace not found")
	ErrUserNotFound           = newCoded(CodeUserNotFound, ErrNotFound, "User not found")
	ErrInvitationNotFound     = newCoded(CodeInvitationNotFound, ErrNotFound, "Invitation not found")
	ErrSurveyNotFound         = newCoded(CodeSurveyNotFound, ErrNotFound, "Survey not found")
	ErrAccessDenied           = newCoded(CodeForbidden, ErrForbidden, "Access denied")
	ErrOnlyOwnerCanAddMembers = newCoded(CodeOnlyOwnerCanAddMembers, ErrForbidden, "Only the workspace owner can add members")
	ErrInviteRequired         = newCoded(CodeInviteRequired, ErrForbidden, "This workspace is private. You need an invitation to join.")
	ErrInvalidRole            = newCoded(CodeInvalidRole, ErrValidation, "Invalid role")
	ErrAlreadyMember          = newCoded(CodeAlreadyMember, ErrDuplicate, "User is already a member of this workspace")
	ErrDuplicateInvitation    = newCoded(CodeDuplicateInvitation, ErrDuplicate, "Invitation already sent to this email")
	ErrWorkspaceNameTaken     = newCoded(CodeNameConflict, ErrDuplicate, "Workspace name already exists")
	ErrInvalidToken           = newCoded(CodeInvalidToken, ErrNotFound, "Invalid invitation token")
	ErrInvitationExpired      = newCoded(CodeInvitationExpired, ErrValidation, "Invitation has expired")
	ErrInvitationNotPending   = newCoded(CodeInvitationNotPending, ErrDuplicate, "Invitation is no longer pending")
)

// NewAppError builds an internal error. The status argument is kept for call-site
// readability; anything other than 5xx is mapped to the closest kind.
func NewAppError(status int, msg string, err error) *AppError {
	switch {
	case status == http.StatusNotFound:
		return &AppError{Code: CodeNotFound, Message: msg, Kind: ErrNotFound, Err: err}
	case status == http.StatusForbidden:
		return &AppError{Code: CodeForbidden, Message: msg, Kind: ErrForbidden, Err: err}
	case status == http.StatusConflict:
		return &AppError{Code: CodeConflict, Message: msg, Kind: ErrDuplicate, Err: err}
	case status >= 400 && status < 500:
		return &AppError{Code: CodeValidation, Message: msg, Kind: ErrValidation, Err: err}
	default:
		return &AppError{Code: CodeInternal, Message: msg, Kind: ErrInternal, Err: err}
	}
}

// NewNotFoundError returns a generic not-found error.
func NewNotFoundError(msg string) *AppError {
	return newCoded(CodeNotFound, ErrNotFound, msg)
}

// NewValidationFailedError returns a validation error with a human-readable message.
func NewValidationFailedError(msg string) *AppError {
	return newCoded(CodeValidation, ErrValidation, msg)
}

// NewConflictError returns a conflict error.
func NewConflictError(msg string) *AppError {
	return newCoded(CodeConflict, ErrDuplicate, msg)
}

// NewForbiddenError returns a forbidden error with a custom message.
func NewForbiddenError(msg string) *AppError {
	return newCoded(CodeForbidden, ErrForbidden, msg)
}

// HTTPStatus maps an error to the status code the API should respond with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf returns the machine code carried by err, falling back to the kind.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrDuplicate):
		return CodeConflict
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	default:
		return CodeInternal
	}
}

// MessageOf returns the client-facing message for err. Internal errors never leak their cause.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != ErrInternal {
		return appErr.Message
	}
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrForbidden),
		errors.Is(err, ErrValidation), errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrUnauthorized):
		return err.Error()
	default:
		return "Internal server error"
	}
}
