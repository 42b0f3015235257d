package mailer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/SscSPs/survey_workspace_app/internal/middleware"
)

// Mailer delivers transactional email.
type Mailer interface {
	SendWorkspaceInvitation(ctx context.Context, msg InvitationEmail) error
}

// InvitationEmail is the content of a workspace invitation email.
type InvitationEmail struct {
	To            string
	InviterName   string
	WorkspaceName string
	Token         string
	FrontendURL   string
}

// AcceptURL is the page the invitee opens to accept.
func (m InvitationEmail) AcceptURL() string {
	return AcceptURL(m.FrontendURL, m.Token)
}

// AcceptURL builds the invitation acceptance link for token.
func AcceptURL(frontendURL, token string) string {
	return strings.TrimRight(frontendURL, "/") + "/workspace/invitations/" + token
}

var (
	subjectTmpl = template.Must(template.New("subject").Parse(`You've been invited to join "{{.WorkspaceName}}"`))
	bodyTmpl    = template.Must(template.New("body").Parse(`Hi,

{{.InviterName}} invited you to collaborate on the workspace "{{.WorkspaceName}}".

Accept the invitation here:
{{.AcceptURL}}

If you were not expecting this invitation you can ignore this email.
`))
)

// Render produces the subject and plain-text body of the invitation email.
func (m InvitationEmail) Render() (subject, body string, err error) {
	var buf bytes.Buffer
	if err := subjectTmpl.Execute(&buf, m); err != nil {
		return "", "", fmt.Errorf("rendering subject: %w", err)
	}
	subject = buf.String()

	buf.Reset()
	if err := bodyTmpl.Execute(&buf, m); err != nil {
		return "", "", fmt.Errorf("rendering body: %w", err)
	}
	return subject, buf.String(), nil
}

// LogMailer renders emails and writes them to the log instead of sending them.
type LogMailer struct{}

// NewLogMailer creates a LogMailer.
func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

var _ Mailer = (*LogMailer)(nil)

// SendWorkspaceInvitation logs the rendered invitation.
func (l *LogMailer) SendWorkspaceInvitation(ctx context.Context, msg InvitationEmail) error {
	if msg.To == "" {
		return fmt.Errorf("invitation email has no recipient")
	}
	subject, body, err := msg.Render()
	if err != nil {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).InfoContext(ctx, "Workspace invitation email",
		slog.String("to", msg.To),
		slog.String("subject", subject),
		slog.String("inviter", msg.InviterName),
		slog.String("accept_url", msg.AcceptURL()),
		slog.String("body", body))
	return nil
}
