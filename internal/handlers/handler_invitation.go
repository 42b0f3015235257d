package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/survey_workspace_app/internal/core/ports/services"
	"github.com/SscSPs/survey_workspace_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// invitationHandler handles the invitee and owner actions on invitations.
type invitationHandler struct {
	workspaceService portssvc.WorkspaceSvcFacade
}

func registerInvitationRoutes(rg *gin.RouterGroup, workspaceService portssvc.WorkspaceSvcFacade) {
	h := &invitationHandler{workspaceService: workspaceService}

	invitations := rg.Group("/workspaces/invitations")
	{
		invitations.GET("/received", h.getReceivedInvitations)
		invitations.DELETE("/:invitation_id", h.cancelInvitation)
		invitations.POST("/:invitation_id/resend", h.resendInvitation)
	}

	rg.POST("/workspaces/accept-invitation", h.acceptInvitation)
	rg.POST("/workspaces/decline-invitation", h.declineInvitation)
}

// registerPublicInvitationRoutes exposes the invitation lookup used by the accept page.
func registerPublicInvitationRoutes(rg *gin.RouterGroup, workspaceService portssvc.WorkspaceSvcFacade) {
	h := &invitationHandler{workspaceService: workspaceService}
	rg.GET("/invitations/:token", h.getInvitationDetails)
}

// acceptInvitation godoc
// @Summary Accept an invitation
// @Description Marks the invitation accepted and adds the caller to the workspace.
// @Tags invitations
// @Accept  json
// @Produce  json
// @Param   body body dto.InvitationTokenRequest true "Invitation token"
// @Success 200 {object} domain.InvitationAcceptance
// @Failure 400 {object} ErrorResponse "INVITATION_EXPIRED"
// @Failure 404 {object} ErrorResponse "INVALID_TOKEN"
// @Failure 409 {object} ErrorResponse "INVITATION_NOT_PENDING"
// @Security BearerAuth
// @Router /workspaces/accept-invitation [post]
func (h *invitationHandler) acceptInvitation(c *gin.Context) {
	var req dto.InvitationTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.workspaceService.AcceptInvitation(c.Request.Context(), req.Token, userID)
	if err != nil {
		respondError(c, err, "Failed to accept invitation")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"workspace":     result.Workspace,
		"role":          result.Role,
		"alreadyMember": result.AlreadyMember,
	})
}

// declineInvitation godoc
// @Summary Decline an invitation
// @Tags invitations
// @Accept  json
// @Produce  json
// @Param   body body dto.InvitationTokenRequest true "Invitation token"
// @Success 200 {object} domain.WorkspaceInvitation
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/decline-invitation [post]
func (h *invitationHandler) declineInvitation(c *gin.Context) {
	var req dto.InvitationTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	invitation, err := h.workspaceService.DeclineInvitation(c.Request.Context(), req.Token, userID)
	if err != nil {
		respondError(c, err, "Failed to decline invitation")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"invitation": invitation})
}

// getInvitationDetails godoc
// @Summary Look up an invitation by token
// @Description Public. Returns the invitation with workspace and inviter names.
// @Tags invitations
// @Produce  json
// @Param   token path string true "Invitation token"
// @Success 200 {object} domain.InvitationDetails
// @Failure 400 {object} ErrorResponse "INVITATION_EXPIRED"
// @Failure 404 {object} ErrorResponse "INVALID_TOKEN"
// @Failure 409 {object} ErrorResponse "INVITATION_NOT_PENDING"
// @Router /invitations/{token} [get]
func (h *invitationHandler) getInvitationDetails(c *gin.Context) {
	details, err := h.workspaceService.GetInvitationDetails(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err, "Failed to load invitation")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"invitation": details})
}

// getReceivedInvitations godoc
// @Summary Invitations addressed to me
// @Tags invitations
// @Produce  json
// @Success 200 {object} dto.ReceivedInvitationListResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/invitations/received [get]
func (h *invitationHandler) getReceivedInvitations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	invitations, err := h.workspaceService.GetReceivedInvitations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list received invitations")
		return
	}

	c.JSON(http.StatusOK, dto.ReceivedInvitationListResponse{OK: true, Invitations: invitations})
}

// cancelInvitation godoc
// @Summary Cancel a pending invitation
// @Tags invitations
// @Produce  json
// @Param   invitation_id path string true "Invitation ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "INVITATION_NOT_PENDING"
// @Security BearerAuth
// @Router /workspaces/invitations/{invitation_id} [delete]
func (h *invitationHandler) cancelInvitation(c *gin.Context) {
	invitationID, ok := pathID(c, "invitation_id")
	if !ok {
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.workspaceService.CancelInvitation(c.Request.Context(), invitationID, actorID); err != nil {
		respondError(c, err, "Failed to cancel invitation")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{OK: true, Message: "Invitation cancelled"})
}

// resendInvitation godoc
// @Summary Resend an invitation
// @Description Issues a new token and expiry. The previous link stops working.
// @Tags invitations
// @Produce  json
// @Param   invitation_id path string true "Invitation ID"
// @Success 200 {object} domain.WorkspaceInvitation
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/invitations/{invitation_id}/resend [post]
func (h *invitationHandler) resendInvitation(c *gin.Context) {
	invitationID, ok := pathID(c, "invitation_id")
	if !ok {
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	invitation, err := h.workspaceService.ResendInvitation(c.Request.Context(), invitationID, actorID)
	if err != nil {
		respondError(c, err, "Failed to resend invitation")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"invitation": invitation})
}
