package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/survey_workspace_app/internal/core/ports/services"
	"github.com/SscSPs/survey_workspace_app/internal/dto"
	"github.com/SscSPs/survey_workspace_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// workspaceHandler handles HTTP requests related to workspaces and their members.
type workspaceHandler struct {
	workspaceService portssvc.WorkspaceSvcFacade
}

// newWorkspaceHandler creates a new workspaceHandler.
func newWorkspaceHandler(ws portssvc.WorkspaceSvcFacade) *workspaceHandler {
	return &workspaceHandler{
		workspaceService: ws,
	}
}

// registerWorkspaceRoutes registers routes for workspaces, their members and their invitations.
func registerWorkspaceRoutes(rg *gin.RouterGroup, workspaceService portssvc.WorkspaceSvcFacade) {
	h := newWorkspaceHandler(workspaceService)

	workspacesTopLevel := rg.Group("/workspaces")
	{
		workspacesTopLevel.POST("", h.createWorkspace)
		workspacesTopLevel.GET("/my", h.listMyWorkspaces)
	}

	workspaceSpecific := rg.Group("/workspaces/:workspace_id")
	{
		workspaceSpecific.GET("", h.getWorkspace)
		workspaceSpecific.PUT("", h.updateWorkspace)
		workspaceSpecific.DELETE("", h.deleteWorkspace)

		members := workspaceSpecific.Group("/members")
		{
			members.GET("", h.listMembers)
			members.POST("", h.addMember)
			members.DELETE("/:user_id", h.removeMember)
		}

		workspaceSpecific.GET("/surveys", h.listSurveys)
		workspaceSpecific.GET("/activities", h.getActivities)
		workspaceSpecific.POST("/join", h.joinWorkspace)
		workspaceSpecific.POST("/invite", h.inviteToWorkspace)
		workspaceSpecific.GET("/invitations/pending", h.getPendingInvitations)
	}

	registerInvitationRoutes(rg, workspaceService)
}

// createWorkspace godoc
// @Summary Create a new workspace
// @Description Creates a new workspace owned by the caller.
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param   workspace body dto.CreateWorkspaceRequest true "Workspace details"
// @Success 201 {object} domain.Workspace
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create workspace"
// @Security BearerAuth
// @Router /workspaces [post]
func (h *workspaceHandler) createWorkspace(c *gin.Context) {
	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	workspace, err := h.workspaceService.CreateWorkspace(c.Request.Context(), req, ownerID)
	if err != nil {
		respondError(c, err, "Failed to create workspace")
		return
	}

	respondOK(c, http.StatusCreated, gin.H{"workspace": workspace})
}

// listMyWorkspaces godoc
// @Summary List workspaces for current user
// @Description Lists owned and joined workspaces with the caller's role, most recent first.
// @Tags workspaces
// @Produce  json
// @Success 200 {object} dto.WorkspaceListResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /workspaces/my [get]
func (h *workspaceHandler) listMyWorkspaces(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	workspaces, err := h.workspaceService.ListMyWorkspaces(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list workspaces")
		return
	}

	c.JSON(http.StatusOK, dto.WorkspaceListResponse{OK: true, Workspaces: workspaces})
}

// getWorkspace godoc
// @Summary Get a workspace
// @Description Returns the workspace with the caller's role, members and survey count.
// @Tags workspaces
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} domain.WorkspaceDetails
// @Failure 403 {object} ErrorResponse "Not a member"
// @Failure 404 {object} ErrorResponse "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id} [get]
func (h *workspaceHandler) getWorkspace(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	details, err := h.workspaceService.GetWorkspaceByID(c.Request.Context(), workspaceID, userID)
	if err != nil {
		respondError(c, err, "Failed to get workspace")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"workspace": details})
}

// updateWorkspace godoc
// @Summary Update a workspace
// @Description Changes name, description or visibility. Owner only.
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   workspace body dto.UpdateWorkspaceRequest true "Fields to change"
// @Success 200 {object} domain.Workspace
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Name already exists"
// @Security BearerAuth
// @Router /workspaces/{workspace_id} [put]
func (h *workspaceHandler) updateWorkspace(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}
	var req dto.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	workspace, err := h.workspaceService.UpdateWorkspace(c.Request.Context(), workspaceID, req, actorID)
	if err != nil {
		respondError(c, err, "Failed to update workspace")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"workspace": workspace})
}

// deleteWorkspace godoc
// @Summary Delete a workspace
// @Description Deletes the workspace with its members and invitations. Owner only.
// @Tags workspaces
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id} [delete]
func (h *workspaceHandler) deleteWorkspace(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.workspaceService.DeleteWorkspace(c.Request.Context(), workspaceID, actorID); err != nil {
		respondError(c, err, "Failed to delete workspace")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{OK: true, Message: "Workspace deleted"})
}

// listMembers godoc
// @Summary List workspace members
// @Tags workspaces
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.MemberListResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/members [get]
func (h *workspaceHandler) listMembers(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	members, err := h.workspaceService.ListMembers(c.Request.Context(), workspaceID, userID)
	if err != nil {
		respondError(c, err, "Failed to list members")
		return
	}

	c.JSON(http.StatusOK, dto.MemberListResponse{OK: true, Members: members})
}

// addMember godoc
// @Summary Add a user to a workspace
// @Description Adds a user with a role, or changes the role of an existing member. Owner only.
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   member body dto.AddMemberRequest true "User ID and Role"
// @Success 201 {object} domain.WorkspaceMember
// @Failure 400 {object} ErrorResponse "Invalid role"
// @Failure 403 {object} ErrorResponse "Only the owner can add members"
// @Failure 404 {object} ErrorResponse "Workspace or user not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/members [post]
func (h *workspaceHandler) addMember(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}
	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	member, err := h.workspaceService.AddMember(c.Request.Context(), workspaceID, actorID, req)
	if err != nil {
		respondError(c, err, "Failed to add member")
		return
	}

	respondOK(c, http.StatusCreated, gin.H{"member": member})
}

// removeMember godoc
// @Summary Remove a member
// @Description Removes a member from the workspace. Removing a non-member succeeds. Owner only.
// @Tags workspaces
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   user_id path string true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse "Owner cannot be removed"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/members/{user_id} [delete]
func (h *workspaceHandler) removeMember(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	removed, err := h.workspaceService.RemoveMember(c.Request.Context(), workspaceID, memberID, actorID)
	if err != nil {
		respondError(c, err, "Failed to remove member")
		return
	}

	msg := "Member removed"
	if !removed {
		msg = "Member not found, nothing to remove"
	}
	c.JSON(http.StatusOK, MessageResponse{OK: true, Message: msg})
}

// listSurveys godoc
// @Summary List surveys in a workspace
// @Description Visible to members, the owner and platform admins. Newest first.
// @Tags workspaces
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.SurveyListResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/surveys [get]
func (h *workspaceHandler) listSurveys(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	surveys, err := h.workspaceService.ListSurveys(c.Request.Context(), workspaceID, userID)
	if err != nil {
		respondError(c, err, "Failed to list workspace surveys")
		return
	}

	c.JSON(http.StatusOK, dto.SurveyListResponse{OK: true, Surveys: surveys})
}

// getActivities godoc
// @Summary Workspace activity feed
// @Tags workspaces
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   limit query int false "Max entries (default 20, max 100)"
// @Success 200 {array} domain.WorkspaceActivity
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/activities [get]
func (h *workspaceHandler) getActivities(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}
	var params dto.ActivityListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, err)
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	activities, err := h.workspaceService.GetActivities(c.Request.Context(), workspaceID, userID, params.Limit)
	if err != nil {
		respondError(c, err, "Failed to list workspace activities")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"activities": activities})
}

// joinWorkspace godoc
// @Summary Join a public workspace
// @Tags workspaces
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 201 {object} domain.MembershipResult
// @Success 200 {object} domain.MembershipResult "Already a member"
// @Failure 403 {object} ErrorResponse "INVITE_REQUIRED"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/join [post]
func (h *workspaceHandler) joinWorkspace(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.workspaceService.JoinWorkspace(c.Request.Context(), workspaceID, userID)
	if err != nil {
		respondError(c, err, "Failed to join workspace")
		return
	}

	status := http.StatusCreated
	if result.AlreadyMember {
		status = http.StatusOK
	}
	respondOK(c, status, gin.H{"membership": result.Membership, "alreadyMember": result.AlreadyMember})
}

// inviteToWorkspace godoc
// @Summary Invite someone by email
// @Description Owners and collaborators may invite. The invitation email is sent in the background.
// @Tags invitations
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   invitation body dto.InviteRequest true "Email and role"
// @Success 201 {object} domain.WorkspaceInvitation
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "ALREADY_MEMBER or DUPLICATE_INVITATION"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/invite [post]
func (h *workspaceHandler) inviteToWorkspace(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}
	var req dto.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	inviterID, ok := currentUserID(c)
	if !ok {
		return
	}

	invitation, err := h.workspaceService.InviteToWorkspace(c.Request.Context(), workspaceID, inviterID, req)
	if err != nil {
		respondError(c, err, "Failed to invite to workspace")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Invitation created",
		slog.Int64("workspace_id", workspaceID),
		slog.Int64("invitation_id", invitation.InvitationID))
	respondOK(c, http.StatusCreated, gin.H{"invitation": invitation})
}

// getPendingInvitations godoc
// @Summary List a workspace's open invitations
// @Description Pending and expired invitations, newest first. Owner only.
// @Tags invitations
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.InvitationListResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/invitations/pending [get]
func (h *workspaceHandler) getPendingInvitations(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	invitations, err := h.workspaceService.GetPendingInvitations(c.Request.Context(), workspaceID, actorID)
	if err != nil {
		respondError(c, err, "Failed to list pending invitations")
		return
	}

	c.JSON(http.StatusOK, dto.InvitationListResponse{OK: true, Invitations: invitations})
}
