package handlers

import (
	"net/http"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	portssvc "github.com/SscSPs/survey_workspace_app/internal/core/ports/services"
	"github.com/SscSPs/survey_workspace_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// surveyAccessHandler handles survey permission checks and grants.
type surveyAccessHandler struct {
	accessService portssvc.SurveyAccessSvcFacade
}

func newSurveyAccessHandler(as portssvc.SurveyAccessSvcFacade) *surveyAccessHandler {
	return &surveyAccessHandler{accessService: as}
}

func registerSurveyAccessRoutes(rg *gin.RouterGroup, accessService portssvc.SurveyAccessSvcFacade) {
	h := newSurveyAccessHandler(accessService)

	surveys := rg.Group("/surveys")
	{
		surveys.GET("/accessible", h.listAccessibleSurveys)
	}

	access := rg.Group("/surveys/:survey_id/access")
	{
		access.GET("/check", h.checkAccess)
		access.GET("/me", h.getMyAccess)
		access.GET("", h.listGrants)
		access.POST("", h.grantAccess)
		access.DELETE("/:user_id", h.revokeAccess)
	}
}

// checkAccess godoc
// @Summary Check the caller's access to a survey
// @Description Resolves creator, explicit grant and workspace membership into a yes or no.
// @Tags survey-access
// @Produce  json
// @Param   survey_id path string true "Survey ID"
// @Param   level query string false "respond, view or full (default view)"
// @Success 200 {object} dto.AccessCheckResponse
// @Failure 400 {object} ErrorResponse "Unknown level"
// @Security BearerAuth
// @Router /surveys/{survey_id}/access/check [get]
func (h *surveyAccessHandler) checkAccess(c *gin.Context) {
	surveyID, ok := pathID(c, "survey_id")
	if !ok {
		return
	}
	level := domain.AccessType(c.DefaultQuery("level", string(domain.AccessView)))
	if !level.IsValid() {
		respondError(c, apperrors.NewValidationFailedError("level must be one of respond, view, full"), "Invalid access level")
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.AccessCheckResponse{
		OK:        true,
		SurveyID:  dto.FlexibleID(surveyID),
		Level:     level,
		HasAccess: h.accessService.HasAccess(c.Request.Context(), surveyID, userID, level),
	})
}

// getMyAccess godoc
// @Summary The caller's explicit grant on a survey
// @Tags survey-access
// @Produce  json
// @Param   survey_id path string true "Survey ID"
// @Success 200 {object} domain.SurveyAccess
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /surveys/{survey_id}/access/me [get]
func (h *surveyAccessHandler) getMyAccess(c *gin.Context) {
	surveyID, ok := pathID(c, "survey_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	grant, err := h.accessService.GetUserSurveyAccess(c.Request.Context(), surveyID, userID)
	if err != nil {
		respondError(c, err, "Failed to load survey access")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"access": grant})
}

// listGrants godoc
// @Summary List grants on a survey
// @Description Active, unexpired grants, newest first. Survey managers only.
// @Tags survey-access
// @Produce  json
// @Param   survey_id path string true "Survey ID"
// @Success 200 {object} dto.SurveyAccessListResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /surveys/{survey_id}/access [get]
func (h *surveyAccessHandler) listGrants(c *gin.Context) {
	surveyID, ok := pathID(c, "survey_id")
	if !ok {
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	grants, err := h.accessService.ListSurveyGrants(c.Request.Context(), surveyID, actorID)
	if err != nil {
		respondError(c, err, "Failed to list survey grants")
		return
	}

	c.JSON(http.StatusOK, dto.SurveyAccessListResponse{OK: true, Grants: grants})
}

// grantAccess godoc
// @Summary Grant a user access to a survey
// @Description Creates or replaces the user's grant. A revoked grant is reactivated.
// @Tags survey-access
// @Accept  json
// @Produce  json
// @Param   survey_id path string true "Survey ID"
// @Param   grant body dto.GrantAccessRequest true "Grant"
// @Success 201 {object} domain.SurveyAccess
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /surveys/{survey_id}/access [post]
func (h *surveyAccessHandler) grantAccess(c *gin.Context) {
	surveyID, ok := pathID(c, "survey_id")
	if !ok {
		return
	}
	var req dto.GrantAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	grant, err := h.accessService.GrantAccess(c.Request.Context(), surveyID, actorID, req)
	if err != nil {
		respondError(c, err, "Failed to grant survey access")
		return
	}

	respondOK(c, http.StatusCreated, gin.H{"access": grant})
}

// revokeAccess godoc
// @Summary Revoke a user's survey access
// @Tags survey-access
// @Produce  json
// @Param   survey_id path string true "Survey ID"
// @Param   user_id path string true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No active grant"
// @Security BearerAuth
// @Router /surveys/{survey_id}/access/{user_id} [delete]
func (h *surveyAccessHandler) revokeAccess(c *gin.Context) {
	surveyID, ok := pathID(c, "survey_id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.accessService.RevokeAccess(c.Request.Context(), surveyID, userID, actorID); err != nil {
		respondError(c, err, "Failed to revoke survey access")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{OK: true, Message: "Access revoked"})
}

// listAccessibleSurveys godoc
// @Summary Surveys shared with me
// @Tags survey-access
// @Produce  json
// @Success 200 {object} dto.SurveyListResponse
// @Security BearerAuth
// @Router /surveys/accessible [get]
func (h *surveyAccessHandler) listAccessibleSurveys(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	surveys, err := h.accessService.ListAccessibleSurveys(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list accessible surveys")
		return
	}

	c.JSON(http.StatusOK, dto.SurveyListResponse{OK: true, Surveys: surveys})
}
