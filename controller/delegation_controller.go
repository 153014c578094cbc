package controller

import (
	"net/http"
	"time"

	model "github.com/Ekene07/CorrTrack/models"
	service "github.com/Ekene07/CorrTrack/service"

	"github.com/gin-gonic/gin"
)

type delegationRequest struct {
	Principal  string `json:"principal" binding:"required"`
	Assistant  string `json:"assistant" binding:"required"`
	CanApprove bool   `json:"can_approve"`
	CanMinute  *bool  `json:"can_minute"`
	CanForward *bool  `json:"can_forward"`
	StartsAt   string `json:"starts_at"`
	EndsAt     string `json:"ends_at"`
}

// UpsertDelegation creates or updates a delegation of authority
func (c *CorrespondenceController) UpsertDelegation(ctx *gin.Context) {
	var req delegationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal, err := c.service.ResolveUser(service.ParseUserRef(req.Principal))
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	assistant, err := c.service.ResolveUser(service.ParseUserRef(req.Assistant))
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	delegation := model.Delegation{
		PrincipalID: principal.ID,
		AssistantID: assistant.ID,
		CanApprove:  req.CanApprove,
		CanMinute:   true,
		CanForward:  true,
		Active:      true,
	}
	if req.CanMinute != nil {
		delegation.CanMinute = *req.CanMinute
	}
	if req.CanForward != nil {
		delegation.CanForward = *req.CanForward
	}
	if req.StartsAt != "" {
		d, err := time.Parse("2006-01-02", req.StartsAt)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "starts_at must be YYYY-MM-DD"})
			return
		}
		delegation.StartsAt = &d
	}
	if req.EndsAt != "" {
		d, err := time.Parse("2006-01-02", req.EndsAt)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "ends_at must be YYYY-MM-DD"})
			return
		}
		delegation.EndsAt = &d
	}

	if err := c.service.UpsertDelegation(&delegation); err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Delegation saved",
		"delegation": delegation,
	})
}

// RevokeDelegation deactivates a delegation pair
func (c *CorrespondenceController) RevokeDelegation(ctx *gin.Context) {
	principal, err := c.service.ResolveUser(service.ParseUserRef(ctx.Param("principal")))
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	assistant, err := c.service.ResolveUser(service.ParseUserRef(ctx.Param("assistant")))
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	if err := c.service.RevokeDelegation(principal.ID, assistant.ID); err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Delegation revoked"})
}

// ListDelegations lists delegations, optionally scoped to one principal
func (c *CorrespondenceController) ListDelegations(ctx *gin.Context) {
	principalID := ""
	if raw := ctx.Query("principal"); raw != "" {
		principal, err := c.service.ResolveUser(service.ParseUserRef(raw))
		if err != nil {
			ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		principalID = principal.ID
	}

	delegations, err := c.service.ListDelegations(principalID)
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"delegations": delegations,
		"total":       len(delegations),
	})
}
