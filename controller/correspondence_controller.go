package controller

import (
	"errors"
	"log"
	"net/http"
	"time"

	model "github.com/Ekene07/CorrTrack/models"
	service "github.com/Ekene07/CorrTrack/service"

	"github.com/gin-gonic/gin"
)

// CorrespondenceController manages HTTP requests for the routing engine
type CorrespondenceController struct {
	service *service.CorrespondenceService
}

// NewCorrespondenceController initializes the controller with the service
func NewCorrespondenceController(service *service.CorrespondenceService) *CorrespondenceController {
	return &CorrespondenceController{service}
}

// actor resolves the acting user from the request headers. The engine
// consumes an external user directory; authentication happens upstream.
func (c *CorrespondenceController) actor(ctx *gin.Context) (*model.User, bool) {
	raw := ctx.GetHeader("X-Actor-Id")
	if raw == "" {
		raw = ctx.GetHeader("X-Actor-Username")
	}
	if raw == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Actor header is required"})
		return nil, false
	}
	user, err := c.service.ResolveUser(service.ParseUserRef(raw))
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return nil, false
	}
	return user, true
}

// statusForError maps service errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrCorrespondenceNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrOfficeNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrCapabilityDenied):
		return http.StatusForbidden
	case errors.Is(err, service.ErrTerminalState):
		return http.StatusConflict
	case errors.Is(err, service.ErrReasonRequired),
		errors.Is(err, service.ErrNoChanges),
		errors.Is(err, service.ErrNoActiveMembership),
		errors.Is(err, service.ErrExternalIntakeDisabled),
		errors.Is(err, service.ErrArchiveLevelRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type createCorrespondenceRequest struct {
	ReferenceNumber    string `json:"reference_number"`
	Subject            string `json:"subject" binding:"required"`
	Summary            string `json:"summary"`
	SenderName         string `json:"sender_name"`
	SenderOrganization string `json:"sender_organization"`
	RecipientName      string `json:"recipient_name"`
	Source             string `json:"source"`
	DocumentType       string `json:"document_type"`
	Priority           string `json:"priority"`
	Direction          string `json:"direction"`
	ReceivedDate       string `json:"received_date"`
	LetterDate         string `json:"letter_date"`
	Remarks            string `json:"remarks"`
}

// CreateCorrespondence registers a new correspondence item
func (c *CorrespondenceController) CreateCorrespondence(ctx *gin.Context) {
	user, ok := c.actor(ctx)
	if !ok {
		return
	}

	var req createCorrespondenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.CreateInput{
		ReferenceNumber:    req.ReferenceNumber,
		Subject:            req.Subject,
		Summary:            req.Summary,
		SenderName:         req.SenderName,
		SenderOrganization: req.SenderOrganization,
		RecipientName:      req.RecipientName,
		Source:             model.Source(req.Source),
		DocumentType:       model.DocumentType(req.DocumentType),
		Priority:           model.Priority(req.Priority),
		Direction:          model.Direction(req.Direction),
		Remarks:            req.Remarks,
	}
	if req.ReceivedDate != "" {
		d, err := time.Parse("2006-01-02", req.ReceivedDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "received_date must be YYYY-MM-DD"})
			return
		}
		input.ReceivedDate = &d
	}
	if req.LetterDate != "" {
		d, err := time.Parse("2006-01-02", req.LetterDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "letter_date must be YYYY-MM-DD"})
			return
		}
		input.LetterDate = &d
	}

	corr, err := c.service.CreateCorrespondence(input, *user)
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message":        "Correspondence registered successfully",
		"correspondence": corr,
	})
}

// GetCorrespondence returns one record with its full minute ledger
func (c *CorrespondenceController) GetCorrespondence(ctx *gin.Context) {
	corr, minutes, err := c.service.GetCorrespondence(ctx.Param("id"))
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"correspondence": corr,
		"minutes":        minutes,
	})
}

type appendMinuteRequest struct {
	ActionType       string `json:"action_type"`
	Text             string `json:"text" binding:"required"`
	Direction        string `json:"direction"`
	ToOfficeID       string `json:"to_office_id"`
	FromOfficeID     string `json:"from_office_id"`
	OnBehalfOf       string `json:"on_behalf_of"`
	ActedBySecretary bool   `json:"acted_by_secretary"`
	AssistantType    string `json:"assistant_type"`
}

// AppendMinute appends an entry to the correspondence's minute ledger
func (c *CorrespondenceController) AppendMinute(ctx *gin.Context) {
	user, ok := c.actor(ctx)
	if !ok {
		return
	}

	var req appendMinuteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.MinuteInput{
		ActionType:       model.ActionType(req.ActionType),
		Text:             req.Text,
		Direction:        model.Direction(req.Direction),
		ActedBySecretary: req.ActedBySecretary,
		AssistantType:    model.AssistantType(req.AssistantType),
	}
	if req.ToOfficeID != "" {
		input.ToOfficeID = &req.ToOfficeID
	}
	if req.FromOfficeID != "" {
		input.ExpectedFromOfficeID = &req.FromOfficeID
	}
	if req.OnBehalfOf != "" {
		ref := service.ParseUserRef(req.OnBehalfOf)
		input.OnBehalfOf = &ref
	}

	minute, err := c.service.AppendMinute(ctx.Param("id"), *user, input)
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Minute recorded",
		"minute":  minute,
	})
}

type reassignRequest struct {
	OwningOfficeID  *string `json:"owning_office_id"`
	CurrentOfficeID *string `json:"current_office_id"`
	ApproverID      *string `json:"approver_id"`
	ClearApprover   bool    `json:"clear_approver"`
	Reason          string  `json:"reason"`
}

// Reassign moves a correspondence between offices or approvers
func (c *CorrespondenceController) Reassign(ctx *gin.Context) {
	user, ok := c.actor(ctx)
	if !ok {
		return
	}

	var req reassignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	corr, err := c.service.Reassign(ctx.Param("id"), service.ReassignRequest{
		OwningOfficeID:  req.OwningOfficeID,
		CurrentOfficeID: req.CurrentOfficeID,
		ApproverID:      req.ApproverID,
		ClearApprover:   req.ClearApprover,
		Reason:          req.Reason,
	}, *user)
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message":        "Correspondence reassigned",
		"correspondence": corr,
	})
}

type setStatusRequest struct {
	Status       string `json:"status" binding:"required"`
	ArchiveLevel string `json:"archive_level"`
}

// SetStatus applies an explicit status edit
func (c *CorrespondenceController) SetStatus(ctx *gin.Context) {
	user, ok := c.actor(ctx)
	if !ok {
		return
	}

	var req setStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	corr, err := c.service.SetStatus(ctx.Param("id"), model.Status(req.Status), model.ArchiveLevel(req.ArchiveLevel), *user)
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message":        "Status updated",
		"correspondence": corr,
	})
}

// UploadAttachment attaches a file to a correspondence
func (c *CorrespondenceController) UploadAttachment(ctx *gin.Context) {
	user, ok := c.actor(ctx)
	if !ok {
		return
	}

	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to get file from request"})
		return
	}
	defer file.Close()

	attachment, err := c.service.AddAttachment(ctx.Param("id"), file, header, *user)
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	log.Printf("Attachment %s stored for correspondence %s", attachment.FileName, ctx.Param("id"))
	ctx.JSON(http.StatusCreated, gin.H{
		"message":    "Attachment uploaded successfully",
		"attachment": attachment,
	})
}

// AuditTrail returns the routing audit entries for a correspondence
func (c *CorrespondenceController) AuditTrail(ctx *gin.Context) {
	entries, err := c.service.AuditTrail(ctx.Param("id"))
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   len(entries),
	})
}

type addDistributionRequest struct {
	RecipientType string `json:"recipient_type" binding:"required"`
	Purpose       string `json:"purpose"`
	TargetID      string `json:"target_id" binding:"required"`
	Notes         string `json:"notes"`
}

// AddDistribution copies a correspondence to another organizational unit
func (c *CorrespondenceController) AddDistribution(ctx *gin.Context) {
	user, ok := c.actor(ctx)
	if !ok {
		return
	}

	var req addDistributionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := c.service.AddDistribution(ctx.Param("id"), service.DistributionInput{
		RecipientType: model.RecipientType(req.RecipientType),
		Purpose:       model.DistributionPurpose(req.Purpose),
		TargetID:      req.TargetID,
		Notes:         req.Notes,
	}, *user)
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message":      "Distribution recorded",
		"distribution": entry,
	})
}

// ListDistribution returns the distribution list of a correspondence
func (c *CorrespondenceController) ListDistribution(ctx *gin.Context) {
	entries, err := c.service.ListDistribution(ctx.Param("id"))
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"distribution": entries,
		"total":        len(entries),
	})
}
