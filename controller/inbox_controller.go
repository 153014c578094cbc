package controller

import (
	"net/http"
	"strings"

	model "github.com/Ekene07/CorrTrack/models"
	service "github.com/Ekene07/CorrTrack/service"

	"github.com/gin-gonic/gin"
)

// Inbox lists correspondence for the actor's offices with summary counters
func (c *CorrespondenceController) Inbox(ctx *gin.Context) {
	user, ok := c.actor(ctx)
	if !ok {
		return
	}

	officeIDs, err := c.service.MemberOffices(user.ID)
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	filters := service.InboxFilters{
		Search:            ctx.Query("q"),
		AssignedToMe:      ctx.Query("assigned_to_me") == "true",
		IncludeAllOffices: ctx.Query("all_offices") == "true",
	}
	if raw := ctx.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			filters.Statuses = append(filters.Statuses, model.Status(strings.TrimSpace(s)))
		}
	}

	page, err := c.service.OfficeInbox(officeIDs, *user, filters)
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, page)
}

// Archive lists the completed and archived records the actor may see
func (c *CorrespondenceController) Archive(ctx *gin.Context) {
	user, ok := c.actor(ctx)
	if !ok {
		return
	}

	filters := service.ArchiveFilters{Search: ctx.Query("q")}
	if raw := ctx.Query("level"); raw != "" {
		for _, l := range strings.Split(raw, ",") {
			filters.Levels = append(filters.Levels, model.ArchiveLevel(strings.TrimSpace(l)))
		}
	}

	records, err := c.service.ListArchiveRecords(user, filters)
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"records":        records,
		"total":          len(records),
		"allowed_levels": service.AllowedArchiveLevels(*user),
	})
}

// SearchCorrespondence runs a full-text search over the indexed records
func (c *CorrespondenceController) SearchCorrespondence(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'q' is required"})
		return
	}

	results, err := c.service.SearchCorrespondence(query)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"results": results,
		"total":   len(results),
	})
}
