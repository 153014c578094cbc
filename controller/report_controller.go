package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// SlaSummary builds the SLA/turnaround report for a time range
func (c *CorrespondenceController) SlaSummary(ctx *gin.Context) {
	rangeDays := 30
	if raw := ctx.Query("range_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "range_days must be a non-negative integer"})
			return
		}
		rangeDays = parsed
	}

	summary, err := c.service.ComputeSlaSummary(ctx.Query("division_id"), rangeDays)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, summary)
}
