package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"complaintdesk/backend/internal/models"
	"complaintdesk/backend/internal/triage"
)

// ListComplaints returns the processed complaint list for the current
// user. Two predicates apply independently and are ANDed: the user's
// assigned-category restriction and the optional explicit ?category=
// filter. Resetting the filter never widens access.
func (h *Handler) ListComplaints(c *gin.Context) {
	complaints, err := h.Syncer.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":     h.Localizer.GetString(lang(c), "feed_unavailable"),
			"retryable": true,
		})
		return
	}

	assigned, err := h.Storage.AssignedCategories(c.GetString(CtxUserID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load category assignments"})
		return
	}

	filter := strings.TrimSpace(c.Query("category"))
	if filter != "" {
		known, err := h.Storage.ListCategories()
		if err != nil {
			log.Printf("WARNING: Category vocabulary unavailable, filtering on the raw value: %v", err)
		}
		filter = triage.NormalizeCategory(filter, known)
	}

	out := make([]models.Complaint, 0, len(complaints))
	for _, complaint := range triage.Restrict(complaints, assigned) {
		if filter != "" && complaint.Category != filter {
			continue
		}
		out = append(out, complaint)
	}

	c.JSON(http.StatusOK, gin.H{
		"complaints": out,
		"synced_at":  h.Syncer.SyncedAt(),
		"state":      h.Syncer.State(),
	})
}

// RefreshComplaints forces a fetch past both the local cache and the
// feed's server-side cache. A failure still serves whatever is cached,
// flagged as retryable.
func (h *Handler) RefreshComplaints(c *gin.Context) {
	complaints, err := h.Syncer.ForceRefresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":      h.Localizer.GetString(lang(c), "refresh_failed"),
			"retryable":  true,
			"complaints": complaints,
			"synced_at":  h.Syncer.SyncedAt(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"complaints": complaints,
		"synced_at":  h.Syncer.SyncedAt(),
	})
}

// ListCategories returns the canonical category vocabulary in display
// order.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.Storage.ListCategoryRows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

type responseRequest struct {
	Body string `json:"body" binding:"required"`
}

// CreateResponse records a staff response to a feed complaint. Complaints
// themselves are read-only; responses are the only local write.
func (h *Handler) CreateResponse(c *gin.Context) {
	var req responseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "response body is required"})
		return
	}

	response := &models.Response{
		ComplaintID: c.Param("id"),
		UserID:      c.GetString(CtxUserID),
		Body:        req.Body,
	}
	if err := h.Storage.SaveResponse(response); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save response"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"response": response})
}

// ListResponses returns the staff responses for one complaint, oldest
// first.
func (h *Handler) ListResponses(c *gin.Context) {
	responses, err := h.Storage.ListResponses(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list responses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"responses": responses})
}
