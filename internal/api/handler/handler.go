package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"complaintdesk/backend/internal/auth"
	"complaintdesk/backend/internal/feed"
	"complaintdesk/backend/internal/hub"
	"complaintdesk/backend/internal/localization"
	"complaintdesk/backend/internal/storage"
)

// Handler carries the dependencies shared by all HTTP endpoints.
type Handler struct {
	Storage   storage.Storage
	Syncer    *feed.Syncer
	Hub       *hub.Service
	JWT       *auth.JWT
	Verifier  *auth.Verifier
	Localizer *localization.Localizer
}

func NewHandler(s storage.Storage, syncer *feed.Syncer, pushHub *hub.Service, jwtSvc *auth.JWT, verifier *auth.Verifier, localizer *localization.Localizer) *Handler {
	return &Handler{
		Storage:   s,
		Syncer:    syncer,
		Hub:       pushHub,
		JWT:       jwtSvc,
		Verifier:  verifier,
		Localizer: localizer,
	}
}

// lang picks the response language from the Accept-Language header.
// Anything that is not English falls back to Hebrew, the service default.
func lang(c *gin.Context) string {
	if strings.HasPrefix(c.GetHeader("Accept-Language"), "en") {
		return "en"
	}
	return "he"
}
