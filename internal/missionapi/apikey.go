package missionapi

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"

	"github.com/gdg-garage/mission-registration/internal/models"
)

const APIKeyHeader = "X-API-KEY"

// NewAPIKeyMiddleware guards an operation with the X-API-KEY header. While no
// key is stored the operation stays open, which is how local development runs.
func NewAPIKeyMiddleware(api huma.API, db *gorm.DB, now func() time.Time) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		var stored int64
		if err := db.Model(&models.APIKey{}).Count(&stored).Error; err != nil {
			huma.WriteErr(api, ctx, http.StatusInternalServerError, "Failed to check API key")
			return
		}
		if stored == 0 {
			next(ctx)
			return
		}

		apiKey := ctx.Header(APIKeyHeader)
		if apiKey == "" {
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized: API key required")
			return
		}
		var keyModel models.APIKey
		if err := db.Where("key = ?", apiKey).First(&keyModel).Error; err != nil {
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized: invalid API key")
			return
		}
		if keyModel.Expired(now()) {
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized: API key expired")
			return
		}

		db.Model(&keyModel).Update("last_used_at", now())
		next(ctx)
	}
}
