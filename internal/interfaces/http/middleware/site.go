package middleware

import (
	"net/http"
	"strings"

	"github.com/bolibana/backend/internal/infrastructure/logger"
	"github.com/bolibana/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Site context keys
const (
	SiteIDKey     = "site_id"
	SiteNameKey   = "site_name"
	SiteHeaderKey = "X-Site-ID"
)

// SiteInfo holds the resolved site information
type SiteInfo struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	IsActive bool      `json:"is_active"`
}

// SiteValidator checks that a site exists and returns its state
type SiteValidator interface {
	ValidateSite(siteID string) (*SiteInfo, error)
}

// SiteMiddlewareConfig holds configuration for site middleware
type SiteMiddlewareConfig struct {
	// SkipPaths are paths that don't require site context (e.g., health check)
	SkipPaths []string
	// Required determines if site context is mandatory
	Required bool
	// Validator is an optional validator to check if the site exists and is active
	Validator SiteValidator
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultSiteConfig returns default site middleware configuration
func DefaultSiteConfig() SiteMiddlewareConfig {
	return SiteMiddlewareConfig{
		SkipPaths: []string{"/health", "/healthz", "/ready", "/metrics", "/api/v1/health"},
		Required:  true,
		Validator: nil,
		Logger:    nil,
	}
}

// SiteMiddleware resolves the site a request operates on
func SiteMiddleware() gin.HandlerFunc {
	return SiteMiddlewareWithConfig(DefaultSiteConfig())
}

// SiteMiddlewareWithConfig returns site middleware with custom configuration.
//
// Site members are always bound to the site in their token. Superusers
// have no site of their own and select one per request with the
// X-Site-ID header. A site member sending a header for another site is
// rejected.
func SiteMiddlewareWithConfig(cfg SiteMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath || strings.HasPrefix(path, skipPath+"/") {
				c.Next()
				return
			}
		}

		tokenSiteID := GetJWTSiteID(c)
		headerSiteID := c.GetHeader(SiteHeaderKey)
		superuser := IsJWTSuperuser(c)

		var siteID string
		switch {
		case tokenSiteID != "":
			if headerSiteID != "" && headerSiteID != tokenSiteID && !superuser {
				respondSiteError(c, http.StatusForbidden, dto.ErrCodeForbidden,
					"Cannot act on another site")
				return
			}
			siteID = tokenSiteID
		case headerSiteID != "":
			if !superuser {
				respondSiteError(c, http.StatusForbidden, dto.ErrCodeForbidden,
					"Site selection requires superuser access")
				return
			}
			siteID = headerSiteID
		}

		if siteID != "" {
			if _, err := uuid.Parse(siteID); err != nil {
				respondSiteError(c, http.StatusBadRequest, dto.ErrCodeSiteRequired,
					"Invalid site ID format")
				return
			}
		}

		if siteID == "" && cfg.Required {
			respondSiteError(c, http.StatusBadRequest, dto.ErrCodeSiteRequired,
				"Site identification required")
			return
		}

		var siteInfo *SiteInfo
		if siteID != "" && cfg.Validator != nil {
			var err error
			siteInfo, err = cfg.Validator.ValidateSite(siteID)
			if err != nil {
				log := cfg.Logger
				if log == nil {
					log = logger.FromContext(c.Request.Context())
				}
				log.Warn("Site validation failed",
					zap.String("site_id", siteID),
					zap.Error(err),
				)
				respondSiteError(c, http.StatusBadRequest, dto.ErrCodeSiteRequired,
					"Unknown site")
				return
			}
			if !siteInfo.IsActive {
				respondSiteError(c, http.StatusForbidden, dto.ErrCodeSiteSuspended,
					"Site is suspended")
				return
			}
		}

		if siteID != "" {
			c.Set(SiteIDKey, siteID)
			if siteInfo != nil {
				c.Set(SiteNameKey, siteInfo.Name)
			}

			// Propagate to the request context for the service layer
			ctx := c.Request.Context()
			log := logger.FromContext(ctx)
			ctx, _ = logger.WithSiteID(ctx, log, siteID)
			c.Request = c.Request.WithContext(ctx)

			if cfg.Logger != nil {
				cfg.Logger.Debug("Site resolved",
					zap.String("site_id", siteID),
					zap.Bool("superuser", superuser),
				)
			}
		}

		c.Next()
	}
}

func respondSiteError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(code, message))
}

// GetSiteID retrieves the site ID from gin.Context
func GetSiteID(c *gin.Context) string {
	if siteID, exists := c.Get(SiteIDKey); exists {
		if sid, ok := siteID.(string); ok {
			return sid
		}
	}
	return ""
}

// GetSiteUUID retrieves the site ID as UUID from gin.Context
func GetSiteUUID(c *gin.Context) (uuid.UUID, error) {
	siteID := GetSiteID(c)
	if siteID == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(siteID)
}

// GetSiteName retrieves the validated site name from gin.Context
func GetSiteName(c *gin.Context) string {
	if siteName, exists := c.Get(SiteNameKey); exists {
		if name, ok := siteName.(string); ok {
			return name
		}
	}
	return ""
}

// MustGetSiteID retrieves the site ID from gin.Context or panics if not found.
// Use this only in handlers where the site is guaranteed to exist.
func MustGetSiteID(c *gin.Context) string {
	siteID := GetSiteID(c)
	if siteID == "" {
		panic("site_id not found in context")
	}
	return siteID
}

// MustGetSiteUUID retrieves the site ID as UUID or panics if not found
func MustGetSiteUUID(c *gin.Context) uuid.UUID {
	siteUUID, err := GetSiteUUID(c)
	if err != nil || siteUUID == uuid.Nil {
		panic("valid site_id not found in context")
	}
	return siteUUID
}

// OptionalSiteMiddleware creates middleware that doesn't require a site.
// Platform routes served to superusers use this.
func OptionalSiteMiddleware() gin.HandlerFunc {
	cfg := DefaultSiteConfig()
	cfg.Required = false
	return SiteMiddlewareWithConfig(cfg)
}
