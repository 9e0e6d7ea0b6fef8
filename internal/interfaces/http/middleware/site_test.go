package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSiteValidator struct {
	sites map[string]*SiteInfo
}

func (v *stubSiteValidator) ValidateSite(siteID string) (*SiteInfo, error) {
	if info, ok := v.sites[siteID]; ok {
		return info, nil
	}
	return nil, errors.New("site not found")
}

func newSiteTestRouter(cfg SiteMiddlewareConfig, claims map[string]any) (*gin.Engine, *string) {
	var capturedSiteID string

	router := gin.New()
	router.Use(func(c *gin.Context) {
		for k, v := range claims {
			c.Set(k, v)
		}
		c.Next()
	})
	router.Use(SiteMiddlewareWithConfig(cfg))
	router.GET("/test", func(c *gin.Context) {
		capturedSiteID = GetSiteID(c)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router, &capturedSiteID
}

func TestSiteMiddleware_SiteMemberUsesTokenSite(t *testing.T) {
	siteID := uuid.New().String()
	router, captured := newSiteTestRouter(DefaultSiteConfig(), map[string]any{
		JWTSiteIDKey: siteID,
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, siteID, *captured)
}

func TestSiteMiddleware_SiteMemberCannotSelectAnotherSite(t *testing.T) {
	router, _ := newSiteTestRouter(DefaultSiteConfig(), map[string]any{
		JWTSiteIDKey: uuid.New().String(),
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(SiteHeaderKey, uuid.New().String())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSiteMiddleware_SiteMemberRedundantHeaderAllowed(t *testing.T) {
	siteID := uuid.New().String()
	router, captured := newSiteTestRouter(DefaultSiteConfig(), map[string]any{
		JWTSiteIDKey: siteID,
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(SiteHeaderKey, siteID)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, siteID, *captured)
}

func TestSiteMiddleware_SuperuserSelectsSiteViaHeader(t *testing.T) {
	siteID := uuid.New().String()
	router, captured := newSiteTestRouter(DefaultSiteConfig(), map[string]any{
		JWTSuperuserKey: true,
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(SiteHeaderKey, siteID)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, siteID, *captured)
}

func TestSiteMiddleware_NonSuperuserHeaderOnlyRejected(t *testing.T) {
	router, _ := newSiteTestRouter(DefaultSiteConfig(), map[string]any{})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(SiteHeaderKey, uuid.New().String())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSiteMiddleware_MissingSiteRequired(t *testing.T) {
	router, _ := newSiteTestRouter(DefaultSiteConfig(), map[string]any{})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "SITE_REQUIRED")
}

func TestSiteMiddleware_MissingSiteOptional(t *testing.T) {
	cfg := DefaultSiteConfig()
	cfg.Required = false
	router, captured := newSiteTestRouter(cfg, map[string]any{})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, *captured)
}

func TestSiteMiddleware_InvalidSiteIDFormat(t *testing.T) {
	router, _ := newSiteTestRouter(DefaultSiteConfig(), map[string]any{
		JWTSiteIDKey: "not-a-uuid",
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSiteMiddleware_SkipPaths(t *testing.T) {
	router := gin.New()
	router.Use(SiteMiddleware())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSiteMiddleware_ValidatorUnknownSite(t *testing.T) {
	cfg := DefaultSiteConfig()
	cfg.Validator = &stubSiteValidator{sites: map[string]*SiteInfo{}}
	router, _ := newSiteTestRouter(cfg, map[string]any{
		JWTSiteIDKey: uuid.New().String(),
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSiteMiddleware_SuspendedSite(t *testing.T) {
	siteID := uuid.New()
	cfg := DefaultSiteConfig()
	cfg.Validator = &stubSiteValidator{sites: map[string]*SiteInfo{
		siteID.String(): {ID: siteID, Name: "Boutique Hamdallaye", IsActive: false},
	}}
	router, _ := newSiteTestRouter(cfg, map[string]any{
		JWTSiteIDKey: siteID.String(),
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "SITE_SUSPENDED")
}

func TestSiteMiddleware_ActiveSiteSetsName(t *testing.T) {
	siteID := uuid.New()
	cfg := DefaultSiteConfig()
	cfg.Validator = &stubSiteValidator{sites: map[string]*SiteInfo{
		siteID.String(): {ID: siteID, Name: "Boutique Hamdallaye", IsActive: true},
	}}

	var capturedName string
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(JWTSiteIDKey, siteID.String())
		c.Next()
	})
	router.Use(SiteMiddlewareWithConfig(cfg))
	router.GET("/test", func(c *gin.Context) {
		capturedName = GetSiteName(c)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Boutique Hamdallaye", capturedName)
}

func TestGetSiteUUID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	siteUUID, err := GetSiteUUID(c)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, siteUUID)

	expected := uuid.New()
	c.Set(SiteIDKey, expected.String())

	siteUUID, err = GetSiteUUID(c)
	require.NoError(t, err)
	assert.Equal(t, expected, siteUUID)
}

func TestMustGetSiteID_Panics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Panics(t, func() {
		MustGetSiteID(c)
	})
}
