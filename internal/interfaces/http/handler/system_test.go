package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bolibana/backend/internal/interfaces/http/dto"
	"github.com/bolibana/backend/tests/testutil"
)

func TestNewSystemHandler(t *testing.T) {
	h := NewSystemHandler()
	assert.NotNil(t, h)
	assert.False(t, h.startTime.IsZero())
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	h := NewSystemHandler()

	tc := testutil.NewTestContextWithRequest(t, testutil.NewJSONRequest(t, http.MethodGet, "/system/info", nil))
	h.GetSystemInfo(tc.Context)

	assert.Equal(t, http.StatusOK, tc.ResponseCode())
	testutil.AssertSuccess(t, tc)

	resp := testutil.DecodeJSONAs[dto.Response](t, tc)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "BoliBana Stock API", data["name"])
	assert.Equal(t, "1.0.0", data["version"])
	assert.NotEmpty(t, data["go_version"])
	assert.NotEmpty(t, data["uptime"])
}

func TestSystemHandler_Ping(t *testing.T) {
	h := NewSystemHandler()

	tc := testutil.NewTestContextWithRequest(t, testutil.NewJSONRequest(t, http.MethodGet, "/system/ping", nil))
	h.Ping(tc.Context)

	assert.Equal(t, http.StatusOK, tc.ResponseCode())
	testutil.AssertSuccess(t, tc)

	resp := testutil.DecodeJSONAs[dto.Response](t, tc)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "pong", data["message"])

	timestamp, _ := data["timestamp"].(string)
	_, err := time.Parse(time.RFC3339, timestamp)
	assert.NoError(t, err)
}

func TestSystemHandler_Health(t *testing.T) {
	h := NewSystemHandler()

	tc := testutil.NewTestContextWithRequest(t, testutil.NewJSONRequest(t, http.MethodGet, "/health", nil))
	h.Health(tc.Context)

	assert.Equal(t, http.StatusOK, tc.ResponseCode())

	resp := testutil.DecodeJSONAs[HealthResponse](t, tc)
	require.Equal(t, "ok", resp.Status)

	_, err := time.Parse(time.RFC3339, resp.Timestamp)
	assert.NoError(t, err)
}
