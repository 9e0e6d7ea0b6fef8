package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewJSONRequest builds a request with a JSON-encoded body and the
// matching Content-Type header. A nil body yields a bodyless request.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// DecodeJSON parses the recorded response body as a generic map
func DecodeJSON(t *testing.T, tc *TestContext) map[string]any {
	t.Helper()

	var result map[string]any
	require.NoError(t, json.Unmarshal(tc.ResponseBody(), &result),
		"response body is not valid JSON: %s", tc.ResponseBody())
	return result
}

// DecodeJSONAs parses the recorded response body into T
func DecodeJSONAs[T any](t *testing.T, tc *TestContext) T {
	t.Helper()

	var result T
	require.NoError(t, json.Unmarshal(tc.ResponseBody(), &result))
	return result
}

// AssertSuccess checks the standard success envelope
func AssertSuccess(t *testing.T, tc *TestContext) {
	t.Helper()

	resp := DecodeJSON(t, tc)
	success, _ := resp["success"].(bool)
	assert.True(t, success, "expected a success envelope, got %s", tc.ResponseBody())
	assert.Nil(t, resp["error"])
}

// AssertError checks the standard error envelope and its code
func AssertError(t *testing.T, tc *TestContext, expectedCode string) {
	t.Helper()

	resp := DecodeJSON(t, tc)
	success, _ := resp["success"].(bool)
	assert.False(t, success, "expected an error envelope, got %s", tc.ResponseBody())

	errObj, ok := resp["error"].(map[string]any)
	require.True(t, ok, "error object missing from response: %s", tc.ResponseBody())
	assert.Equal(t, expectedCode, errObj["code"])
}
