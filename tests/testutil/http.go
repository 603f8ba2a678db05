package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PerformJSON sends a JSON request through h and decodes the envelope it
// answers with. A nil body sends an empty request body.
func PerformJSON(t *testing.T, h http.Handler, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return w.Code, resp
}

// JSONResponse decodes the recorded body
func JSONResponse(t *testing.T, tc *TestContext) map[string]any {
	t.Helper()

	var result map[string]any
	require.NoError(t, json.Unmarshal(tc.Recorder.Body.Bytes(), &result), "decode response")
	return result
}

// AssertSuccessResponse checks for {"success": true} without a message
func AssertSuccessResponse(t *testing.T, tc *TestContext) {
	t.Helper()

	resp := JSONResponse(t, tc)
	assert.Equal(t, true, resp["success"])
	assert.NotContains(t, resp, "message")
}

// AssertErrorResponse checks for a failure envelope whose message contains want
func AssertErrorResponse(t *testing.T, tc *TestContext, want string) {
	t.Helper()

	resp := JSONResponse(t, tc)
	assert.Equal(t, false, resp["success"])
	message, ok := resp["message"].(string)
	require.True(t, ok, "failure envelope without message")
	assert.Contains(t, message, want)
}
