package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSwaggerAllowList(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(allowed []string, remoteAddr string) *httptest.ResponseRecorder {
		router := gin.New()
		router.GET("/swagger/*any", SwaggerAllowList(allowed), func(c *gin.Context) {
			c.String(http.StatusOK, "swagger")
		})
		req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	tests := []struct {
		name       string
		allowed    []string
		remoteAddr string
		wantStatus int
	}{
		{"empty list allows everyone", nil, "203.0.113.9:4000", http.StatusOK},
		{"exact ip allowed", []string{"127.0.0.1"}, "127.0.0.1:12345", http.StatusOK},
		{"cidr allowed", []string{"10.0.0.0/8"}, "10.1.2.3:12345", http.StatusOK},
		{"outside the list denied", []string{"10.0.0.0/8", "127.0.0.1"}, "192.168.1.10:12345", http.StatusForbidden},
		{"unparsable entries deny everything", []string{"not-an-ip"}, "127.0.0.1:12345", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(tt.allowed, tt.remoteAddr)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), `"success":false`)
			}
		})
	}
}
