package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	CustomerName string `json:"customerName" binding:"required"`
	Amount       int64  `json:"amount" binding:"gt=0"`
	Status       int    `json:"status" binding:"oneof=0 1 2"`
	Note         string `json:"note" binding:"max=5"`
}

func bindMessage(t *testing.T, body string) string {
	t.Helper()
	var message string
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var req sampleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			message = ValidationMessage(err)
		}
		c.Status(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	return message
}

func TestValidationMessage(t *testing.T) {
	SetupValidator()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing required", `{"amount":1,"status":0}`, "customerName: is required"},
		{"not positive", `{"customerName":"Acme","amount":0,"status":0}`, "amount: must be greater than 0"},
		{"not in set", `{"customerName":"Acme","amount":1,"status":7}`, "status: must be one of: 0 1 2"},
		{"too long", `{"customerName":"Acme","amount":1,"status":0,"note":"abcdefg"}`, "note: must be at most 5 characters"},
		{"malformed json", `{"customerName":`, "invalid request body"},
		{"wrong type", `{"customerName":"Acme","amount":"ten"}`, "amount: expected int64"},
		{"valid", `{"customerName":"Acme","amount":1,"status":2}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bindMessage(t, tt.body))
		})
	}
}

func TestValidationMessage_SeveralFields(t *testing.T) {
	SetupValidator()
	msg := bindMessage(t, `{"amount":0,"status":0}`)
	assert.Contains(t, msg, "customerName: is required")
	assert.Contains(t, msg, "amount: must be greater than 0")
}

func TestValidationMessage_ArrayBody(t *testing.T) {
	SetupValidator()

	var message string
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var reqs []sampleRequest
		if err := c.ShouldBindJSON(&reqs); err != nil {
			message = ValidationMessage(err)
		}
	})
	body := `[{"customerName":"Acme","amount":1,"status":0},{"amount":1,"status":0}]`
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	assert.Equal(t, "customerName: is required", message)
}
