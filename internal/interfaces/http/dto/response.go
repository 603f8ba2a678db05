// Package dto holds the JSON envelopes shared by every HTTP endpoint.
package dto

// Fields are the payload keys merged into a success envelope
type Fields map[string]any

// ErrorResponse is the failure envelope
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewSuccessResponse builds {"success": true, ...fields}. A "success" key in
// fields is overwritten.
func NewSuccessResponse(fields Fields) map[string]any {
	body := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = true
	return body
}

// NewErrorResponse builds {"success": false, "message": message}
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}
