package dto

import (
	"net/http"

	"github.com/moon8997/my-erp/internal/domain/shared"
)

// GenericErrorMessage is returned for failures that are not domain errors
const GenericErrorMessage = "request could not be processed"

// domainCodeHTTPStatus maps domain error codes to HTTP status codes.
// NOT_FOUND stays 400 because existing clients branch on it.
var domainCodeHTTPStatus = map[string]int{
	shared.CodeInvalidArgument: http.StatusBadRequest,
	shared.CodeNotFound:        http.StatusBadRequest,
	shared.CodeConflict:        http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unknown codes are 400.
func GetHTTPStatus(code string) int {
	if status, ok := domainCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
