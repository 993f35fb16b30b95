/*
Package resp provides helpers for sending standardized JSON responses on the ops listener.

The chat protocol itself is plain text lines; these helpers only serve the
optional HTTP surface (/health, /stats).
*/
package resp

import (
	"encoding/json"
	"net/http"

	"github.com/sabihanjum/Socket-Chat-Server/internal/pkg/logx"
)

// JSONResponse is the envelope returned by every ops endpoint.
type JSONResponse struct {
	// Code is 0 for success, non-zero for errors.
	Code int `json:"code"`

	// Message is the status description.
	Message string `json:"message"`

	// Data is the optional payload.
	Data any `json:"data,omitempty"`
}

// RespondJSON sets the content type and writes the payload as JSON.
func RespondJSON(w http.ResponseWriter, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	body, err := json.Marshal(payload)
	if err != nil {
		logx.Error(err, "Error encoding JSON response", "http_status", httpStatus)
		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(body)
}

// RespondSuccess sends an HTTP 200 response wrapping data.
func RespondSuccess(w http.ResponseWriter, data any) {
	RespondJSON(w, http.StatusOK, JSONResponse{Code: 0, Message: "success", Data: data})
}

// RespondError sends an error response with the given HTTP status and message.
func RespondError(w http.ResponseWriter, httpStatus int, message string) {
	RespondJSON(w, httpStatus, JSONResponse{Code: httpStatus, Message: message})
}
