package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ravidu/futureminds/internal/api"
	"github.com/ravidu/futureminds/pkg/logging"
)

var logH = logging.NewLogger("handlers")

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// too late to change the status code here
		logH.Error("error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, api.ErrorResponse{Code: httpCode, Message: message})
}

func decodeRequest(w http.ResponseWriter, r *http.Request, into interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
