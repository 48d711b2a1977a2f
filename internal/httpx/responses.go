package httpx

import (
	"encoding/json"
	"maps"
	"net/http"
)

type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Meta    any  `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   ErrorResponseBody `json:"error"`
	Meta    any               `json:"meta,omitempty"`
}

type ErrorResponseBody struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// buildMeta merges the request ID into customMeta. Returns nil when both are empty.
func buildMeta(r *http.Request, customMeta map[string]any) map[string]any {
	requestID := RequestIDFrom(r)
	if requestID == "" && len(customMeta) == 0 {
		return nil
	}
	meta := make(map[string]any, len(customMeta)+1)
	maps.Copy(meta, customMeta)
	if requestID != "" {
		meta["request_id"] = requestID
	}
	return meta
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func JSONSuccessWithRequest(r *http.Request, w http.ResponseWriter, data any, customMeta map[string]any) {
	resp := SuccessResponse{Success: true, Data: data}
	if meta := buildMeta(r, customMeta); meta != nil {
		resp.Meta = meta
	}
	writeJSON(w, http.StatusOK, resp)
}

func JSONErrorWithRequest(r *http.Request, w http.ResponseWriter, statusCode int, code string, message string, details []ErrorDetail) {
	resp := ErrorResponse{
		Error: ErrorResponseBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
	if meta := buildMeta(r, nil); meta != nil {
		resp.Meta = meta
	}
	writeJSON(w, statusCode, resp)
}
