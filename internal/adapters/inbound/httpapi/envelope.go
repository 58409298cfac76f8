package httpapi

import (
	"encoding/json"
	"net/http"
)

// envelope is the uniform response shape for every endpoint. Success
// responses nest the payload under data; error responses carry either
// per-field validation messages or an empty object.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	if data == nil {
		data = map[string]any{}
	}
	writeJSON(w, status, envelope{Status: "success", Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string, fields map[string][]string) {
	var data any = map[string]any{}
	if len(fields) > 0 {
		data = fields
	}
	writeJSON(w, status, envelope{Status: "error", Message: message, Data: data})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding a fully-owned value; a failure here means the connection
	// is gone and there is nothing useful left to send.
	_ = json.NewEncoder(w).Encode(body)
}
