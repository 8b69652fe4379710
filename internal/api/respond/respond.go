// Package respond provides shared JSON and CSV response utilities for API
// handlers.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/albapepper/scoracle-nhl/internal/table"
)

// ErrorResponse is the standard error shape for all API errors.
type ErrorResponse struct {
	Error struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Detail  string   `json:"detail,omitempty"`
		Keys    []string `json:"keys,omitempty"`
	} `json:"error"`
}

// TableResponse wraps a canonical table for JSON output.
type TableResponse struct {
	Columns []string     `json:"columns"`
	Count   int          `json:"count"`
	Data    *table.Table `json:"data" swaggertype:"array,object"`
}

// WriteError sends a structured JSON error response.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	writeError(w, status, resp)
}

// WriteErrorDetail sends a structured error with additional detail.
func WriteErrorDetail(w http.ResponseWriter, status int, code, message, detail string) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Detail = detail
	writeError(w, status, resp)
}

// WriteErrorKeys sends a structured error naming the offending keys.
func WriteErrorKeys(w http.ResponseWriter, status int, code, message string, keys []string) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Keys = keys
	writeError(w, status, resp)
}

func writeError(w http.ResponseWriter, status int, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// WriteJSONObject marshals a Go value to JSON and writes it.
func WriteJSONObject(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteTable writes t as JSON, or as CSV when format is "csv".
func WriteTable(w http.ResponseWriter, t *table.Table, format string) {
	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		t.WriteCSV(w)
		return
	}
	WriteJSONObject(w, http.StatusOK, TableResponse{
		Columns: t.Columns(),
		Count:   t.Len(),
		Data:    t,
	})
}
