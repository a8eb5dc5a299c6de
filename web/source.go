package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/money/errors"
)

// writeJSONResponse writes a JSON response to the http.ResponseWriter.
// If encoding fails, it writes an error response.
func writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// SourceResponse is the JSON response structure for the source endpoint.
type SourceResponse struct {
	Filepath string             `json:"filepath"`
	Source   string             `json:"source"`
	Errors   []errors.ErrorJSON `json:"errors"`
}

// resolveFilepath returns the absolute path of the file a request is about.
// Without a filepath parameter that is the ledger file itself. Any other file
// must be one the ledger was loaded from.
func (s *Server) resolveFilepath(path string) (string, error) {
	root, err := filepath.Abs(s.file)
	if err != nil {
		return "", fmt.Errorf("invalid ledger file: %w", err)
	}
	if path == "" {
		return root, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid filepath: %w", err)
	}
	if absPath == root {
		return absPath, nil
	}

	if result := s.current().result; result != nil && slices.Contains(result.Files, absPath) {
		return absPath, nil
	}
	return "", fmt.Errorf("access denied: %s is not part of the ledger", path)
}

// buildResponse creates a SourceResponse from the current ledger state.
func (s *Server) buildResponse(filename string, source []byte) *SourceResponse {
	return &SourceResponse{
		Filepath: filename,
		Source:   string(source),
		Errors:   errors.NewJSONFormatter().FormatAllToSlice(s.current().errs),
	}
}

// handleGetSource handles GET requests to /api/source.
// Returns the file content and the errors of the ledger as JSON.
func (s *Server) handleGetSource(w http.ResponseWriter, r *http.Request) {
	filename, err := s.resolveFilepath(r.URL.Query().Get("filepath"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	writeJSONResponse(w, s.buildResponse(filename, content))
}

// handlePutSource handles PUT requests to /api/source.
// Writes the provided content to the file, reloads the ledger and returns
// its errors.
func (s *Server) handlePutSource(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Filepath string `json:"filepath"`
		Source   string `json:"source"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	filename, err := s.resolveFilepath(request.Filepath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := os.WriteFile(filename, []byte(request.Source), 0o600); err != nil {
		http.Error(w, "Failed to write file", http.StatusInternalServerError)
		return
	}

	s.reload(r.Context())

	writeJSONResponse(w, s.buildResponse(filename, []byte(request.Source)))
}
