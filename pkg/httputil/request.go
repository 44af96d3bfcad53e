package httputil

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gorilla/mux"
)

// maxMultipartMemory bounds in-memory buffering of multipart uploads; larger
// parts spill to disk.
const maxMultipartMemory = 10 << 20 // 10 MiB

// ParseJSON decodes JSON from the request body into the destination
func ParseJSON(r *http.Request, dest interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// ParseJSONOrError decodes JSON and writes an error response on failure
func ParseJSONOrError(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := ParseJSON(r, dest); err != nil {
		WriteBadRequest(w, err.Error())
		return false
	}
	return true
}

// ParseJSONMap decodes the request body into a generic payload map for
// schema validation
func ParseJSONMap(r *http.Request) (map[string]interface{}, error) {
	payload := make(map[string]interface{})
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return payload, nil
}

// ParsePathString extracts a string path parameter
func ParsePathString(r *http.Request, key string) (string, error) {
	vars := mux.Vars(r)
	str := vars[key]
	if str == "" {
		return "", fmt.Errorf("missing path parameter: %s", key)
	}
	return str, nil
}

// GetPathVars returns all path variables from the request
func GetPathVars(r *http.Request) map[string]string {
	return mux.Vars(r)
}

// ParseMultipartForm parses a multipart form and returns its text fields as a
// generic payload map for schema validation
func ParseMultipartForm(r *http.Request) (map[string]interface{}, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	payload := make(map[string]interface{}, len(r.MultipartForm.Value))
	for key, values := range r.MultipartForm.Value {
		if len(values) > 0 {
			payload[key] = values[0]
		}
	}
	return payload, nil
}

// FormFile returns the named file part, or nil when the part is absent.
// Callers decide whether a missing part is a validation failure.
func FormFile(r *http.Request, key string) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := r.FormFile(key)
	if err == http.ErrMissingFile {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading file part %s: %w", key, err)
	}
	return file, header, nil
}
