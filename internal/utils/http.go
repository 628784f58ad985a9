package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/student-portal/models"
)

// fallbackBody is sent when a response value cannot be encoded.
const fallbackBody = `{"msg":"Server error"}`

// WriteJSON encodes data as the JSON body of a response with the given
// status code. Every portal response, success or error, is JSON, so an
// encoding failure is answered with a 500 {"msg"} body rather than plain
// text. The number of body bytes written is returned.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)

	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(fallbackBody))
		return 0, fmt.Errorf("error encoding response body: %w", err)
	}

	w.WriteHeader(statusCode)
	return w.Write(body)
}

// WriteMessage writes a {"msg": msg} body with the given status code.
func WriteMessage(w http.ResponseWriter, msg string, statusCode int) (int, error) {
	return WriteJSON(w, models.MessageResponse{Msg: msg}, statusCode)
}
