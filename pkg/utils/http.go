package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response общий конверт ответа API
// swagger:model Response
type Response struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func WriteJSON(w http.ResponseWriter, payload any, code int) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(payload)
}

func WriteData(w http.ResponseWriter, data any, code int) error {
	return WriteJSON(w, Response{Success: true, Data: data}, code)
}

func DecodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func WriteValidationError(w http.ResponseWriter, err error) error {
	res := Response{
		Error:  "invalid request",
		Fields: make(map[string]string),
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, err := range ve {
			field := strings.ToLower(err.Namespace())
			if i := strings.Index(field, "."); i >= 0 {
				field = field[i+1:]
			}
			res.Fields[field] = err.Tag()
		}
	} else if err != nil {
		res.Message = err.Error()
	}

	return WriteJSON(w, res, http.StatusBadRequest)
}

func WriteError(w http.ResponseWriter, message string, code int) error {
	return WriteJSON(w, Response{Error: message}, code)
}

// WriteErrorMessage как WriteError, но с пояснением для клиента.
func WriteErrorMessage(w http.ResponseWriter, message, details string, code int) error {
	return WriteJSON(w, Response{Error: message, Message: details}, code)
}
