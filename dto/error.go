package dto

import "time"

// FieldMessage names one rejected field.
type FieldMessage struct {
	FieldName string `json:"fieldName"`
	Message   string `json:"message"`
}

// StandardError is the error body of resource endpoints.
type StandardError struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// ValidationError adds the per-field messages of a 422 response.
type ValidationError struct {
	StandardError
	Errors []FieldMessage `json:"errors"`
}

// AddError appends a field message.
func (v *ValidationError) AddError(field, message string) {
	v.Errors = append(v.Errors, FieldMessage{FieldName: field, Message: message})
}
