package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/legit-games/catalog-service/dto"
	"github.com/legit-games/catalog-service/errors"
)

// resourceError writes a StandardError body.
func (s *Server) resourceError(c *gin.Context, status int, title, message string) {
	c.AbortWithStatusJSON(status, dto.StandardError{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     title,
		Message:   message,
		Path:      c.Request.URL.Path,
	})
}

// handleResourceError translates a store or handler error into a StandardError response.
func (s *Server) handleResourceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errors.ErrResourceNotFound):
		s.resourceError(c, http.StatusNotFound, "Resource not found", errors.Message(err))
	case errors.Is(err, errors.ErrIntegrityViolation):
		s.resourceError(c, http.StatusBadRequest, "Database exception", errors.Message(err))
	case errors.Is(err, errors.ErrInvalidRequest):
		s.resourceError(c, http.StatusBadRequest, "Bad request", errors.Message(err))
	default:
		s.Logger.ErrorContext(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
		s.resourceError(c, http.StatusInternalServerError, "Internal error", errors.Descriptions[errors.ErrServerError])
	}
}

// validationError writes a 422 with one message per field.
func (s *Server) validationError(c *gin.Context, fields []dto.FieldMessage) {
	body := dto.ValidationError{
		StandardError: dto.StandardError{
			Timestamp: time.Now().UTC(),
			Status:    http.StatusUnprocessableEntity,
			Error:     "Validation exception",
			Message:   errors.Descriptions[errors.ErrValidation],
			Path:      c.Request.URL.Path,
		},
	}
	for _, f := range fields {
		body.AddError(f.FieldName, f.Message)
	}
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, body)
}

// bindJSON decodes and validates the request body into obj, writing the error
// response and returning false on failure.
func (s *Server) bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]dto.FieldMessage, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, dto.FieldMessage{FieldName: fieldPath(fe), Message: fieldMessage(fe)})
		}
		s.validationError(c, fields)
		return false
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &typeErr):
		s.validationError(c, []dto.FieldMessage{{FieldName: typeErr.Field, Message: "Invalid value"}})
	case errors.As(err, &syntaxErr):
		s.resourceError(c, http.StatusBadRequest, "Bad request", "Malformed JSON body")
	default:
		s.resourceError(c, http.StatusBadRequest, "Bad request", "Invalid request body")
	}
	return false
}

// fieldPath drops struct names from the namespace:
// UserInsertRequest.UserUpdateRequest.email -> email, ProductRequest.categories[0].id -> categories[0].id.
func fieldPath(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" && unicode.IsUpper(rune(p[0])) {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return fe.Field()
	}
	return strings.Join(kept, ".")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required field"
	case "email":
		return "Invalid e-mail"
	case "min":
		return fmt.Sprintf("Must have at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must have at most %s characters", fe.Param())
	case "len":
		return fmt.Sprintf("Must have exactly %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "url":
		return "Invalid URL"
	case "numeric":
		return "Must contain only digits"
	case "pastorpresent":
		return "Date cannot be in the future"
	default:
		return "Invalid value"
	}
}

var validatorsOnce sync.Once

// registerValidators installs the json-tag field names and the custom rules on gin's validator.
func registerValidators() {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		// validate dto.Date as the time.Time it wraps
		v.RegisterCustomTypeFunc(func(f reflect.Value) interface{} {
			if d, ok := f.Interface().(dto.Date); ok {
				return d.Time
			}
			return nil
		}, dto.Date{})
		_ = v.RegisterValidation("pastorpresent", pastOrPresent)
	})
}

// pastOrPresent accepts a zero value or any instant not after now.
func pastOrPresent(fl validator.FieldLevel) bool {
	var t time.Time
	switch v := fl.Field().Interface().(type) {
	case time.Time:
		t = v
	case dto.Date:
		t = v.Time
	default:
		return false
	}
	return t.IsZero() || !t.After(time.Now())
}
