package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"agora/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// Report validation errors under the JSON field names clients send.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// viewerName is the username of the requesting user, or "" when anonymous.
func viewerName(c *gin.Context) string {
	if u := middleware.CurrentUser(c); u != nil {
		return u.Username
	}
	return ""
}

func jsonError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// fieldErrors maps a binding error to {field: message}. ok is false when err
// is not a validation error (malformed JSON, for example).
func fieldErrors(err error) (gin.H, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	out := gin.H{}
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = fieldMessage(fe)
	}
	return out, true
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " must not be empty"
	case "email":
		return "must be a valid email address"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	default:
		return fe.Field() + " is invalid"
	}
}

// bindJSON binds the request body and writes a 400 on failure.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		if fields, ok := fieldErrors(err); ok {
			c.JSON(http.StatusBadRequest, fields)
		} else {
			jsonError(c, http.StatusBadRequest, "invalid request body")
		}
		return false
	}
	return true
}
