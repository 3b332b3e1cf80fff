// Package validation declares request schemas and turns binding failures into
// per-field issues. Rules run on gin's validator engine, so Setup must be
// called before the router serves requests.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"tasks-api/internal/errs"
)

var setupOnce sync.Once

// Setup registers field naming and struct-level rules on gin's validator.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		v.RegisterStructValidation(validateUpdateTask, UpdateTaskRequest{})
		v.RegisterStructValidation(validateListTasks, ListTasksParams{})
	})
}

// fieldName reports fields by their json or form name.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// Issues converts an error from gin binding into a list of issues.
func Issues(err error) []errs.Issue {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := make([]errs.Issue, 0, len(ve))
		for _, fe := range ve {
			out = append(out, issue(fe))
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		msg := fmt.Sprintf("Expected %s, received %s", jsonType(typeErr.Type), typeErr.Value)
		return []errs.Issue{{Field: field, Code: "invalid_type", Message: msg}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return []errs.Issue{{Code: "invalid_json", Message: "Invalid JSON body"}}
	}

	return []errs.Issue{{Code: "invalid", Message: err.Error()}}
}

func issue(fe validator.FieldError) errs.Issue {
	is := errs.Issue{Field: fe.Field()}
	switch fe.Tag() {
	case "required":
		is.Code, is.Message = "invalid_type", "Required"
	case "min":
		is.Code, is.Message = "too_small", fmt.Sprintf("String must contain at least %s character(s)", fe.Param())
	case "max":
		is.Code, is.Message = "too_big", fmt.Sprintf("String must contain at most %s character(s)", fe.Param())
	case "gte":
		is.Code, is.Message = "too_small", fmt.Sprintf("Number must be greater than or equal to %s", fe.Param())
	case "lte":
		is.Code, is.Message = "too_big", fmt.Sprintf("Number must be less than or equal to %s", fe.Param())
	case "number":
		is.Code, is.Message = "invalid_type", "Expected integer"
	case "oneof":
		is.Code, is.Message = "invalid_enum_value", "Expected one of: "+strings.Join(strings.Fields(fe.Param()), ", ")
	case "datetime":
		is.Code, is.Message = "invalid_string", "Invalid datetime"
	case "atleastone":
		is.Field = ""
		is.Code, is.Message = "custom", "At least one field must be provided"
	default:
		is.Code, is.Message = "invalid", fmt.Sprintf("Failed on the '%s' rule", fe.Tag())
	}
	return is
}

func jsonType(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Ptr:
		return jsonType(t.Elem())
	}
	return "object"
}
