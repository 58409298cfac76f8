package httpapi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// dueDateLayout is the wire format for dates: calendar date, no time.
const dueDateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their json name so validation errors key the
	// same way clients sent them.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldMessages holds the per-field, per-rule messages, mirroring the
// wording clients of this API already rely on.
var fieldMessages = map[string]string{
	"name.required":           "Name is required",
	"name.max":                "Name may not be longer than 255 characters",
	"email.required":          "Email is required",
	"email.email":             "Email must be a valid email address",
	"password.required":       "Password is required",
	"password.min":            "Password must be at least 8 characters",
	"title.required":          "A title is required",
	"title.min":               "A title is required",
	"title.max":               "Title may not be longer than 255 characters",
	"due_date.required":       "Due date is required",
	"priority.oneof":          "Priority must be one of low, medium, high",
	"assignee_email.required": "Assignee email is required",
	"assignee_email.email":    "Assignee email must be a valid email address",
}

// validateStruct runs the declarative rules on a decoded request and
// returns the field→messages map, or nil when the input is valid.
func validateStruct(req any) map[string][]string {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Not a rule failure but a misuse of the validator itself;
		// surface it as an internal failure on a synthetic field.
		return map[string][]string{"_": {err.Error()}}
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		msg, ok := fieldMessages[field+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("The %s field is invalid", field)
		}
		fields[field] = append(fields[field], msg)
	}
	return fields
}

// parseDueDate parses a YYYY-MM-DD due date and rejects dates in the
// past relative to now's calendar day. A non-nil message is a field
// error for the due_date key.
func parseDueDate(value string, now time.Time) (*time.Time, string) {
	due, err := time.ParseInLocation(dueDateLayout, value, now.Location())
	if err != nil {
		return nil, "Due date must be a valid date"
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if due.Before(today) {
		return nil, "Due date can not be in the past"
	}
	return &due, ""
}
