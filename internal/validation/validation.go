// Package validation runs declarative field rules against a request before
// its handler executes. Every rule is evaluated and all failures are reported
// together in a single 400 response.
package validation

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/hostsapi/hosts-api/pkg/middleware"
)

// ErrorKind tags every validation failure response.
const ErrorKind = "VALIDATION_ERROR"

// Location names the part of the request a field is read from.
type Location string

const (
	LocationPath  Location = "path"
	LocationQuery Location = "query"
	LocationBody  Location = "body"
)

// FieldError describes one failing rule.
type FieldError struct {
	Field    string      `json:"field"`
	Message  string      `json:"message"`
	Value    interface{} `json:"value"`
	Location Location    `json:"location"`
}

// Response is the body written when validation fails.
type Response struct {
	Error  string       `json:"error"`
	Errors []FieldError `json:"errors"`
}

var validate = validator.New()

type check struct {
	message string
	valid   func(v interface{}) bool
}

// Rule is an ordered list of checks for one field. Checks stop at the first
// failure so each rule reports at most one error.
type Rule struct {
	field      string
	in         Location
	optional   bool
	allowEmpty bool
	checks     []check
}

// Param starts a rule for a path parameter.
func Param(field string) Rule { return Rule{field: field, in: LocationPath} }

// Query starts a rule for a query string parameter.
func Query(field string) Rule { return Rule{field: field, in: LocationQuery} }

// Body starts a rule for a field of the decoded JSON body.
func Body(field string) Rule { return Rule{field: field, in: LocationBody} }

// Optional skips the rule when the field is absent (or null in a body).
func (r Rule) Optional() Rule {
	r.optional = true
	return r
}

// AllowEmpty accepts a string that is blank after trimming without running
// the checks, so handlers can treat it as "no value".
func (r Rule) AllowEmpty() Rule {
	r.allowEmpty = true
	return r
}

// Check appends a custom predicate.
func (r Rule) Check(message string, valid func(v interface{}) bool) Rule {
	checks := make([]check, len(r.checks), len(r.checks)+1)
	copy(checks, r.checks)
	r.checks = append(checks, check{message: message, valid: valid})
	return r
}

func (r Rule) IsString(message string) Rule {
	return r.Check(message, func(v interface{}) bool {
		_, ok := v.(string)
		return ok
	})
}

// NotEmpty requires a string that is non-empty after trimming.
func (r Rule) NotEmpty(message string) Rule {
	return r.Check(message, func(v interface{}) bool {
		s, ok := v.(string)
		return ok && strings.TrimSpace(s) != ""
	})
}

// IsEmail requires a basic local@domain shape.
func (r Rule) IsEmail(message string) Rule {
	return r.Check(message, func(v interface{}) bool {
		s, ok := v.(string)
		return ok && validate.Var(strings.TrimSpace(s), "required,email") == nil
	})
}

// IsInt requires an integer (or integer string) within [min, max].
// A max below min leaves the range open-ended.
func (r Rule) IsInt(min, max int, message string) Rule {
	tag := "gte=" + strconv.Itoa(min)
	if max >= min {
		tag += ",lte=" + strconv.Itoa(max)
	}
	return r.Check(message, func(v interface{}) bool {
		n, ok := toInt(v)
		return ok && validate.Var(n, tag) == nil
	})
}

func toInt(v interface{}) (int, bool) {
	switch t := v.(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		return n, err == nil
	case float64:
		n := int(t)
		return n, float64(n) == t
	case int:
		return t, true
	}
	return 0, false
}

func (r Rule) lookup(c *gin.Context) (interface{}, bool) {
	switch r.in {
	case LocationPath:
		v, ok := c.Params.Get(r.field)
		return v, ok
	case LocationQuery:
		return c.GetQuery(r.field)
	case LocationBody:
		v, ok := middleware.Body(c)[r.field]
		return v, ok && v != nil
	}
	return nil, false
}

// Evaluate runs every rule against c and returns the failures in rule order.
func Evaluate(c *gin.Context, rules ...Rule) []FieldError {
	var errs []FieldError
	for _, r := range rules {
		v, present := r.lookup(c)
		if !present {
			if r.optional {
				continue
			}
			v = nil
		}
		if s, ok := v.(string); ok && r.allowEmpty && strings.TrimSpace(s) == "" {
			continue
		}
		for _, ck := range r.checks {
			if !ck.valid(v) {
				errs = append(errs, FieldError{Field: r.field, Message: ck.message, Value: v, Location: r.in})
				break
			}
		}
	}
	return errs
}

// Validate returns a middleware that aborts with 400 when any rule fails.
func Validate(rules ...Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		if errs := Evaluate(c, rules...); len(errs) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, Response{Error: ErrorKind, Errors: errs})
			return
		}
		c.Next()
	}
}
