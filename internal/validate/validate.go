// SPDX-License-Identifier: MIT

// Package validate collects configuration problems so they can be reported together.
package validate

import (
	"fmt"
	"net"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Error is one failed check.
type Error struct {
	Field   string
	Value   any
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError is every failed check of one validation run, in check order.
type ValidationError []Error

func (e ValidationError) Error() string {
	msgs := make([]string, len(e))
	for i, p := range e {
		msgs[i] = p.Error()
	}
	return strings.Join(msgs, "; ")
}

// Fields lists the failing field names.
func (e ValidationError) Fields() []string {
	out := make([]string, len(e))
	for i, p := range e {
		out[i] = p.Field
	}
	return out
}

// Validator accumulates problems; Err turns them into a ValidationError.
type Validator struct {
	problems ValidationError
}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) AddError(field, message string, value any) {
	v.problems = append(v.problems, Error{Field: field, Value: value, Message: message})
}

// Err returns nil when every check passed.
func (v *Validator) Err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return slices.Clone(v.problems)
}

// URL requires an absolute URL with a host and, when schemes is non-empty,
// one of those schemes.
func (v *Validator) URL(field, value string, schemes []string) {
	if value == "" {
		v.AddError(field, "URL cannot be empty", value)
		return
	}
	u, err := url.Parse(value)
	switch {
	case err != nil:
		v.AddError(field, fmt.Sprintf("invalid URL: %v", err), value)
	case u.Host == "":
		v.AddError(field, "URL must have a host", value)
	case len(schemes) > 0 && !slices.Contains(schemes, u.Scheme):
		v.AddError(field, fmt.Sprintf("unsupported URL scheme %q (allowed: %v)", u.Scheme, schemes), value)
	}
}

// ListenAddr requires host:port with a numeric port in 1-65535. The host may be empty.
func (v *Validator) ListenAddr(field, value string) {
	_, portStr, err := net.SplitHostPort(value)
	if err != nil {
		v.AddError(field, fmt.Sprintf("invalid listen address: %v", err), value)
		return
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		v.AddError(field, fmt.Sprintf("port must be a number between 1 and 65535, got %q", portStr), value)
	}
}

func (v *Validator) NotEmpty(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "value cannot be empty", value)
	}
}

func (v *Validator) OneOf(field, value string, allowed []string) {
	if !slices.Contains(allowed, value) {
		v.AddError(field, fmt.Sprintf("value must be one of %v, got %q", allowed, value), value)
	}
}

// PositiveID requires a platform snowflake, which is always > 0.
func (v *Validator) PositiveID(field string, value int64) {
	if value <= 0 {
		v.AddError(field, fmt.Sprintf("must be a positive integer id, got %d", value), value)
	}
}

// FloatRange requires minVal <= value <= maxVal.
func (v *Validator) FloatRange(field string, value, minVal, maxVal float64) {
	if value < minVal || value > maxVal {
		v.AddError(field, fmt.Sprintf("value must be between %g and %g, got %g", minVal, maxVal, value), value)
	}
}

// Custom records check's error, if any, against field.
func (v *Validator) Custom(field string, value any, check func(any) error) {
	if err := check(value); err != nil {
		v.AddError(field, err.Error(), value)
	}
}
