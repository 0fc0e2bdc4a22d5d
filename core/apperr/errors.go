// Package apperr holds the request-scoped error kinds shared by the order
// and catalog services. None of them is fatal to the running process.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports submitted data that cannot become an order.
// Fields maps a field path (e.g. "lines[2].quantity") to a violation code.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Message + " (" + strings.Join(parts, ", ") + ")"
}

// PartNotFoundError lists catalog part numbers referenced by an order that do not exist.
type PartNotFoundError struct {
	PartNumbers []string
}

func (e *PartNotFoundError) Error() string {
	if len(e.PartNumbers) == 1 {
		return fmt.Sprintf("Part %s does not exist", e.PartNumbers[0])
	}
	return fmt.Sprintf("Parts %s do not exist", strings.Join(e.PartNumbers, ", "))
}

// NotFoundError reports a missing order or line.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	switch e.Kind {
	case "order":
		return fmt.Sprintf("PO '%s' not found", e.Key)
	case "line":
		return fmt.Sprintf("Line %s not found", e.Key)
	}
	return fmt.Sprintf("%s %s not found", e.Kind, e.Key)
}

// FormatError reports an uploaded file with the wrong shape.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string { return e.Message }

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsPartNotFound(err error) bool {
	var v *PartNotFoundError
	return errors.As(err, &v)
}

func IsNotFound(err error) bool {
	var v *NotFoundError
	return errors.As(err, &v)
}

func IsFormat(err error) bool {
	var v *FormatError
	return errors.As(err, &v)
}
