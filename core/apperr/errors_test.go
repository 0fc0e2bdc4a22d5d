package apperr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessages(t *testing.T) {
	assert.Equal(t, "Part X1 does not exist", (&PartNotFoundError{PartNumbers: []string{"X1"}}).Error())
	assert.Equal(t, "Parts X1, X2 do not exist", (&PartNotFoundError{PartNumbers: []string{"X1", "X2"}}).Error())
	assert.Equal(t, "PO 'PO-0007' not found", (&NotFoundError{Kind: "order", Key: "PO-0007"}).Error())
	assert.Equal(t, "Line 12 not found", (&NotFoundError{Kind: "line", Key: "12"}).Error())
	assert.Equal(t, "invalid order lines (lines[0].quantity: must_be_at_least_1, supplier: required)",
		(&ValidationError{Message: "invalid order lines", Fields: map[string]string{
			"supplier":          "required",
			"lines[0].quantity": "must_be_at_least_1",
		}}).Error())
}

func TestKindsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("create: %w", &PartNotFoundError{PartNumbers: []string{"X"}})
	assert.True(t, IsPartNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
	assert.True(t, IsFormat(fmt.Errorf("import: %w", &FormatError{Message: "bad"})))
	assert.True(t, IsNotFound(fmt.Errorf("get: %w", &NotFoundError{Kind: "order"})))
}
