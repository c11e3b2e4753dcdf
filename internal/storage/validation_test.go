package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateContext(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, validateContext(context.Background()))
	assert.NoError(t, validateContext(canceled), "cancellation is left to the driver")
	//nolint:staticcheck // nil context is the case under test
	assert.ErrorIs(t, validateContext(nil), ErrNilContext)
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name  string
		value string
		param string
		ok    bool
	}{
		{name: "store name", value: "pantry-storage", param: "name", ok: true},
		{name: "padded", value: "  list-storage  ", param: "name", ok: true},
		{name: "empty", value: "", param: "dbPath"},
		{name: "blank", value: " \t", param: "destPath"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.value, tt.param)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrEmptyString)
			assert.Contains(t, err.Error(), tt.param)
		})
	}
}
