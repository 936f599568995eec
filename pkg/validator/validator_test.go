package validator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/validator"
)

func TestIsEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"jane@x.com", true},
		{"b@x.com", true},
		{"first.last@sub.example.org", true},
		{"a@b.c", true},
		{"a@b.c trailing text", true},
		{"a@b.c@d", true},
		{"with space@x.com", true},
		{"bad-email", false},
		{"", false},
		{"@x.com", false},
		{"jane@", false},
		{"jane@com", false},
		{"jane@x.", false},
		{"jane@@x.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, validator.IsEmail(tt.in))
		})
	}
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	t.Run("empty is nil error", func(t *testing.T) {
		t.Parallel()
		var errs validator.ValidationErrors
		errs.Required("sender_email", "me@x.com")
		require.NoError(t, errs.Err())
	})

	t.Run("collects required fields", func(t *testing.T) {
		t.Parallel()
		var errs validator.ValidationErrors
		errs.Required("sender_email", "  ")
		errs.Required("sender_pass", "")
		errs.Required("selected_template", "cert.png")

		err := errs.Err()
		require.Error(t, err)
		assert.Equal(t, "sender_email: is required; sender_pass: is required", err.Error())
		assert.True(t, errs.Has("sender_pass"))
		assert.False(t, errs.Has("selected_template"))

		var ve validator.ValidationErrors
		require.True(t, errors.As(err, &ve))
		assert.Len(t, ve, 2)
	})
}
