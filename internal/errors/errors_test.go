package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	plain := &AppError{Code: ErrCodeValidation, Message: "bad input"}
	assert.Equal(t, "bad input", plain.Error())

	wrapped := &AppError{Code: ErrCodeInternal, Message: "query failed", Cause: errors.New("conn reset")}
	assert.Equal(t, "query failed: conn reset", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(cause, ErrCodeInternal, "wrapped")

	assert.ErrorIs(t, err, cause)
}

func TestAuthErrorKinds(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		code  ErrorCode
		check func(error) bool
	}{
		{name: "invalid credentials", err: InvalidCredentials(), code: ErrCodeInvalidCredentials, check: IsInvalidCredentials},
		{name: "session expired", err: SessionExpired(), code: ErrCodeSessionExpired, check: IsSessionExpired},
		{name: "duplicate account", err: DuplicateAccount(), code: ErrCodeDuplicateAccount, check: IsDuplicateAccount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.Equal(t, tt.code, GetCode(tt.err))

			// The kind survives wrapping, so callers can classify at any depth.
			deep := fmt.Errorf("handler: %w", tt.err)
			assert.True(t, tt.check(deep))
		})
	}
}

func TestAuthErrorKinds_AreDistinguishable(t *testing.T) {
	assert.False(t, IsInvalidCredentials(SessionExpired()))
	assert.False(t, IsSessionExpired(DuplicateAccount()))
	assert.False(t, IsDuplicateAccount(InvalidCredentials()))
}

func TestInvalidCredentials_DoesNotLeakWhichFieldFailed(t *testing.T) {
	err := InvalidCredentials()
	assert.Empty(t, GetField(err))
	assert.NotContains(t, err.Message, "email not found")
}

func TestDuplicateAccount_FieldIsEmail(t *testing.T) {
	assert.Equal(t, "email", GetField(DuplicateAccount()))
}

func TestGetCode_NonAppError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), GetCode(errors.New("plain")))
	assert.Equal(t, ErrorCode(""), GetCode(nil))
}

func TestWrap_NilError(t *testing.T) {
	require.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
	require.Nil(t, Wrapf(nil, ErrCodeInternal, "ignored %d", 1))
}

func TestValidationField(t *testing.T) {
	err := ValidationField("password", "Password must be at least 8 characters.")
	assert.True(t, IsValidation(err))
	assert.Equal(t, "password", GetField(err))
}
