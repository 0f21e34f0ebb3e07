package testutil

import (
	"errors"
	"testing"

	apperrors "lendhub/internal/errors"
)

// AppErrorOf returns the *AppError carried anywhere in err's chain.
func AppErrorOf(err error) (*apperrors.AppError, bool) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// AssertAppError fails the test unless err carries an *AppError with code.
// The matched error is returned so callers can inspect its status.
func AssertAppError(t *testing.T, err error, code string) *apperrors.AppError {
	t.Helper()

	appErr, ok := AppErrorOf(err)
	switch {
	case err == nil:
		t.Fatalf("want %s, got no error", code)
	case !ok:
		t.Fatalf("want %s, got %T: %v", code, err, err)
	case appErr.Code != code:
		t.Errorf("want %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
	return appErr
}

// AssertNoError stops the test on any error.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
