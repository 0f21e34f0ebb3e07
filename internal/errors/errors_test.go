package errors

import (
	stderrors "errors"
	"net/http"
	"testing"
)

func TestWrapKeepsSentinelAndInternal(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrInternalServer, cause)

	if err.Code != "INTERNAL_ERROR" || err.StatusCode != http.StatusInternalServerError {
		t.Errorf("unexpected code/status: %s/%d", err.Code, err.StatusCode)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected wrapped error to unwrap to the cause")
	}
	if err.Error() != ErrInternalServer.Message {
		t.Errorf("Error() leaked internal detail: %q", err.Error())
	}
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(ErrValidation, "limit must be between 1 and 100")

	if err.Code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %s", err.Code)
	}
	if err.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.StatusCode)
	}
	if err.Message != "limit must be between 1 and 100" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if ErrValidation.Message != "Invalid request parameters" {
		t.Error("sentinel must not be mutated")
	}
}
