package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataFor(t *testing.T) {
	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeInsufficientStock, http.StatusUnprocessableEntity},
		{CodeStorageUnavailable, http.StatusServiceUnavailable},
		{CodeSchemaInit, http.StatusServiceUnavailable},
		{CodeRateLimit, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.code, tc.status, got)
		}
	}

	if got := MetadataFor("UNKNOWN_CODE").HTTPStatus; got != http.StatusInternalServerError {
		t.Fatalf("unknown code should map to 500, got %d", got)
	}
}

func TestStorageUnavailableIsRetryable(t *testing.T) {
	if !MetadataFor(CodeStorageUnavailable).Retryable {
		t.Fatal("storage unavailable must be retryable")
	}
	if MetadataFor(CodeInsufficientStock).Retryable {
		t.Fatal("insufficient stock must not be retryable")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := Wrap(CodeStorageUnavailable, cause, "all storage candidates exhausted")

	if !stdErrors.Is(err, cause) {
		t.Fatal("wrapped cause lost from chain")
	}
	if err.Code() != CodeStorageUnavailable {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestAsFindsTypedErrorThroughWrapping(t *testing.T) {
	inner := New(CodeInsufficientStock, "cannot sell 3 of widget")
	outer := fmt.Errorf("sell: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error in chain")
	}
	if typed.Code() != CodeInsufficientStock {
		t.Fatalf("unexpected code %s", typed.Code())
	}

	if As(fmt.Errorf("plain")) != nil {
		t.Fatal("expected nil for untyped error")
	}
}

func TestIs(t *testing.T) {
	err := New(CodeNotFound, "stock item not found")
	if !Is(err, CodeNotFound) {
		t.Fatal("expected Is to match code")
	}
	if Is(err, CodeValidation) {
		t.Fatal("expected Is to reject other codes")
	}
	if Is(nil, CodeNotFound) {
		t.Fatal("expected Is(nil) to be false")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeInsufficientStock, "cannot sell").
		WithDetails(map[string]any{"requested": 5, "available": 2})

	details, ok := err.Details().(map[string]any)
	if !ok {
		t.Fatal("expected map details")
	}
	if details["requested"] != 5 {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestDumpCollectsChain(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := Wrap(CodeSchemaInit, cause, "migrating schema")

	dump := Dump(err)
	if dump.Code != CodeSchemaInit {
		t.Fatalf("unexpected dump code %s", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected chain to include cause, got %v", dump.Chain)
	}
}
