package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/agentstation/servicemap/pkg/errors"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

// TestOK tests the success envelope.
func TestOK(t *testing.T) {
	w := httptest.NewRecorder()
	OK(w, map[string]string{"test": "data"})

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}
	resp := decode(t, w)
	if resp.Error != nil {
		t.Error("expected Error to be nil")
	}
	data, ok := resp.Data.(map[string]any)
	if !ok || data["test"] != "data" {
		t.Errorf("unexpected data %v", resp.Data)
	}
}

// TestFail tests the Fail helper function.
func TestFail(t *testing.T) {
	resp := Fail("TEST_ERROR", "Test error message", "Additional details")

	if resp.Data != nil {
		t.Error("expected Data to be nil")
	}
	if resp.Error == nil {
		t.Fatal("expected Error to be set")
	}
	if resp.Error.Code != "TEST_ERROR" || resp.Error.Details != "Additional details" {
		t.Errorf("unexpected error %+v", resp.Error)
	}
}

// TestErrorFromType tests mapping typed errors to status codes.
func TestErrorFromType(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", pkgerrors.NewNotFoundError("service", "S9"), http.StatusNotFound, "NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("lookup: %w", pkgerrors.NewNotFoundError("price", "S9")), http.StatusNotFound, "NOT_FOUND"},
		{"validation", pkgerrors.NewValidationError("group", "x", "unknown value"), http.StatusBadRequest, "BAD_REQUEST"},
		{"sentinel validation", fmt.Errorf("bad: %w", pkgerrors.ErrInvalidInput), http.StatusBadRequest, "BAD_REQUEST"},
		{"duplicate", pkgerrors.WrapResource("build", "tree", "", pkgerrors.NewDuplicateError("service", []string{"G1/T1/S1"})), http.StatusConflict, "CONFLICT"},
		{"parse", pkgerrors.WrapResource("load", "datasets", "", &pkgerrors.ParseError{Format: "csv", File: "prices.csv", Line: 3, Message: "bad"}), http.StatusInternalServerError, "DATA_ERROR"},
		{"io", pkgerrors.WrapIO("read", "prices.csv", errors.New("denied")), http.StatusInternalServerError, "DATA_ERROR"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ErrorFromType(w, tt.err)

			if w.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, w.Code)
			}
			resp := decode(t, w)
			if resp.Error == nil || resp.Error.Code != tt.code {
				t.Errorf("expected code %s, got %+v", tt.code, resp.Error)
			}
		})
	}
}

// TestErrorFromType_Suggestions tests that validation suggestions are exposed.
func TestErrorFromType_Suggestions(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorFromType(w, &pkgerrors.ValidationError{
		Field:       "type",
		Value:       "Meal",
		Message:     `unknown value "Meal"`,
		Suggestions: []string{"Meals"},
	})

	resp := decode(t, w)
	if resp.Error == nil || len(resp.Error.Suggestions) != 1 || resp.Error.Suggestions[0] != "Meals" {
		t.Errorf("expected suggestion Meals, got %+v", resp.Error)
	}
}

// TestInternalError_HidesDetails tests that internal errors are not leaked.
func TestInternalError_HidesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	InternalError(w, errors.New("secret path /etc/data"))

	resp := decode(t, w)
	if resp.Error.Details != "An unexpected error occurred" {
		t.Errorf("unexpected details %q", resp.Error.Details)
	}
}
