package response

import (
	"encoding/json/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/myscribe/myscribe-server/internal/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	return env
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"status": "ok"}, nil)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content type = %q", ct)
	}
	env := decode(t, rec)
	if !env.Success {
		t.Error("expected success envelope")
	}
}

func TestErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, "no such book", nil)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	env := decode(t, rec)
	if env.Success {
		t.Error("expected failure envelope")
	}
	if env.Error != "no such book" {
		t.Errorf("error = %q", env.Error)
	}
}

func TestHandleErrorMapsDomainCodes(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.NotFound("missing"), http.StatusNotFound},
		{errors.Validation("bad input"), http.StatusBadRequest},
		{errors.Conflict("duplicate"), http.StatusConflict},
		{errors.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		HandleError(rec, tt.err, nil)
		if rec.Code != tt.want {
			t.Errorf("HandleError(%v) = %d, want %d", tt.err, rec.Code, tt.want)
		}
	}
}

func TestHandleErrorUnknown(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, http.ErrServerClosed, nil)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	env := decode(t, rec)
	if env.Error != "internal server error" {
		t.Errorf("error = %q", env.Error)
	}
}
