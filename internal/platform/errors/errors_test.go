package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeStartup, http.StatusServiceUnavailable},
		{ErrorCodeInference, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorCodeString(t *testing.T) {
	if ErrorCodeValidation.String() != "invalid_input" {
		t.Fatalf("validation name = %q", ErrorCodeValidation.String())
	}
	if ErrorCodeInference.String() != "inference" {
		t.Fatalf("inference name = %q", ErrorCodeInference.String())
	}
	if ErrorCode(999).String() != "unknown" {
		t.Fatalf("out of range code should be unknown")
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	src := stderrs.New("dimension mismatch")
	wrapped := Wrap(src, ErrorCodeInference, "classify")
	if got := wrapped.Error(); got != "classify: dimension mismatch" {
		t.Fatalf("Wrap().Error = %q", got)
	}
	if stderrs.Unwrap(wrapped) != src {
		t.Fatalf("Wrap did not keep orig")
	}
	if CodeOf(wrapped) != ErrorCodeInference {
		t.Fatalf("CodeOf(Wrap) = %v", CodeOf(wrapped))
	}
	if pe, ok := As(wrapped); !ok || pe.Message() != "classify" {
		t.Fatalf("Message() should exclude the cause")
	}

	deep := fmt.Errorf("outer: %w", wrapped)
	if !IsCode(deep, ErrorCodeInference) {
		t.Fatalf("IsCode should see through fmt wrapping")
	}
	if Root(deep) != src {
		t.Fatalf("Root() = %v", Root(deep))
	}
	if WrapIf(nil, ErrorCodeInference, "ignored") != nil {
		t.Fatalf("WrapIf(nil) should return nil")
	}
}

func TestCopyOnWriteMutators(t *testing.T) {
	base := InvalidInputf("no text provided")
	withField := WithField(base, "text")
	withOp := WithOp(withField, "predict")

	if fe, _ := As(withField); fe.Field() != "text" {
		t.Fatalf("WithField failed")
	}
	if oe, _ := As(withOp); oe.Op() != "predict" {
		t.Fatalf("WithOp failed")
	}
	if b, _ := As(base); b.Field() != "" || b.Op() != "" {
		t.Fatalf("copy-on-write mutated original")
	}

	foreign := stderrs.New("x")
	if WithField(foreign, "f") != foreign {
		t.Fatalf("foreign errors pass through unchanged")
	}
}

func TestWireAndSugar(t *testing.T) {
	if wf := WireFrom(nil); wf != (Wire{}) {
		t.Fatalf("WireFrom(nil) expected zero, got %+v", wf)
	}
	if wf := WireFrom(stderrs.New("boom")); wf.Code != ErrorCodeUnknown || wf.Message != "boom" {
		t.Fatalf("WireFrom(foreign) mismatch: %+v", wf)
	}
	if st, w := HTTP(Startupf("missing %s", "model.json")); st != http.StatusServiceUnavailable || w.Message != "missing model.json" {
		t.Fatalf("HTTP(startup) = %d %+v", st, w)
	}
	if st, _ := HTTP(nil); st != http.StatusOK {
		t.Fatalf("HTTP(nil) status = %d", st)
	}

	if !IsCode(NotFoundf("x"), ErrorCodeNotFound) ||
		!IsCode(InvalidArgf("x"), ErrorCodeInvalidArgument) ||
		!IsCode(InvalidInputf("x"), ErrorCodeValidation) ||
		!IsCode(JSONErrf("x"), ErrorCodeJSON) ||
		!IsCode(PanicErrf("x"), ErrorCodePanic) ||
		!IsCode(Unavailablef("x"), ErrorCodeUnavailable) ||
		!IsCode(Inferencef("x"), ErrorCodeInference) ||
		!IsCode(Startupf("x"), ErrorCodeStartup) ||
		!IsCode(Internalf("x"), ErrorCodeUnknown) {
		t.Fatalf("sugar helpers code mismatch")
	}
	if !IsCode(ErrNotFound, ErrorCodeNotFound) {
		t.Fatalf("ErrNotFound code mismatch")
	}
}
