package domainerrors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestIs(t *testing.T) {
	err := New(CodeNotFound, "missing")
	if !Is(err, CodeNotFound) {
		t.Fatalf("expected err to match CodeNotFound")
	}
	if Is(err, CodeConflict) {
		t.Fatalf("did not expect err to match CodeConflict")
	}

	wrapped := fmt.Errorf("lookup: %w", err)
	if !Is(wrapped, CodeNotFound) {
		t.Fatalf("expected wrapped err to match CodeNotFound")
	}

	if Is(fmt.Errorf("plain"), CodeNotFound) {
		t.Fatalf("plain errors must not match any code")
	}
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeNotFound:   http.StatusNotFound,
		CodeConflict:   http.StatusConflict,
		CodeBadRequest: http.StatusBadRequest,
		CodeInternal:   http.StatusInternalServerError,
		Code("bogus"):  http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := ToHTTPStatus(code); got != want {
			t.Fatalf("ToHTTPStatus(%q) = %d, want %d", code, got, want)
		}
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CodeConflict, "Record with Swift-code: %s already exist", "AAAABBCCXXX")
	if err.Error() != "Record with Swift-code: AAAABBCCXXX already exist" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
