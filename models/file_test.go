package models

import (
	"errors"
	"testing"

	"github.com/dayflowhq/dayflow_backend/utils"
	"gorm.io/gorm"
)

func TestNotFoundOrKeepsRealErrors(t *testing.T) {
	if got := notFoundOr(gorm.ErrRecordNotFound); !errors.Is(got, utils.ErrorRecordNotFound) {
		t.Fatalf("missing record mapped to %v, want the not-found sentinel", got)
	}

	// a database outage must not masquerade as a 404
	dbDown := errors.New("dial tcp 127.0.0.1:3306: connection refused")
	if got := notFoundOr(dbDown); !errors.Is(got, dbDown) {
		t.Fatalf("database error mapped to %v, want passthrough", got)
	}
	if got := notFoundOr(dbDown); errors.Is(got, utils.ErrorRecordNotFound) {
		t.Fatal("database error must not become not-found")
	}

	if got := notFoundOr(nil); got != nil {
		t.Fatalf("nil error mapped to %v", got)
	}
}
