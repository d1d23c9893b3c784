package repository

import (
	"errors"
	"fmt"
	"testing"

	mysqlDriver "github.com/go-sql-driver/mysql"
)

func TestIsDuplicateEntryError(t *testing.T) {
	if !isDuplicateEntryError(fmt.Errorf("insert failed: %w", &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry"})) {
		t.Fatal("expected wrapped 1062 to be detected as duplicate")
	}
	if isDuplicateEntryError(&mysqlDriver.MySQLError{Number: 1146}) {
		t.Fatal("expected 1146 not to be a duplicate entry error")
	}
	if isDuplicateEntryError(errors.New("connection refused")) {
		t.Fatal("expected plain error not to be a duplicate entry error")
	}
}
