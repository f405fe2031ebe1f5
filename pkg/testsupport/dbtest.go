package testsupport

import (
	"database/sql"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// MemoryDSN returns a shared-cache in-memory sqlite DSN unique to the test.
func MemoryDSN(t testing.TB) string {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return "file:" + name + "?mode=memory&cache=shared&_fk=1"
}

// NewSQLiteBunDB opens an in-memory sqlite database wrapped in bun. It is
// closed when the test finishes.
func NewSQLiteBunDB(t testing.TB) *bun.DB {
	t.Helper()
	sqldb, err := sql.Open("sqlite3", MemoryDSN(t))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db
}
