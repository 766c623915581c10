package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableColumns(t *testing.T, conn *sql.DB, table string) map[string]bool {
	t.Helper()
	rows, err := conn.Query("PRAGMA table_info(" + table + ")")
	require.NoError(t, err)
	defer rows.Close()
	cols := map[string]bool{}
	for rows.Next() {
		var cid int
		var colName, ctype string
		var notnull, pk int
		var dfltVal interface{}
		require.NoError(t, rows.Scan(&cid, &colName, &ctype, &notnull, &dfltVal, &pk))
		cols[colName] = true
	}
	require.NoError(t, rows.Err())
	return cols
}

func TestInitDBCreatesSchema(t *testing.T) {
	conn := setupTestDB(t)

	assert.Equal(t, map[string]bool{"id": true, "word": true, "pronunciation": true}, tableColumns(t, conn, "word"))
	assert.Equal(t, map[string]bool{"id": true, "word_id": true, "date": true}, tableColumns(t, conn, "iteration"))
	assert.Equal(t, map[string]bool{"id": true, "word_id": true, "translation": true}, tableColumns(t, conn, "translation"))
	assert.Equal(t, map[string]bool{"id": true, "date": true}, tableColumns(t, conn, "run"))
}

func TestInitDBIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "again.sqlite3")

	conn, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = CreateWord(ctx, conn, "chleb")
	require.NoError(t, err)
	require.NoError(t, InitDB(ctx, conn))
	require.NoError(t, conn.Close())

	conn, err = Open(ctx, path)
	require.NoError(t, err)
	defer conn.Close()
	n, err := CountWords(ctx, conn)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// Databases created before migrations were tracked already hold the tables.
func TestInitDBAdoptsExistingTables(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "legacy.sqlite3")

	raw, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = raw.Exec(`CREATE TABLE word (id INTEGER NOT NULL PRIMARY KEY, word VARCHAR(255) NOT NULL, pronunciation VARCHAR(255))`)
	require.NoError(t, err)
	_, err = raw.Exec(`CREATE UNIQUE INDEX word_word ON word (word)`)
	require.NoError(t, err)
	_, err = raw.Exec(`INSERT INTO word (word) VALUES ('woda')`)
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	conn, err := Open(ctx, path)
	require.NoError(t, err)
	defer conn.Close()

	exists, err := WordExists(ctx, conn, "woda")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestOpenUnreachablePath(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "db.sqlite3"))
	assert.Error(t, err)
}
