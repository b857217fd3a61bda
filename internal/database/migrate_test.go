package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMigrations(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"000001_a.up.sql":   "CREATE TABLE a (id NUMBER);\n",
		"000001_a.down.sql": "DROP TABLE a",
		"000002_b.up.sql":   "CREATE TABLE b (id NUMBER)",
		"000002_b.down.sql": "DROP TABLE b;",
		"README.md":         "not a migration",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestMigrationFiles(t *testing.T) {
	dir := writeMigrations(t)

	up, err := MigrationFiles(dir, DirectionUp)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_a.up.sql", "000002_b.up.sql"}, up)

	down, err := MigrationFiles(dir, DirectionDown)
	require.NoError(t, err)
	assert.Equal(t, []string{"000002_b.down.sql", "000001_a.down.sql"}, down)

	_, err = MigrationFiles(dir, "sideways")
	assert.Error(t, err)

	_, err = MigrationFiles(filepath.Join(dir, "missing"), DirectionUp)
	assert.Error(t, err)
}

func TestRunMigrations(t *testing.T) {
	dir := writeMigrations(t)

	t.Run("up", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE a (id NUMBER)").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE TABLE b (id NUMBER)").WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, RunMigrations(context.Background(), db, dir, DirectionUp))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("down stops on error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta("DROP TABLE b")).WillReturnError(errors.New("ORA-00942: table or view does not exist"))

		err = RunMigrations(context.Background(), db, dir, DirectionDown)
		assert.ErrorContains(t, err, "000002_b.down.sql")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
