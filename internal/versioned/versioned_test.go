package versioned

import (
	"testing"

	"commissary/pkg/apperrors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
)

func newMockDB(t *testing.T) (*goqu.Database, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return goqu.New("postgres", db), mock
}

func intPtr(v int) *int { return &v }

func TestUpdateIncrementsVersionInOneStatement(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`UPDATE "locations" SET .*"version"=version \+ 1.* WHERE \(\("id" = 7\) AND \("version" = 2\)\) RETURNING "version"`).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(3))

	newVersion, err := Update(db, "locations", "Location", 7, goqu.Record{"name": "Kitchen"}, intPtr(2))
	require.NoError(t, err)
	assert.Equal(t, 3, newVersion)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateVersionMismatchIsConflict(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`UPDATE "locations"`).
		WillReturnRows(sqlmock.NewRows([]string{"version"}))
	mock.ExpectQuery(`SELECT "version" FROM "locations" WHERE \("id" = 7\)`).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(5))

	_, err := Update(db, "locations", "Location", 7, goqu.Record{"name": "Kitchen"}, intPtr(2))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.Code(err))
	assert.Contains(t, err.Error(), "expected 2, found 5")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingRowIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`UPDATE "locations"`).
		WillReturnRows(sqlmock.NewRows([]string{"version"}))
	mock.ExpectQuery(`SELECT "version" FROM "locations"`).
		WillReturnRows(sqlmock.NewRows([]string{"version"}))

	_, err := Update(db, "locations", "Location", 99, goqu.Record{"name": "Kitchen"}, intPtr(2))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.Code(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWithoutExpectedVersionSkipsCheck(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`UPDATE "locations" SET .* WHERE \("id" = 7\) RETURNING "version"`).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(4))

	newVersion, err := Update(db, "locations", "Location", 7, goqu.Record{"name": "Kitchen"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, newVersion)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveFlipsStatusWithVersionBump(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`UPDATE "item_types" SET .*"status"='inactive'.* RETURNING "version"`).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(2))

	newVersion, err := Archive(db, "item_types", "Item type", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, newVersion)
	assert.NoError(t, mock.ExpectationsWereMet())
}
