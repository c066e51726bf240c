package locations

import (
	"testing"

	"commissary/internal/repository"
	"commissary/pkg/apperrors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*LocationRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewLocationRepository(repository.NewRepository(db)), mock
}

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

// An update carrying only a version and no field changes must not succeed
// silently; nothing would run the conflict check.
func TestUpdateLocationRejectsEmptyChangeSet(t *testing.T) {
	repo, mock := newMockRepository(t)

	_, err := repo.UpdateLocation(7, UpdateLocationRequest{Version: intPtr(2)})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.Code(err))

	// No SQL was issued at all.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLocationStaleVersionIsConflict(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`UPDATE "locations" SET .*"version"=version \+ 1.* WHERE \(\("id" = 7\) AND \("version" = 2\)\) RETURNING "version"`).
		WillReturnRows(sqlmock.NewRows([]string{"version"}))
	mock.ExpectQuery(`SELECT "version" FROM "locations" WHERE \("id" = 7\)`).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(5))

	_, err := repo.UpdateLocation(7, UpdateLocationRequest{
		Name:    strPtr("Kitchen"),
		Version: intPtr(2),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.Code(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
