// Package versioned is the one optimistic-concurrency primitive shared by
// every mutable reference entity (locations, item types). Each row carries
// an integer version; an update supplying a stale version is rejected with a
// conflict and applies nothing.
package versioned

import (
	"fmt"

	"commissary/pkg/apperrors"
	"commissary/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

// Conn is the slice of goqu.Database (or TxDatabase) the primitive needs.
type Conn interface {
	Update(table interface{}) *goqu.UpdateDataset
	From(table ...interface{}) *goqu.SelectDataset
}

// Update applies changes to the row and increments its version, in one
// statement, so no writer can interleave between the version check and the
// bump. A nil expectedVersion skips the check (last write wins). Returns the
// new version.
func Update(db Conn, table, entity string, id int, changes goqu.Record, expectedVersion *int) (int, error) {
	record := goqu.Record{}
	for column, value := range changes {
		record[column] = value
	}
	record["version"] = goqu.L("version + 1")
	record["updated_at"] = goqu.L("NOW()")

	query := db.Update(table).
		Set(record).
		Where(goqu.Ex{"id": id})
	if expectedVersion != nil {
		query = query.Where(goqu.Ex{"version": *expectedVersion})
	}

	var newVersion int
	found, err := query.Returning("version").Executor().ScanVal(&newVersion)
	if err != nil {
		return 0, fmt.Errorf("failed to update %s %d: %w", entity, id, err)
	}
	if found {
		return newVersion, nil
	}

	// Zero rows: the row is either gone or at a different version.
	var stored int
	exists, err := db.From(table).
		Select("version").
		Where(goqu.Ex{"id": id}).
		Executor().
		ScanVal(&stored)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s %d version: %w", entity, id, err)
	}
	if !exists {
		return 0, apperrors.NewNotFound(entity)
	}
	if expectedVersion == nil {
		return 0, fmt.Errorf("update %s %d matched no rows", entity, id)
	}

	return 0, apperrors.NewConflict(fmt.Sprintf(
		"Version mismatch: expected %d, found %d", *expectedVersion, stored))
}

// Archive soft deletes a versioned row: status flips to inactive and the
// version bumps like any other committed update. The row persists for audit
// and history.
func Archive(db Conn, table, entity string, id int) (int, error) {
	return Update(db, table, entity, id, goqu.Record{"status": models.StatusInactive}, nil)
}
