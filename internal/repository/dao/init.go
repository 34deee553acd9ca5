package dao

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Event{},
		&Registration{},
		&Participant{},
	)
}

// TruncateTables empties every table created by InitTables.
func TruncateTables(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE participants, registrations, events CASCADE").Error
}

// uniqueViolation reports the name of the unique constraint err violated.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return pgErr.ConstraintName, true
	}

	return "", false
}
