package repositories

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"galatide/models"

	"gorm.io/gorm"
)

// translateError maps gorm and driver errors onto the models error taxonomy.
func translateError(entity string, err error) error {
	if err == nil {
		return nil
	}

	var netErr net.Error
	switch {
	case models.IsNotFound(err), models.IsConflict(err), models.IsValidation(err), models.IsStoreUnavailable(err):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.NewNotFound(entity)
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return models.NewConflict(entity, "unique constraint violated")
	case errors.Is(err, gorm.ErrForeignKeyViolated), isForeignKeyViolation(err):
		return models.NewConflict(entity, "still referenced by other records")
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, sql.ErrConnDone), errors.As(err, &netErr):
		return models.ErrorStoreUnavailable{Cause: err}
	}
	return fmt.Errorf("%s: %w", entity, err)
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

func isForeignKeyViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "violates foreign key constraint")
}
