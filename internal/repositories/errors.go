package repositories

import (
	"errors"

	apperrors "estates/internal/errors"

	"gorm.io/gorm"
)

// translateError maps database failures onto the domain taxonomy. Constraint
// violations surface as Conflict, missing rows as NotFound; anything else
// passes through untouched.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrConflict
	default:
		return err
	}
}
