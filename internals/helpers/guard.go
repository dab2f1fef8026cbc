// file: internals/helpers/guard.go
package helper

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EnsureUnique counts rows of model matching cond (caller includes the tenant
// filter) and returns a 409 naming label when any exist. Soft-deleted rows are
// excluded by GORM's default scope on the model.
func EnsureUnique(tx *gorm.DB, model any, label, cond string, args ...any) error {
	var n int64
	if err := tx.Model(model).Where(cond, args...).Count(&n).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to check "+label)
	}
	if n > 0 {
		return fiber.NewError(fiber.StatusConflict, label+" already exists")
	}
	return nil
}

// EnsureNoDependents blocks a delete while dependent rows exist, stating the
// count and the blocking relation.
func EnsureNoDependents(tx *gorm.DB, model any, relation, cond string, args ...any) error {
	var n int64
	if err := tx.Model(model).Where(cond, args...).Count(&n).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to check dependent "+relation)
	}
	if n > 0 {
		return fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("cannot delete: %d %s still reference this record", n, relation))
	}
	return nil
}
