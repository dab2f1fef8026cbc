// file: internals/seeds/runner.go
package seeds

import (
	"errors"
	"log"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/constants"
	schoolModel "schoolku_backend/internals/features/school/school/model"
	roleModel "schoolku_backend/internals/features/users/roles/model"
	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
)

// Run provisions the demo tenant: one school, its system roles with the
// default permission slugs, and an admin login. Idempotent on the
// school slug.
func Run(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var school schoolModel.SchoolModel
		err := tx.Where("school_slug = ?", "demo-school").First(&school).Error
		switch {
		case err == nil:
			log.Println("[INFO] Seed skipped, demo school already exists")
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		school = schoolModel.SchoolModel{
			SchoolName: "Demo School",
			SchoolSlug: helper.Slugify("Demo School", 160),
		}
		if err := tx.Create(&school).Error; err != nil {
			return err
		}

		for _, name := range constants.SystemRoles {
			perms, err := sonic.Marshal(constants.DefaultRolePermissions[name])
			if err != nil {
				return err
			}
			role := roleModel.RoleModel{
				RoleSchoolID:    school.SchoolID,
				RoleName:        name,
				RolePermissions: datatypes.JSON(perms),
				RoleIsSystem:    true,
			}
			if err := tx.Create(&role).Error; err != nil {
				return err
			}
		}

		admin := userModel.UserModel{
			UserSchoolID: school.SchoolID,
			UserName:     "admin",
			UserRole:     constants.RoleAdmin,
			UserIsActive: true,
		}
		if err := admin.SetPassword(configs.GetEnv("SEED_ADMIN_PASSWORD", "admin12345")); err != nil {
			return err
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		log.Printf("[INFO] Seeded demo school %s with admin user", school.SchoolID)
		return nil
	})
}
