// file: internals/seeds/runner_test.go
package seeds

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schoolku_backend/internals/constants"
	schoolModel "schoolku_backend/internals/features/school/school/model"
	roleModel "schoolku_backend/internals/features/users/roles/model"
	userModel "schoolku_backend/internals/features/users/user/model"
)

func seedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&schoolModel.SchoolModel{},
		&roleModel.RoleModel{},
		&userModel.UserModel{},
	))
	return db
}

func TestRunProvisionsDemoTenant(t *testing.T) {
	db := seedDB(t)
	require.NoError(t, Run(db))

	var school schoolModel.SchoolModel
	require.NoError(t, db.Where("school_slug = ?", "demo-school").First(&school).Error)

	var roles int64
	require.NoError(t, db.Model(&roleModel.RoleModel{}).
		Where("role_school_id = ? AND role_is_system = ?", school.SchoolID, true).
		Count(&roles).Error)
	assert.EqualValues(t, len(constants.SystemRoles), roles)

	var admin userModel.UserModel
	require.NoError(t, db.Where("user_school_id = ? AND user_name = ?", school.SchoolID, "admin").
		First(&admin).Error)
	assert.Equal(t, constants.RoleAdmin, admin.UserRole)
	assert.True(t, admin.CheckPassword("admin12345"))
}

func TestRunIsIdempotent(t *testing.T) {
	db := seedDB(t)
	require.NoError(t, Run(db))
	require.NoError(t, Run(db))

	var schools int64
	require.NoError(t, db.Model(&schoolModel.SchoolModel{}).Count(&schools).Error)
	assert.EqualValues(t, 1, schools)

	var users int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Count(&users).Error)
	assert.EqualValues(t, 1, users)
}
