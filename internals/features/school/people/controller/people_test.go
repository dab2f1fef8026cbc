// file: internals/features/school/people/controller/people_test.go
package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	academicModel "schoolku_backend/internals/features/school/academics/model"
	financeModel "schoolku_backend/internals/features/school/finance/model"
	opsModel "schoolku_backend/internals/features/school/operations/model"
	peopleModel "schoolku_backend/internals/features/school/people/model"
	peopleRoute "schoolku_backend/internals/features/school/people/route"
	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

func newPeopleApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&peopleModel.DepartmentModel{},
		&peopleModel.DesignationModel{},
		&peopleModel.StaffModel{},
		&peopleModel.ParentModel{},
		&peopleModel.StudentModel{},
		&peopleModel.StudentEnrollmentModel{},
		&userModel.UserModel{},
		&academicModel.ClassModel{},
		&academicModel.SectionModel{},
		&academicModel.ClassSectionModel{},
		&academicModel.AcademicYearModel{},
		&opsModel.RoomModel{},
		&financeModel.FeePaymentModel{},
	))

	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	admin := app.Group("/api/a", func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocSchoolID, c.Get("X-School-ID"))
		c.Locals(helperAuth.LocUserID, uuid.NewString())
		c.Locals(helperAuth.LocRole, "admin")
		return c.Next()
	})
	peopleRoute.PeopleAdminRoutes(admin, db)
	return app, db
}

func doReq(t *testing.T, app *fiber.App, method, path string, school uuid.UUID, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-School-ID", school.String())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func parseBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func dataField(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	return parseBody(t, resp)["data"].(map[string]any)
}

func TestStaffCreateWithLogin(t *testing.T) {
	app, db := newPeopleApp(t)
	school := uuid.New()

	resp := doReq(t, app, "POST", "/api/a/staff", school, fiber.Map{
		"staff_employee_id": "EMP-001",
		"staff_name":        "Siti Teacher",
		"create_login":      true,
		"login_user_name":   "siti",
		"login_password":    "secret-pass",
		"login_role":        "teacher",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := dataField(t, resp)
	require.NotNil(t, created["staff_user_id"])

	var user userModel.UserModel
	require.NoError(t, db.Where("user_name = ?", "siti").First(&user).Error)
	assert.Equal(t, "teacher", user.UserRole)
	assert.Equal(t, school, user.UserSchoolID)
	assert.True(t, user.CheckPassword("secret-pass"))
}

func TestStaffCreateLoginRequiresCredentials(t *testing.T) {
	app, _ := newPeopleApp(t)
	school := uuid.New()

	resp := doReq(t, app, "POST", "/api/a/staff", school, fiber.Map{
		"staff_employee_id": "EMP-001",
		"staff_name":        "Siti Teacher",
		"create_login":      true,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStaffCreateLoginIsAtomic(t *testing.T) {
	app, db := newPeopleApp(t)
	school := uuid.New()

	taken := userModel.UserModel{UserSchoolID: school, UserName: "siti", UserRole: "staff", UserIsActive: true}
	require.NoError(t, taken.SetPassword("whatever1"))
	require.NoError(t, db.Create(&taken).Error)

	resp := doReq(t, app, "POST", "/api/a/staff", school, fiber.Map{
		"staff_employee_id": "EMP-002",
		"staff_name":        "Second Siti",
		"create_login":      true,
		"login_user_name":   "siti",
		"login_password":    "secret-pass",
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// username conflict rolled the whole transaction back
	var n int64
	require.NoError(t, db.Model(&peopleModel.StaffModel{}).
		Where("staff_school_id = ? AND staff_employee_id = ?", school, "EMP-002").
		Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestStaffEmployeeIDUniquePerTenant(t *testing.T) {
	app, _ := newPeopleApp(t)
	schoolA := uuid.New()
	schoolB := uuid.New()

	payload := fiber.Map{"staff_employee_id": "EMP-001", "staff_name": "Siti"}
	resp := doReq(t, app, "POST", "/api/a/staff", schoolA, payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = doReq(t, app, "POST", "/api/a/staff", schoolA, payload)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp = doReq(t, app, "POST", "/api/a/staff", schoolB, payload)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestDepartmentDeleteGuardedByStaff(t *testing.T) {
	app, _ := newPeopleApp(t)
	school := uuid.New()

	resp := doReq(t, app, "POST", "/api/a/departments", school, fiber.Map{"department_name": "Science"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	deptID := dataField(t, resp)["department_id"].(string)

	resp = doReq(t, app, "POST", "/api/a/staff", school, fiber.Map{
		"staff_employee_id":   "EMP-001",
		"staff_name":          "Siti",
		"staff_department_id": deptID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	staffID := dataField(t, resp)["staff_id"].(string)

	resp = doReq(t, app, "DELETE", "/api/a/departments/"+deptID, school, nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Contains(t, parseBody(t, resp)["message"], "staff members still reference")

	resp = doReq(t, app, "DELETE", "/api/a/staff/"+staffID, school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = doReq(t, app, "DELETE", "/api/a/departments/"+deptID, school, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func seedActiveYear(t *testing.T, db *gorm.DB, school uuid.UUID) academicModel.AcademicYearModel {
	t.Helper()
	year := academicModel.AcademicYearModel{
		AcademicYearSchoolID:  school,
		AcademicYearName:      "2025/2026",
		AcademicYearStartDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		AcademicYearEndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		AcademicYearIsActive:  true,
	}
	require.NoError(t, db.Create(&year).Error)
	return year
}

func seedClassSection(t *testing.T, db *gorm.DB, school uuid.UUID) academicModel.ClassSectionModel {
	t.Helper()
	cls := academicModel.ClassModel{ClassSchoolID: school, ClassName: "Grade 1", ClassSlug: "grade-1", ClassIsActive: true}
	require.NoError(t, db.Create(&cls).Error)
	sec := academicModel.SectionModel{SectionSchoolID: school, SectionName: "A"}
	require.NoError(t, db.Create(&sec).Error)
	cs := academicModel.ClassSectionModel{
		ClassSectionSchoolID:  school,
		ClassSectionClassID:   cls.ClassID,
		ClassSectionSectionID: sec.SectionID,
	}
	require.NoError(t, db.Create(&cs).Error)
	return cs
}

func TestStudentCreateRecordsEnrollment(t *testing.T) {
	app, db := newPeopleApp(t)
	school := uuid.New()
	year := seedActiveYear(t, db, school)
	cs := seedClassSection(t, db, school)

	resp := doReq(t, app, "POST", "/api/a/students", school, fiber.Map{
		"student_admission_no":     "ADM-001",
		"student_name":             "Budi",
		"student_class_section_id": cs.ClassSectionID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	studentID := dataField(t, resp)["student_id"].(string)

	var enr peopleModel.StudentEnrollmentModel
	require.NoError(t, db.Where("enrollment_student_id = ?", studentID).First(&enr).Error)
	assert.Equal(t, year.AcademicYearID, enr.EnrollmentAcademicYearID)
	assert.Equal(t, cs.ClassSectionID, enr.EnrollmentClassSectionID)
}

func TestStudentCreateWithoutActiveYearSkipsEnrollment(t *testing.T) {
	app, db := newPeopleApp(t)
	school := uuid.New()
	cs := seedClassSection(t, db, school)

	resp := doReq(t, app, "POST", "/api/a/students", school, fiber.Map{
		"student_admission_no":     "ADM-001",
		"student_name":             "Budi",
		"student_class_section_id": cs.ClassSectionID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var n int64
	require.NoError(t, db.Model(&peopleModel.StudentEnrollmentModel{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestStudentCreateRejectsForeignClassSection(t *testing.T) {
	app, db := newPeopleApp(t)
	schoolA := uuid.New()
	schoolB := uuid.New()
	cs := seedClassSection(t, db, schoolA)

	resp := doReq(t, app, "POST", "/api/a/students", schoolB, fiber.Map{
		"student_admission_no":     "ADM-001",
		"student_name":             "Budi",
		"student_class_section_id": cs.ClassSectionID,
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Class section not found in this school", parseBody(t, resp)["message"])
}

func seedRoom(t *testing.T, db *gorm.DB, school uuid.UUID, capacity int) opsModel.RoomModel {
	t.Helper()
	room := opsModel.RoomModel{
		RoomSchoolID: school,
		RoomHostelID: uuid.New(),
		RoomNumber:   "R-101",
		RoomCapacity: capacity,
	}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func TestStudentRoomOccupancyLifecycle(t *testing.T) {
	app, db := newPeopleApp(t)
	school := uuid.New()
	room := seedRoom(t, db, school, 1)

	resp := doReq(t, app, "POST", "/api/a/students", school, fiber.Map{
		"student_admission_no": "ADM-001",
		"student_name":         "Budi",
		"student_room_id":      room.RoomID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	studentID := dataField(t, resp)["student_id"].(string)

	var got opsModel.RoomModel
	require.NoError(t, db.First(&got, "room_id = ?", room.RoomID).Error)
	assert.Equal(t, 1, got.RoomOccupied)

	// at capacity, the next placement conflicts
	resp = doReq(t, app, "POST", "/api/a/students", school, fiber.Map{
		"student_admission_no": "ADM-002",
		"student_name":         "Ani",
		"student_room_id":      room.RoomID,
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "room is already full", parseBody(t, resp)["message"])

	// deleting the occupant frees the bed
	resp = doReq(t, app, "DELETE", "/api/a/students/"+studentID, school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, db.First(&got, "room_id = ?", room.RoomID).Error)
	assert.Equal(t, 0, got.RoomOccupied)
}

func TestRoomPlacementGuardIsCapacityKeyed(t *testing.T) {
	app, db := newPeopleApp(t)
	school := uuid.New()
	room := seedRoom(t, db, school, 2)

	// fill the room behind the handler's back, as concurrent placements would
	require.NoError(t, db.Model(&opsModel.RoomModel{}).
		Where("room_id = ?", room.RoomID).
		UpdateColumn("room_occupied", 2).Error)

	resp := doReq(t, app, "POST", "/api/a/students", school, fiber.Map{
		"student_admission_no": "ADM-010",
		"student_name":         "Budi",
		"student_room_id":      room.RoomID,
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "room is already full", parseBody(t, resp)["message"])

	// occupancy never exceeds capacity
	var got opsModel.RoomModel
	require.NoError(t, db.First(&got, "room_id = ?", room.RoomID).Error)
	assert.Equal(t, 2, got.RoomOccupied)
}

func TestStudentDeleteGuardedByPayments(t *testing.T) {
	app, db := newPeopleApp(t)
	school := uuid.New()

	resp := doReq(t, app, "POST", "/api/a/students", school, fiber.Map{
		"student_admission_no": "ADM-001",
		"student_name":         "Budi",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	studentID := uuid.MustParse(dataField(t, resp)["student_id"].(string))

	payment := financeModel.FeePaymentModel{
		FeePaymentSchoolID:    school,
		FeePaymentStudentID:   studentID,
		FeePaymentFeeMasterID: uuid.New(),
		FeePaymentAmount:      500000,
		FeePaymentMethod:      financeModel.FeePaymentMethodCash,
		FeePaymentStatus:      financeModel.FeePaymentStatusPaid,
	}
	require.NoError(t, db.Create(&payment).Error)

	resp = doReq(t, app, "DELETE", "/api/a/students/"+studentID.String(), school, nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Contains(t, parseBody(t, resp)["message"], "fee payments still reference")
}

func TestStudentDeleteRemovesEnrollments(t *testing.T) {
	app, db := newPeopleApp(t)
	school := uuid.New()
	seedActiveYear(t, db, school)
	cs := seedClassSection(t, db, school)

	resp := doReq(t, app, "POST", "/api/a/students", school, fiber.Map{
		"student_admission_no":     "ADM-001",
		"student_name":             "Budi",
		"student_class_section_id": cs.ClassSectionID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	studentID := dataField(t, resp)["student_id"].(string)

	resp = doReq(t, app, "DELETE", "/api/a/students/"+studentID, school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var n int64
	require.NoError(t, db.Unscoped().Model(&peopleModel.StudentEnrollmentModel{}).
		Where("enrollment_student_id = ? AND enrollment_deleted_at IS NULL", studentID).
		Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestParentPhoneUniqueAndDeleteGuard(t *testing.T) {
	app, _ := newPeopleApp(t)
	school := uuid.New()

	resp := doReq(t, app, "POST", "/api/a/parents", school, fiber.Map{
		"parent_name":  "Pak Ahmad",
		"parent_phone": "+62811111111",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	parentID := dataField(t, resp)["parent_id"].(string)

	resp = doReq(t, app, "POST", "/api/a/parents", school, fiber.Map{
		"parent_name":  "Bu Ahmad",
		"parent_phone": "+62811111111",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = doReq(t, app, "POST", "/api/a/students", school, fiber.Map{
		"student_admission_no": "ADM-001",
		"student_name":         "Budi",
		"student_parent_id":    parentID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doReq(t, app, "DELETE", "/api/a/parents/"+parentID, school, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
