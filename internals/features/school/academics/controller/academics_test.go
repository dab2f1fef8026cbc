// file: internals/features/school/academics/controller/academics_test.go
package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
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
	academicRoute "schoolku_backend/internals/features/school/academics/route"
	financeModel "schoolku_backend/internals/features/school/finance/model"
	peopleModel "schoolku_backend/internals/features/school/people/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

// newAcademicsApp wires the academic routes behind a stub that reads the
// tenant from the X-School-ID header, so tests can act as different schools.
func newAcademicsApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&academicModel.ClassModel{},
		&academicModel.SectionModel{},
		&academicModel.ClassSectionModel{},
		&academicModel.SubjectModel{},
		&academicModel.ClassSubjectModel{},
		&academicModel.AcademicYearModel{},
		&peopleModel.StudentModel{},
		&peopleModel.StudentEnrollmentModel{},
		&financeModel.FeeMasterModel{},
	))

	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	admin := app.Group("/api/a", func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocSchoolID, c.Get("X-School-ID"))
		c.Locals(helperAuth.LocUserID, uuid.NewString())
		c.Locals(helperAuth.LocRole, "admin")
		return c.Next()
	})
	academicRoute.AcademicAdminRoutes(admin, db)
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

func TestClassCRUDRoundTrip(t *testing.T) {
	app, _ := newAcademicsApp(t)
	school := uuid.New()

	resp := doReq(t, app, "POST", "/api/a/classes", school, fiber.Map{"class_name": "Grade 1"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := dataField(t, resp)
	id := created["class_id"].(string)
	assert.Equal(t, "Grade 1", created["class_name"])
	assert.Equal(t, "grade-1", created["class_slug"])

	resp = doReq(t, app, "GET", "/api/a/classes/"+id, school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Grade 1", dataField(t, resp)["class_name"])

	resp = doReq(t, app, "PUT", "/api/a/classes/"+id, school, fiber.Map{"class_name": "Grade One"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := dataField(t, resp)
	assert.Equal(t, "Grade One", updated["class_name"])
	assert.Equal(t, "grade-one", updated["class_slug"])

	resp = doReq(t, app, "DELETE", "/api/a/classes/"+id, school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doReq(t, app, "GET", "/api/a/classes/"+id, school, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestClassNameUniquePerTenant(t *testing.T) {
	app, _ := newAcademicsApp(t)
	schoolA := uuid.New()
	schoolB := uuid.New()

	resp := doReq(t, app, "POST", "/api/a/classes", schoolA, fiber.Map{"class_name": "Grade 1"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// same tenant, case-insensitive duplicate
	resp = doReq(t, app, "POST", "/api/a/classes", schoolA, fiber.Map{"class_name": "grade 1"})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "class name already exists", parseBody(t, resp)["message"])

	// other tenant reuses the name freely
	resp = doReq(t, app, "POST", "/api/a/classes", schoolB, fiber.Map{"class_name": "Grade 1"})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestClassTenantIsolation(t *testing.T) {
	app, _ := newAcademicsApp(t)
	schoolA := uuid.New()
	schoolB := uuid.New()

	resp := doReq(t, app, "POST", "/api/a/classes", schoolA, fiber.Map{"class_name": "Grade 1"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := dataField(t, resp)["class_id"].(string)

	// cross-tenant reads, writes, deletes all see nothing
	resp = doReq(t, app, "GET", "/api/a/classes/"+id, schoolB, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp = doReq(t, app, "PUT", "/api/a/classes/"+id, schoolB, fiber.Map{"class_name": "Hijacked"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp = doReq(t, app, "DELETE", "/api/a/classes/"+id, schoolB, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doReq(t, app, "GET", "/api/a/classes/", schoolB, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := parseBody(t, resp)
	assert.Empty(t, body["data"])
}

func TestClassListPagination(t *testing.T) {
	app, _ := newAcademicsApp(t)
	school := uuid.New()

	for i := 0; i < 25; i++ {
		resp := doReq(t, app, "POST", "/api/a/classes", school,
			fiber.Map{"class_name": fmt.Sprintf("Class %02d", i), "class_display_order": i})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp := doReq(t, app, "GET", "/api/a/classes/?page=3&per_page=10", school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := parseBody(t, resp)
	rows := body["data"].([]any)
	assert.Len(t, rows, 5)
	pg := body["pagination"].(map[string]any)
	assert.EqualValues(t, 25, pg["total"])
	assert.EqualValues(t, 3, pg["total_pages"])
	assert.Equal(t, false, pg["has_next"])
	assert.Equal(t, true, pg["has_prev"])
	assert.EqualValues(t, 5, pg["count"])

	// beyond the last page is empty, not an error
	resp = doReq(t, app, "GET", "/api/a/classes/?page=9&per_page=10", school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, parseBody(t, resp)["data"])
}

func TestClassListSearch(t *testing.T) {
	app, _ := newAcademicsApp(t)
	school := uuid.New()
	for _, name := range []string{"Grade 1", "Grade 2", "Kindergarten"} {
		resp := doReq(t, app, "POST", "/api/a/classes", school, fiber.Map{"class_name": name})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp := doReq(t, app, "GET", "/api/a/classes/?search=grade", school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, parseBody(t, resp)["data"].([]any), 2)
}

func createClassSection(t *testing.T, app *fiber.App, school uuid.UUID) (classID, sectionID, pairID string) {
	t.Helper()
	resp := doReq(t, app, "POST", "/api/a/classes", school, fiber.Map{"class_name": "Grade 1"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	classID = dataField(t, resp)["class_id"].(string)

	resp = doReq(t, app, "POST", "/api/a/sections", school, fiber.Map{"section_name": "A"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	sectionID = dataField(t, resp)["section_id"].(string)

	resp = doReq(t, app, "POST", "/api/a/class-sections", school, fiber.Map{
		"class_section_class_id":   classID,
		"class_section_section_id": sectionID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	pairID = dataField(t, resp)["class_section_id"].(string)
	return
}

func TestClassDeleteGuardedBySections(t *testing.T) {
	app, _ := newAcademicsApp(t)
	school := uuid.New()
	classID, _, pairID := createClassSection(t, app, school)

	resp := doReq(t, app, "DELETE", "/api/a/classes/"+classID, school, nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "cannot delete: 1 class sections still reference this record",
		parseBody(t, resp)["message"])

	// removing the mapping unblocks the delete
	resp = doReq(t, app, "DELETE", "/api/a/class-sections/"+pairID, school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = doReq(t, app, "DELETE", "/api/a/classes/"+classID, school, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestClassSectionPairUnique(t *testing.T) {
	app, _ := newAcademicsApp(t)
	school := uuid.New()
	classID, sectionID, _ := createClassSection(t, app, school)

	resp := doReq(t, app, "POST", "/api/a/class-sections", school, fiber.Map{
		"class_section_class_id":   classID,
		"class_section_section_id": sectionID,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestClassSectionRejectsForeignTenantRefs(t *testing.T) {
	app, _ := newAcademicsApp(t)
	schoolA := uuid.New()
	schoolB := uuid.New()
	classID, sectionID, _ := createClassSection(t, app, schoolA)

	// school B cannot pair school A's class and section
	resp := doReq(t, app, "POST", "/api/a/class-sections", schoolB, fiber.Map{
		"class_section_class_id":   classID,
		"class_section_section_id": sectionID,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSubjectCodeUnique(t *testing.T) {
	app, _ := newAcademicsApp(t)
	school := uuid.New()

	resp := doReq(t, app, "POST", "/api/a/subjects", school,
		fiber.Map{"subject_code": "MATH", "subject_name": "Mathematics"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doReq(t, app, "POST", "/api/a/subjects", school,
		fiber.Map{"subject_code": "math", "subject_name": "Mathematics II"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestClassSubjectAttachDetach(t *testing.T) {
	app, _ := newAcademicsApp(t)
	school := uuid.New()

	resp := doReq(t, app, "POST", "/api/a/classes", school, fiber.Map{"class_name": "Grade 1"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	classID := dataField(t, resp)["class_id"].(string)

	resp = doReq(t, app, "POST", "/api/a/subjects", school,
		fiber.Map{"subject_code": "MATH", "subject_name": "Mathematics"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	subjectID := dataField(t, resp)["subject_id"].(string)

	resp = doReq(t, app, "POST", "/api/a/class-subjects", school, fiber.Map{
		"class_subject_class_id":   classID,
		"class_subject_subject_id": subjectID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	pairID := dataField(t, resp)["class_subject_id"].(string)

	// subject delete is blocked while mapped
	resp = doReq(t, app, "DELETE", "/api/a/subjects/"+subjectID, school, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = doReq(t, app, "DELETE", "/api/a/class-subjects/"+pairID, school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = doReq(t, app, "DELETE", "/api/a/subjects/"+subjectID, school, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAcademicYearActivateIsExclusive(t *testing.T) {
	app, db := newAcademicsApp(t)
	school := uuid.New()

	mkYear := func(name string, from, to time.Time) string {
		resp := doReq(t, app, "POST", "/api/a/academic-years", school, fiber.Map{
			"academic_year_name":       name,
			"academic_year_start_date": from,
			"academic_year_end_date":   to,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		return dataField(t, resp)["academic_year_id"].(string)
	}
	y1 := mkYear("2025/2026", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC))
	y2 := mkYear("2026/2027", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC))

	resp := doReq(t, app, "POST", "/api/a/academic-years/"+y1+"/activate", school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = doReq(t, app, "POST", "/api/a/academic-years/"+y2+"/activate", school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var active int64
	require.NoError(t, db.Model(&academicModel.AcademicYearModel{}).
		Where("academic_year_school_id = ? AND academic_year_is_active = ?", school, true).
		Count(&active).Error)
	assert.EqualValues(t, 1, active)
}

func TestAcademicYearRejectsInvertedDates(t *testing.T) {
	app, _ := newAcademicsApp(t)
	school := uuid.New()

	resp := doReq(t, app, "POST", "/api/a/academic-years", school, fiber.Map{
		"academic_year_name":       "2025/2026",
		"academic_year_start_date": time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		"academic_year_end_date":   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
