// file: internals/features/school/finance/controller/finance_test.go
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
	financeModel "schoolku_backend/internals/features/school/finance/model"
	financeRoute "schoolku_backend/internals/features/school/finance/route"
	peopleModel "schoolku_backend/internals/features/school/people/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

func newFinanceApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&financeModel.FeeTypeModel{},
		&financeModel.FeeGroupModel{},
		&financeModel.FeeMasterModel{},
		&financeModel.FeePaymentModel{},
		&financeModel.IncomeModel{},
		&financeModel.ExpenseModel{},
		&academicModel.ClassModel{},
		&academicModel.SectionModel{},
		&academicModel.ClassSectionModel{},
		&peopleModel.StudentModel{},
	))

	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	admin := app.Group("/api/a", func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocSchoolID, c.Get("X-School-ID"))
		c.Locals(helperAuth.LocUserID, uuid.NewString())
		c.Locals(helperAuth.LocRole, "admin")
		return c.Next()
	})
	financeRoute.FinanceAdminRoutes(admin, db)
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

type feeFixture struct {
	school  uuid.UUID
	class   academicModel.ClassModel
	section academicModel.ClassSectionModel
	group   financeModel.FeeGroupModel
	feeType financeModel.FeeTypeModel
	student peopleModel.StudentModel
}

func seedFeeFixture(t *testing.T, db *gorm.DB) feeFixture {
	t.Helper()
	f := feeFixture{school: uuid.New()}

	f.class = academicModel.ClassModel{ClassSchoolID: f.school, ClassName: "Grade 1", ClassSlug: "grade-1", ClassIsActive: true}
	require.NoError(t, db.Create(&f.class).Error)
	sec := academicModel.SectionModel{SectionSchoolID: f.school, SectionName: "A"}
	require.NoError(t, db.Create(&sec).Error)
	f.section = academicModel.ClassSectionModel{
		ClassSectionSchoolID:  f.school,
		ClassSectionClassID:   f.class.ClassID,
		ClassSectionSectionID: sec.SectionID,
	}
	require.NoError(t, db.Create(&f.section).Error)

	f.group = financeModel.FeeGroupModel{FeeGroupSchoolID: f.school, FeeGroupName: "Regular"}
	require.NoError(t, db.Create(&f.group).Error)
	f.feeType = financeModel.FeeTypeModel{FeeTypeSchoolID: f.school, FeeTypeName: "Tuition"}
	require.NoError(t, db.Create(&f.feeType).Error)

	f.student = peopleModel.StudentModel{
		StudentSchoolID:       f.school,
		StudentAdmissionNo:    "ADM-001",
		StudentName:           "Budi",
		StudentClassSectionID: &f.section.ClassSectionID,
		StudentIsActive:       true,
	}
	require.NoError(t, db.Create(&f.student).Error)
	return f
}

func createFeeMaster(t *testing.T, app *fiber.App, f feeFixture, amount int64) string {
	t.Helper()
	resp := doReq(t, app, "POST", "/api/a/fee-masters", f.school, fiber.Map{
		"fee_master_class_id": f.class.ClassID,
		"fee_master_group_id": f.group.FeeGroupID,
		"fee_master_type_id":  f.feeType.FeeTypeID,
		"fee_master_amount":   amount,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return dataField(t, resp)["fee_master_id"].(string)
}

func TestFeeMasterCreateValidatesReferences(t *testing.T) {
	app, db := newFinanceApp(t)
	f := seedFeeFixture(t, db)

	// foreign class is rejected
	resp := doReq(t, app, "POST", "/api/a/fee-masters", f.school, fiber.Map{
		"fee_master_class_id": uuid.New(),
		"fee_master_group_id": f.group.FeeGroupID,
		"fee_master_type_id":  f.feeType.FeeTypeID,
		"fee_master_amount":   100000,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// amount must be positive
	resp = doReq(t, app, "POST", "/api/a/fee-masters", f.school, fiber.Map{
		"fee_master_class_id": f.class.ClassID,
		"fee_master_group_id": f.group.FeeGroupID,
		"fee_master_type_id":  f.feeType.FeeTypeID,
		"fee_master_amount":   0,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestFeeMasterDuplicateAssignment(t *testing.T) {
	app, db := newFinanceApp(t)
	f := seedFeeFixture(t, db)
	createFeeMaster(t, app, f, 100000)

	resp := doReq(t, app, "POST", "/api/a/fee-masters", f.school, fiber.Map{
		"fee_master_class_id": f.class.ClassID,
		"fee_master_group_id": f.group.FeeGroupID,
		"fee_master_type_id":  f.feeType.FeeTypeID,
		"fee_master_amount":   200000,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestFeeTypeDeleteGuardedByMasters(t *testing.T) {
	app, db := newFinanceApp(t)
	f := seedFeeFixture(t, db)
	createFeeMaster(t, app, f, 100000)

	resp := doReq(t, app, "DELETE", "/api/a/fee-types/"+f.feeType.FeeTypeID.String(), f.school, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestCashPaymentSettlesImmediately(t *testing.T) {
	app, db := newFinanceApp(t)
	f := seedFeeFixture(t, db)
	masterID := createFeeMaster(t, app, f, 500000)

	resp := doReq(t, app, "POST", "/api/a/fee-payments", f.school, fiber.Map{
		"fee_payment_student_id":    f.student.StudentID,
		"fee_payment_fee_master_id": masterID,
		"fee_payment_amount":        500000,
		"fee_payment_method":        "cash",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := dataField(t, resp)
	assert.Equal(t, "paid", created["fee_payment_status"])
	assert.NotNil(t, created["fee_payment_paid_at"])
	assert.Nil(t, created["redirect_url"])
}

func TestPaymentRejectsForeignStudent(t *testing.T) {
	app, db := newFinanceApp(t)
	f := seedFeeFixture(t, db)
	masterID := createFeeMaster(t, app, f, 500000)

	otherSchool := uuid.New()
	resp := doReq(t, app, "POST", "/api/a/fee-payments", otherSchool, fiber.Map{
		"fee_payment_student_id":    f.student.StudentID,
		"fee_payment_fee_master_id": masterID,
		"fee_payment_amount":        500000,
		"fee_payment_method":        "cash",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Student not found in this school", parseBody(t, resp)["message"])
}

func TestStudentDuesMath(t *testing.T) {
	app, db := newFinanceApp(t)
	f := seedFeeFixture(t, db)
	tuition := createFeeMaster(t, app, f, 500000)

	// second assignment for the same class under a different group
	otherGroup := financeModel.FeeGroupModel{FeeGroupSchoolID: f.school, FeeGroupName: "Books"}
	require.NoError(t, db.Create(&otherGroup).Error)
	require.NoError(t, db.Create(&financeModel.FeeMasterModel{
		FeeMasterSchoolID: f.school,
		FeeMasterClassID:  f.class.ClassID,
		FeeMasterGroupID:  otherGroup.FeeGroupID,
		FeeMasterTypeID:   f.feeType.FeeTypeID,
		FeeMasterAmount:   250000,
	}).Error)

	// one settled payment and one still pending at the gateway
	now := time.Now()
	require.NoError(t, db.Create(&financeModel.FeePaymentModel{
		FeePaymentSchoolID:    f.school,
		FeePaymentStudentID:   f.student.StudentID,
		FeePaymentFeeMasterID: uuid.MustParse(tuition),
		FeePaymentAmount:      300000,
		FeePaymentMethod:      financeModel.FeePaymentMethodCash,
		FeePaymentStatus:      financeModel.FeePaymentStatusPaid,
		FeePaymentPaidAt:      &now,
	}).Error)
	require.NoError(t, db.Create(&financeModel.FeePaymentModel{
		FeePaymentSchoolID:    f.school,
		FeePaymentStudentID:   f.student.StudentID,
		FeePaymentFeeMasterID: uuid.MustParse(tuition),
		FeePaymentAmount:      100000,
		FeePaymentMethod:      financeModel.FeePaymentMethodGateway,
		FeePaymentStatus:      financeModel.FeePaymentStatusPending,
	}).Error)

	resp := doReq(t, app, "GET",
		fmt.Sprintf("/api/a/fee-payments/dues?student_id=%s", f.student.StudentID), f.school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	dues := dataField(t, resp)
	assert.EqualValues(t, 750000, dues["assigned"])
	assert.EqualValues(t, 300000, dues["paid"]) // pending is not money yet
	assert.EqualValues(t, 450000, dues["due"])
}

func TestDuesForStudentWithoutClassSection(t *testing.T) {
	app, db := newFinanceApp(t)
	f := seedFeeFixture(t, db)
	createFeeMaster(t, app, f, 500000)

	loose := peopleModel.StudentModel{
		StudentSchoolID:    f.school,
		StudentAdmissionNo: "ADM-002",
		StudentName:        "Ani",
		StudentIsActive:    true,
	}
	require.NoError(t, db.Create(&loose).Error)

	resp := doReq(t, app, "GET",
		fmt.Sprintf("/api/a/fee-payments/dues?student_id=%s", loose.StudentID), f.school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	dues := dataField(t, resp)
	assert.EqualValues(t, 0, dues["assigned"])
	assert.EqualValues(t, 0, dues["due"])
}

func TestFinanceSummary(t *testing.T) {
	app, db := newFinanceApp(t)
	f := seedFeeFixture(t, db)
	masterID := createFeeMaster(t, app, f, 500000)

	resp := doReq(t, app, "POST", "/api/a/fee-payments", f.school, fiber.Map{
		"fee_payment_student_id":    f.student.StudentID,
		"fee_payment_fee_master_id": masterID,
		"fee_payment_amount":        500000,
		"fee_payment_method":        "cash",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doReq(t, app, "POST", "/api/a/incomes", f.school, fiber.Map{
		"income_title":  "Canteen rent",
		"income_amount": 1000000,
		"income_date":   time.Now(),
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = doReq(t, app, "POST", "/api/a/expenses", f.school, fiber.Map{
		"expense_title":  "Electricity",
		"expense_amount": 400000,
		"expense_date":   time.Now(),
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doReq(t, app, "GET", "/api/a/finance/summary", f.school, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	sum := dataField(t, resp)
	assert.EqualValues(t, 500000, sum["payments_total"])
	assert.EqualValues(t, 1000000, sum["incomes_total"])
	assert.EqualValues(t, 400000, sum["expenses_total"])

	// other tenants see zeroed totals
	resp = doReq(t, app, "GET", "/api/a/finance/summary", uuid.New(), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	sum = dataField(t, resp)
	assert.EqualValues(t, 0, sum["payments_total"])
}

func TestExpenseDeleteNotFound(t *testing.T) {
	app, _ := newFinanceApp(t)
	resp := doReq(t, app, "DELETE", "/api/a/expenses/"+uuid.NewString(), uuid.New(), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
