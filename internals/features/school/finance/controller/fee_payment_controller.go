// file: internals/features/school/finance/controller/fee_payment_controller.go
package controller

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	financeDTO "schoolku_backend/internals/features/school/finance/dto"
	financeModel "schoolku_backend/internals/features/school/finance/model"
	financeService "schoolku_backend/internals/features/school/finance/service"
	peopleModel "schoolku_backend/internals/features/school/people/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type FeePaymentController struct {
	DB *gorm.DB
}

// GET /api/a/fee-payments?student_id=&status=
func (ctl *FeePaymentController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&financeModel.FeePaymentModel{}).Where("fee_payment_school_id = ?", schoolID)
	if v := strings.TrimSpace(c.Query("student_id")); v != "" {
		sid, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student_id filter")
		}
		q = q.Where("fee_payment_student_id = ?", sid)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("fee_payment_status = ?", strings.ToLower(status))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count fee payments")
	}
	var rows []financeModel.FeePaymentModel
	if err := q.Order("fee_payment_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list fee payments")
	}
	return helper.JsonList(c, "Fee payments fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/fee-payments
// Cash settles immediately. Gateway opens a hosted checkout and stores
// the pending row with its Snap token.
func (ctl *FeePaymentController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req financeDTO.CreateFeePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var resp financeDTO.FeePaymentResponse
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var student peopleModel.StudentModel
		if err := tx.Where("student_id = ? AND student_school_id = ?", req.StudentID, schoolID).
			First(&student).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Student not found in this school")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check student")
		}
		var master financeModel.FeeMasterModel
		if err := tx.Where("fee_master_id = ? AND fee_master_school_id = ?", req.FeeMasterID, schoolID).
			First(&master).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Fee master not found in this school")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check fee master")
		}

		row := financeModel.FeePaymentModel{
			FeePaymentSchoolID:    schoolID,
			FeePaymentStudentID:   student.StudentID,
			FeePaymentFeeMasterID: master.FeeMasterID,
			FeePaymentAmount:      req.Amount,
			FeePaymentMethod:      req.Method,
		}

		switch req.Method {
		case financeModel.FeePaymentMethodCash:
			now := time.Now()
			row.FeePaymentStatus = financeModel.FeePaymentStatusPaid
			row.FeePaymentPaidAt = &now
		case financeModel.FeePaymentMethodGateway:
			orderID := fmt.Sprintf("FEE-%s", uuid.NewString())
			token, redirect, err := financeService.GenerateSnapToken(orderID, req.Amount,
				"School fee for "+student.StudentName, financeService.PayerInput{Name: student.StudentName})
			if err != nil {
				return fiber.NewError(fiber.StatusBadGateway, "Failed to open payment gateway session")
			}
			row.FeePaymentStatus = financeModel.FeePaymentStatusPending
			row.FeePaymentOrderID = &orderID
			row.FeePaymentSnapToken = &token
			resp.RedirectURL = &redirect
		}

		if err := tx.Create(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to record fee payment")
		}
		resp.FeePaymentModel = row
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Fee payment recorded", resp)
}

// GET /api/a/fee-payments/dues?student_id=
// due = sum of masters assigned to the student's class minus settled
// payments.
func (ctl *FeePaymentController) Dues(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	studentID, err := uuid.Parse(strings.TrimSpace(c.Query("student_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id query is required")
	}

	var student peopleModel.StudentModel
	if err := ctl.DB.Where("student_id = ? AND student_school_id = ?", studentID, schoolID).
		First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	var assigned int64
	if student.StudentClassSectionID != nil {
		err := ctl.DB.Model(&financeModel.FeeMasterModel{}).
			Where(`fee_master_school_id = ? AND fee_master_class_id = (
				SELECT class_section_class_id FROM class_sections
				WHERE class_section_id = ? AND class_section_deleted_at IS NULL)`,
				schoolID, *student.StudentClassSectionID).
			Select("COALESCE(SUM(fee_master_amount), 0)").
			Scan(&assigned).Error
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to total assigned fees")
		}
	}

	var paid int64
	if err := ctl.DB.Model(&financeModel.FeePaymentModel{}).
		Where("fee_payment_school_id = ? AND fee_payment_student_id = ? AND fee_payment_status = ?",
			schoolID, studentID, financeModel.FeePaymentStatusPaid).
		Select("COALESCE(SUM(fee_payment_amount), 0)").
		Scan(&paid).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to total payments")
	}

	return helper.JsonOK(c, "Student dues", financeDTO.StudentDuesResponse{
		StudentID: studentID,
		Assigned:  assigned,
		Paid:      paid,
		Due:       assigned - paid,
	})
}

// GET /api/a/finance/summary: school-wide totals for the dashboard.
func (ctl *FeePaymentController) Summary(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var paymentsTotal, incomesTotal, expensesTotal int64
	if err := ctl.DB.Model(&financeModel.FeePaymentModel{}).
		Where("fee_payment_school_id = ? AND fee_payment_status = ?",
			schoolID, financeModel.FeePaymentStatusPaid).
		Select("COALESCE(SUM(fee_payment_amount), 0)").
		Scan(&paymentsTotal).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to total fee payments")
	}
	if err := ctl.DB.Model(&financeModel.IncomeModel{}).
		Where("income_school_id = ?", schoolID).
		Select("COALESCE(SUM(income_amount), 0)").
		Scan(&incomesTotal).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to total incomes")
	}
	if err := ctl.DB.Model(&financeModel.ExpenseModel{}).
		Where("expense_school_id = ?", schoolID).
		Select("COALESCE(SUM(expense_amount), 0)").
		Scan(&expensesTotal).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to total expenses")
	}

	return helper.JsonOK(c, "Finance summary", fiber.Map{
		"payments_total": paymentsTotal,
		"incomes_total":  incomesTotal,
		"expenses_total": expensesTotal,
	})
}
