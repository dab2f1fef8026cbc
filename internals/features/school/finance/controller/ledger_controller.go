// file: internals/features/school/finance/controller/ledger_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	financeDTO "schoolku_backend/internals/features/school/finance/dto"
	financeModel "schoolku_backend/internals/features/school/finance/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type IncomeController struct {
	DB *gorm.DB
}

// GET /api/a/incomes
func (ctl *IncomeController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&financeModel.IncomeModel{}).Where("income_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		q = q.Where("lower(income_title) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count incomes")
	}
	var rows []financeModel.IncomeModel
	if err := q.Order("income_date DESC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list incomes")
	}
	return helper.JsonList(c, "Incomes fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/incomes
func (ctl *IncomeController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req financeDTO.CreateIncomeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	created := req.ToModel(schoolID)
	if err := ctl.DB.Create(&created).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create income")
	}
	return helper.JsonCreated(c, "Income created", created)
}

// PUT /api/a/incomes/:id
func (ctl *IncomeController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req financeDTO.UpdateIncomeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row financeModel.IncomeModel
	if err := ctl.DB.Where("income_id = ? AND income_school_id = ?", id, schoolID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Income not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch income")
	}
	if req.Title != nil {
		row.IncomeTitle = *req.Title
	}
	if req.Amount != nil {
		row.IncomeAmount = *req.Amount
	}
	if req.Date != nil {
		row.IncomeDate = *req.Date
	}
	if req.Note != nil {
		row.IncomeNote = req.Note
	}
	if err := ctl.DB.Save(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update income")
	}
	return helper.JsonUpdated(c, "Income updated", row)
}

// DELETE /api/a/incomes/:id
func (ctl *IncomeController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	res := ctl.DB.Where("income_id = ? AND income_school_id = ?", id, schoolID).
		Delete(&financeModel.IncomeModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete income")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Income not found")
	}
	return helper.JsonDeleted(c, "Income deleted", fiber.Map{"income_id": id})
}

/* =========================================================
   EXPENSES
   ========================================================= */

type ExpenseController struct {
	DB *gorm.DB
}

// GET /api/a/expenses
func (ctl *ExpenseController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&financeModel.ExpenseModel{}).Where("expense_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		q = q.Where("lower(expense_title) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count expenses")
	}
	var rows []financeModel.ExpenseModel
	if err := q.Order("expense_date DESC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list expenses")
	}
	return helper.JsonList(c, "Expenses fetched", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/expenses
func (ctl *ExpenseController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req financeDTO.CreateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	created := req.ToModel(schoolID)
	if err := ctl.DB.Create(&created).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create expense")
	}
	return helper.JsonCreated(c, "Expense created", created)
}

// PUT /api/a/expenses/:id
func (ctl *ExpenseController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req financeDTO.UpdateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var row financeModel.ExpenseModel
	if err := ctl.DB.Where("expense_id = ? AND expense_school_id = ?", id, schoolID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Expense not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch expense")
	}
	if req.Title != nil {
		row.ExpenseTitle = *req.Title
	}
	if req.Amount != nil {
		row.ExpenseAmount = *req.Amount
	}
	if req.Date != nil {
		row.ExpenseDate = *req.Date
	}
	if req.Note != nil {
		row.ExpenseNote = req.Note
	}
	if err := ctl.DB.Save(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update expense")
	}
	return helper.JsonUpdated(c, "Expense updated", row)
}

// DELETE /api/a/expenses/:id
func (ctl *ExpenseController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	res := ctl.DB.Where("expense_id = ? AND expense_school_id = ?", id, schoolID).
		Delete(&financeModel.ExpenseModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete expense")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Expense not found")
	}
	return helper.JsonDeleted(c, "Expense deleted", fiber.Map{"expense_id": id})
}
