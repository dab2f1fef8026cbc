// file: internals/features/school/finance/dto/finance_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "schoolku_backend/internals/features/school/finance/model"
)

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

/* ===============================
   FEE TYPES / FEE GROUPS
=================================*/

type CreateFeeTypeRequest struct {
	Name string  `json:"fee_type_name" validate:"required,min=1,max=80"`
	Desc *string `json:"fee_type_desc" validate:"omitempty,max=2000"`
}

type UpdateFeeTypeRequest struct {
	Name *string `json:"fee_type_name" validate:"omitempty,min=1,max=80"`
	Desc *string `json:"fee_type_desc" validate:"omitempty,max=2000"`
}

func (r *CreateFeeTypeRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Desc = trimPtr(r.Desc)
}

func (r *UpdateFeeTypeRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
	r.Desc = trimPtr(r.Desc)
}

func (r *CreateFeeTypeRequest) ToModel(schoolID uuid.UUID) m.FeeTypeModel {
	return m.FeeTypeModel{FeeTypeSchoolID: schoolID, FeeTypeName: r.Name, FeeTypeDesc: r.Desc}
}

type CreateFeeGroupRequest struct {
	Name string  `json:"fee_group_name" validate:"required,min=1,max=80"`
	Desc *string `json:"fee_group_desc" validate:"omitempty,max=2000"`
}

type UpdateFeeGroupRequest struct {
	Name *string `json:"fee_group_name" validate:"omitempty,min=1,max=80"`
	Desc *string `json:"fee_group_desc" validate:"omitempty,max=2000"`
}

func (r *CreateFeeGroupRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Desc = trimPtr(r.Desc)
}

func (r *UpdateFeeGroupRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
	r.Desc = trimPtr(r.Desc)
}

func (r *CreateFeeGroupRequest) ToModel(schoolID uuid.UUID) m.FeeGroupModel {
	return m.FeeGroupModel{FeeGroupSchoolID: schoolID, FeeGroupName: r.Name, FeeGroupDesc: r.Desc}
}

/* ===============================
   FEE MASTERS
=================================*/

type CreateFeeMasterRequest struct {
	ClassID uuid.UUID  `json:"fee_master_class_id" validate:"required"`
	GroupID uuid.UUID  `json:"fee_master_group_id" validate:"required"`
	TypeID  uuid.UUID  `json:"fee_master_type_id" validate:"required"`
	Amount  int64      `json:"fee_master_amount" validate:"required,gt=0"`
	DueDate *time.Time `json:"fee_master_due_date"`
}

type UpdateFeeMasterRequest struct {
	Amount  *int64     `json:"fee_master_amount" validate:"omitempty,gt=0"`
	DueDate *time.Time `json:"fee_master_due_date"`
}

func (r *CreateFeeMasterRequest) ToModel(schoolID uuid.UUID) m.FeeMasterModel {
	return m.FeeMasterModel{
		FeeMasterSchoolID: schoolID,
		FeeMasterClassID:  r.ClassID,
		FeeMasterGroupID:  r.GroupID,
		FeeMasterTypeID:   r.TypeID,
		FeeMasterAmount:   r.Amount,
		FeeMasterDueDate:  r.DueDate,
	}
}

/* ===============================
   FEE PAYMENTS
=================================*/

type CreateFeePaymentRequest struct {
	StudentID   uuid.UUID `json:"fee_payment_student_id" validate:"required"`
	FeeMasterID uuid.UUID `json:"fee_payment_fee_master_id" validate:"required"`
	Amount      int64     `json:"fee_payment_amount" validate:"required,gt=0"`
	Method      string    `json:"fee_payment_method" validate:"required,oneof=cash gateway"`
}

func (r *CreateFeePaymentRequest) Normalize() {
	r.Method = strings.ToLower(strings.TrimSpace(r.Method))
}

// FeePaymentResponse carries the redirect URL next to the stored row for
// gateway checkouts.
type FeePaymentResponse struct {
	m.FeePaymentModel
	RedirectURL *string `json:"redirect_url,omitempty" gorm:"-"`
}

type StudentDuesResponse struct {
	StudentID uuid.UUID `json:"student_id"`
	Assigned  int64     `json:"assigned"`
	Paid      int64     `json:"paid"`
	Due       int64     `json:"due"`
}

/* ===============================
   INCOMES / EXPENSES
=================================*/

type CreateIncomeRequest struct {
	Title  string    `json:"income_title" validate:"required,min=1,max=120"`
	Amount int64     `json:"income_amount" validate:"required,gt=0"`
	Date   time.Time `json:"income_date" validate:"required"`
	Note   *string   `json:"income_note" validate:"omitempty,max=2000"`
}

type UpdateIncomeRequest struct {
	Title  *string    `json:"income_title" validate:"omitempty,min=1,max=120"`
	Amount *int64     `json:"income_amount" validate:"omitempty,gt=0"`
	Date   *time.Time `json:"income_date"`
	Note   *string    `json:"income_note" validate:"omitempty,max=2000"`
}

func (r *CreateIncomeRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Note = trimPtr(r.Note)
}

func (r *UpdateIncomeRequest) Normalize() {
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		r.Title = &t
	}
	r.Note = trimPtr(r.Note)
}

func (r *CreateIncomeRequest) ToModel(schoolID uuid.UUID) m.IncomeModel {
	return m.IncomeModel{
		IncomeSchoolID: schoolID,
		IncomeTitle:    r.Title,
		IncomeAmount:   r.Amount,
		IncomeDate:     r.Date,
		IncomeNote:     r.Note,
	}
}

type CreateExpenseRequest struct {
	Title  string    `json:"expense_title" validate:"required,min=1,max=120"`
	Amount int64     `json:"expense_amount" validate:"required,gt=0"`
	Date   time.Time `json:"expense_date" validate:"required"`
	Note   *string   `json:"expense_note" validate:"omitempty,max=2000"`
}

type UpdateExpenseRequest struct {
	Title  *string    `json:"expense_title" validate:"omitempty,min=1,max=120"`
	Amount *int64     `json:"expense_amount" validate:"omitempty,gt=0"`
	Date   *time.Time `json:"expense_date"`
	Note   *string    `json:"expense_note" validate:"omitempty,max=2000"`
}

func (r *CreateExpenseRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Note = trimPtr(r.Note)
}

func (r *UpdateExpenseRequest) Normalize() {
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		r.Title = &t
	}
	r.Note = trimPtr(r.Note)
}

func (r *CreateExpenseRequest) ToModel(schoolID uuid.UUID) m.ExpenseModel {
	return m.ExpenseModel{
		ExpenseSchoolID: schoolID,
		ExpenseTitle:    r.Title,
		ExpenseAmount:   r.Amount,
		ExpenseDate:     r.Date,
		ExpenseNote:     r.Note,
	}
}
