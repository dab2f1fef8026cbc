// file: internals/features/school/finance/model/ledger_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IncomeModel struct {
	IncomeID       uuid.UUID `gorm:"column:income_id;type:uuid;primaryKey" json:"income_id"`
	IncomeSchoolID uuid.UUID `gorm:"column:income_school_id;type:uuid;not null;index" json:"income_school_id"`

	IncomeTitle  string    `gorm:"column:income_title;type:varchar(120);not null" json:"income_title"`
	IncomeAmount int64     `gorm:"column:income_amount;not null" json:"income_amount"`
	IncomeDate   time.Time `gorm:"column:income_date;not null" json:"income_date"`
	IncomeNote   *string   `gorm:"column:income_note;type:text" json:"income_note,omitempty"`

	IncomeCreatedAt time.Time      `gorm:"column:income_created_at;not null;autoCreateTime" json:"income_created_at"`
	IncomeUpdatedAt time.Time      `gorm:"column:income_updated_at;not null;autoUpdateTime" json:"income_updated_at"`
	IncomeDeletedAt gorm.DeletedAt `gorm:"column:income_deleted_at;index" json:"income_deleted_at,omitempty"`
}

func (IncomeModel) TableName() string { return "incomes" }

func (m *IncomeModel) BeforeCreate(tx *gorm.DB) error {
	if m.IncomeID == uuid.Nil {
		m.IncomeID = uuid.New()
	}
	return nil
}

type ExpenseModel struct {
	ExpenseID       uuid.UUID `gorm:"column:expense_id;type:uuid;primaryKey" json:"expense_id"`
	ExpenseSchoolID uuid.UUID `gorm:"column:expense_school_id;type:uuid;not null;index" json:"expense_school_id"`

	ExpenseTitle  string    `gorm:"column:expense_title;type:varchar(120);not null" json:"expense_title"`
	ExpenseAmount int64     `gorm:"column:expense_amount;not null" json:"expense_amount"`
	ExpenseDate   time.Time `gorm:"column:expense_date;not null" json:"expense_date"`
	ExpenseNote   *string   `gorm:"column:expense_note;type:text" json:"expense_note,omitempty"`

	ExpenseCreatedAt time.Time      `gorm:"column:expense_created_at;not null;autoCreateTime" json:"expense_created_at"`
	ExpenseUpdatedAt time.Time      `gorm:"column:expense_updated_at;not null;autoUpdateTime" json:"expense_updated_at"`
	ExpenseDeletedAt gorm.DeletedAt `gorm:"column:expense_deleted_at;index" json:"expense_deleted_at,omitempty"`
}

func (ExpenseModel) TableName() string { return "expenses" }

func (m *ExpenseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ExpenseID == uuid.Nil {
		m.ExpenseID = uuid.New()
	}
	return nil
}
