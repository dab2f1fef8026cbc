// file: internals/features/school/operations/model/inventory_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemModel struct {
	ItemID       uuid.UUID `gorm:"column:item_id;type:uuid;primaryKey" json:"item_id"`
	ItemSchoolID uuid.UUID `gorm:"column:item_school_id;type:uuid;not null;index" json:"item_school_id"`

	ItemName      string  `gorm:"column:item_name;type:varchar(120);not null" json:"item_name"`
	ItemDesc      *string `gorm:"column:item_desc;type:text" json:"item_desc,omitempty"`
	ItemQuantity  int     `gorm:"column:item_quantity;not null" json:"item_quantity"`
	ItemAvailable int     `gorm:"column:item_available;not null" json:"item_available"`

	ItemCreatedAt time.Time      `gorm:"column:item_created_at;not null;autoCreateTime" json:"item_created_at"`
	ItemUpdatedAt time.Time      `gorm:"column:item_updated_at;not null;autoUpdateTime" json:"item_updated_at"`
	ItemDeletedAt gorm.DeletedAt `gorm:"column:item_deleted_at;index" json:"item_deleted_at,omitempty"`
}

func (ItemModel) TableName() string { return "items" }

func (m *ItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.ItemID == uuid.Nil {
		m.ItemID = uuid.New()
	}
	return nil
}

// ItemIssueModel is terminal once returned.
type ItemIssueModel struct {
	ItemIssueID       uuid.UUID `gorm:"column:item_issue_id;type:uuid;primaryKey" json:"item_issue_id"`
	ItemIssueSchoolID uuid.UUID `gorm:"column:item_issue_school_id;type:uuid;not null;index" json:"item_issue_school_id"`

	ItemIssueItemID   uuid.UUID `gorm:"column:item_issue_item_id;type:uuid;not null;index" json:"item_issue_item_id"`
	ItemIssueIssuedTo string    `gorm:"column:item_issue_issued_to;type:varchar(120);not null" json:"item_issue_issued_to"`

	ItemIssueIssuedAt   time.Time  `gorm:"column:item_issue_issued_at;not null" json:"item_issue_issued_at"`
	ItemIssueReturnedAt *time.Time `gorm:"column:item_issue_returned_at" json:"item_issue_returned_at,omitempty"`

	ItemIssueCreatedAt time.Time      `gorm:"column:item_issue_created_at;not null;autoCreateTime" json:"item_issue_created_at"`
	ItemIssueUpdatedAt time.Time      `gorm:"column:item_issue_updated_at;not null;autoUpdateTime" json:"item_issue_updated_at"`
	ItemIssueDeletedAt gorm.DeletedAt `gorm:"column:item_issue_deleted_at;index" json:"item_issue_deleted_at,omitempty"`
}

func (ItemIssueModel) TableName() string { return "item_issues" }

func (m *ItemIssueModel) BeforeCreate(tx *gorm.DB) error {
	if m.ItemIssueID == uuid.Nil {
		m.ItemIssueID = uuid.New()
	}
	return nil
}
