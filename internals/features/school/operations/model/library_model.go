// file: internals/features/school/operations/model/library_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LibraryMemberModel struct {
	LibraryMemberID       uuid.UUID `gorm:"column:library_member_id;type:uuid;primaryKey" json:"library_member_id"`
	LibraryMemberSchoolID uuid.UUID `gorm:"column:library_member_school_id;type:uuid;not null;index" json:"library_member_school_id"`

	LibraryMemberCode string  `gorm:"column:library_member_code;type:varchar(40);not null" json:"library_member_code"`
	LibraryMemberName string  `gorm:"column:library_member_name;type:varchar(120);not null" json:"library_member_name"`
	LibraryMemberType *string `gorm:"column:library_member_type;type:varchar(20)" json:"library_member_type,omitempty"`

	LibraryMemberCreatedAt time.Time      `gorm:"column:library_member_created_at;not null;autoCreateTime" json:"library_member_created_at"`
	LibraryMemberUpdatedAt time.Time      `gorm:"column:library_member_updated_at;not null;autoUpdateTime" json:"library_member_updated_at"`
	LibraryMemberDeletedAt gorm.DeletedAt `gorm:"column:library_member_deleted_at;index" json:"library_member_deleted_at,omitempty"`
}

func (LibraryMemberModel) TableName() string { return "library_members" }

func (m *LibraryMemberModel) BeforeCreate(tx *gorm.DB) error {
	if m.LibraryMemberID == uuid.Nil {
		m.LibraryMemberID = uuid.New()
	}
	return nil
}

// BookIssueModel mirrors the inventory issue/return pair.
type BookIssueModel struct {
	BookIssueID       uuid.UUID `gorm:"column:book_issue_id;type:uuid;primaryKey" json:"book_issue_id"`
	BookIssueSchoolID uuid.UUID `gorm:"column:book_issue_school_id;type:uuid;not null;index" json:"book_issue_school_id"`

	BookIssueMemberID  uuid.UUID `gorm:"column:book_issue_member_id;type:uuid;not null;index" json:"book_issue_member_id"`
	BookIssueBookTitle string    `gorm:"column:book_issue_book_title;type:varchar(200);not null" json:"book_issue_book_title"`

	BookIssueIssuedAt   time.Time  `gorm:"column:book_issue_issued_at;not null" json:"book_issue_issued_at"`
	BookIssueDueDate    *time.Time `gorm:"column:book_issue_due_date" json:"book_issue_due_date,omitempty"`
	BookIssueReturnedAt *time.Time `gorm:"column:book_issue_returned_at" json:"book_issue_returned_at,omitempty"`

	BookIssueCreatedAt time.Time      `gorm:"column:book_issue_created_at;not null;autoCreateTime" json:"book_issue_created_at"`
	BookIssueUpdatedAt time.Time      `gorm:"column:book_issue_updated_at;not null;autoUpdateTime" json:"book_issue_updated_at"`
	BookIssueDeletedAt gorm.DeletedAt `gorm:"column:book_issue_deleted_at;index" json:"book_issue_deleted_at,omitempty"`
}

func (BookIssueModel) TableName() string { return "book_issues" }

func (m *BookIssueModel) BeforeCreate(tx *gorm.DB) error {
	if m.BookIssueID == uuid.Nil {
		m.BookIssueID = uuid.New()
	}
	return nil
}

type VisitorModel struct {
	VisitorID       uuid.UUID `gorm:"column:visitor_id;type:uuid;primaryKey" json:"visitor_id"`
	VisitorSchoolID uuid.UUID `gorm:"column:visitor_school_id;type:uuid;not null;index" json:"visitor_school_id"`

	VisitorName    string  `gorm:"column:visitor_name;type:varchar(120);not null" json:"visitor_name"`
	VisitorPhone   *string `gorm:"column:visitor_phone;type:varchar(30)" json:"visitor_phone,omitempty"`
	VisitorPurpose *string `gorm:"column:visitor_purpose;type:varchar(200)" json:"visitor_purpose,omitempty"`
	VisitorToMeet  *string `gorm:"column:visitor_to_meet;type:varchar(120)" json:"visitor_to_meet,omitempty"`

	VisitorCheckInAt  time.Time  `gorm:"column:visitor_check_in_at;not null" json:"visitor_check_in_at"`
	VisitorCheckOutAt *time.Time `gorm:"column:visitor_check_out_at" json:"visitor_check_out_at,omitempty"`

	VisitorCreatedAt time.Time      `gorm:"column:visitor_created_at;not null;autoCreateTime" json:"visitor_created_at"`
	VisitorUpdatedAt time.Time      `gorm:"column:visitor_updated_at;not null;autoUpdateTime" json:"visitor_updated_at"`
	VisitorDeletedAt gorm.DeletedAt `gorm:"column:visitor_deleted_at;index" json:"visitor_deleted_at,omitempty"`
}

func (VisitorModel) TableName() string { return "visitors" }

func (m *VisitorModel) BeforeCreate(tx *gorm.DB) error {
	if m.VisitorID == uuid.Nil {
		m.VisitorID = uuid.New()
	}
	return nil
}
