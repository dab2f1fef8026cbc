// file: internals/features/school/finance/model/fee_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeeTypeModel struct {
	FeeTypeID       uuid.UUID `gorm:"column:fee_type_id;type:uuid;primaryKey" json:"fee_type_id"`
	FeeTypeSchoolID uuid.UUID `gorm:"column:fee_type_school_id;type:uuid;not null;index" json:"fee_type_school_id"`

	FeeTypeName string  `gorm:"column:fee_type_name;type:varchar(80);not null" json:"fee_type_name"`
	FeeTypeDesc *string `gorm:"column:fee_type_desc;type:text" json:"fee_type_desc,omitempty"`

	FeeTypeCreatedAt time.Time      `gorm:"column:fee_type_created_at;not null;autoCreateTime" json:"fee_type_created_at"`
	FeeTypeUpdatedAt time.Time      `gorm:"column:fee_type_updated_at;not null;autoUpdateTime" json:"fee_type_updated_at"`
	FeeTypeDeletedAt gorm.DeletedAt `gorm:"column:fee_type_deleted_at;index" json:"fee_type_deleted_at,omitempty"`
}

func (FeeTypeModel) TableName() string { return "fee_types" }

func (m *FeeTypeModel) BeforeCreate(tx *gorm.DB) error {
	if m.FeeTypeID == uuid.Nil {
		m.FeeTypeID = uuid.New()
	}
	return nil
}

type FeeGroupModel struct {
	FeeGroupID       uuid.UUID `gorm:"column:fee_group_id;type:uuid;primaryKey" json:"fee_group_id"`
	FeeGroupSchoolID uuid.UUID `gorm:"column:fee_group_school_id;type:uuid;not null;index" json:"fee_group_school_id"`

	FeeGroupName string  `gorm:"column:fee_group_name;type:varchar(80);not null" json:"fee_group_name"`
	FeeGroupDesc *string `gorm:"column:fee_group_desc;type:text" json:"fee_group_desc,omitempty"`

	FeeGroupCreatedAt time.Time      `gorm:"column:fee_group_created_at;not null;autoCreateTime" json:"fee_group_created_at"`
	FeeGroupUpdatedAt time.Time      `gorm:"column:fee_group_updated_at;not null;autoUpdateTime" json:"fee_group_updated_at"`
	FeeGroupDeletedAt gorm.DeletedAt `gorm:"column:fee_group_deleted_at;index" json:"fee_group_deleted_at,omitempty"`
}

func (FeeGroupModel) TableName() string { return "fee_groups" }

func (m *FeeGroupModel) BeforeCreate(tx *gorm.DB) error {
	if m.FeeGroupID == uuid.Nil {
		m.FeeGroupID = uuid.New()
	}
	return nil
}

// FeeMasterModel maps class x group x type to an amount. The triple is
// unique per tenant.
type FeeMasterModel struct {
	FeeMasterID       uuid.UUID `gorm:"column:fee_master_id;type:uuid;primaryKey" json:"fee_master_id"`
	FeeMasterSchoolID uuid.UUID `gorm:"column:fee_master_school_id;type:uuid;not null;index" json:"fee_master_school_id"`

	FeeMasterClassID uuid.UUID `gorm:"column:fee_master_class_id;type:uuid;not null;index" json:"fee_master_class_id"`
	FeeMasterGroupID uuid.UUID `gorm:"column:fee_master_group_id;type:uuid;not null;index" json:"fee_master_group_id"`
	FeeMasterTypeID  uuid.UUID `gorm:"column:fee_master_type_id;type:uuid;not null;index" json:"fee_master_type_id"`

	FeeMasterAmount  int64      `gorm:"column:fee_master_amount;not null" json:"fee_master_amount"`
	FeeMasterDueDate *time.Time `gorm:"column:fee_master_due_date" json:"fee_master_due_date,omitempty"`

	FeeMasterCreatedAt time.Time      `gorm:"column:fee_master_created_at;not null;autoCreateTime" json:"fee_master_created_at"`
	FeeMasterUpdatedAt time.Time      `gorm:"column:fee_master_updated_at;not null;autoUpdateTime" json:"fee_master_updated_at"`
	FeeMasterDeletedAt gorm.DeletedAt `gorm:"column:fee_master_deleted_at;index" json:"fee_master_deleted_at,omitempty"`
}

func (FeeMasterModel) TableName() string { return "fee_masters" }

func (m *FeeMasterModel) BeforeCreate(tx *gorm.DB) error {
	if m.FeeMasterID == uuid.Nil {
		m.FeeMasterID = uuid.New()
	}
	return nil
}

const (
	FeePaymentMethodCash    = "cash"
	FeePaymentMethodGateway = "gateway"

	FeePaymentStatusPaid    = "paid"
	FeePaymentStatusPending = "pending"
)

// FeePaymentModel records one payment against a fee master. Gateway
// payments start pending and hold the checkout token.
type FeePaymentModel struct {
	FeePaymentID       uuid.UUID `gorm:"column:fee_payment_id;type:uuid;primaryKey" json:"fee_payment_id"`
	FeePaymentSchoolID uuid.UUID `gorm:"column:fee_payment_school_id;type:uuid;not null;index" json:"fee_payment_school_id"`

	FeePaymentStudentID   uuid.UUID `gorm:"column:fee_payment_student_id;type:uuid;not null;index" json:"fee_payment_student_id"`
	FeePaymentFeeMasterID uuid.UUID `gorm:"column:fee_payment_fee_master_id;type:uuid;not null;index" json:"fee_payment_fee_master_id"`

	FeePaymentAmount int64  `gorm:"column:fee_payment_amount;not null" json:"fee_payment_amount"`
	FeePaymentMethod string `gorm:"column:fee_payment_method;type:varchar(20);not null" json:"fee_payment_method"`
	FeePaymentStatus string `gorm:"column:fee_payment_status;type:varchar(20);not null;default:'paid'" json:"fee_payment_status"`

	FeePaymentOrderID   *string    `gorm:"column:fee_payment_order_id;type:varchar(64)" json:"fee_payment_order_id,omitempty"`
	FeePaymentSnapToken *string    `gorm:"column:fee_payment_snap_token;type:varchar(255)" json:"fee_payment_snap_token,omitempty"`
	FeePaymentPaidAt    *time.Time `gorm:"column:fee_payment_paid_at" json:"fee_payment_paid_at,omitempty"`

	FeePaymentCreatedAt time.Time      `gorm:"column:fee_payment_created_at;not null;autoCreateTime" json:"fee_payment_created_at"`
	FeePaymentUpdatedAt time.Time      `gorm:"column:fee_payment_updated_at;not null;autoUpdateTime" json:"fee_payment_updated_at"`
	FeePaymentDeletedAt gorm.DeletedAt `gorm:"column:fee_payment_deleted_at;index" json:"fee_payment_deleted_at,omitempty"`
}

func (FeePaymentModel) TableName() string { return "fee_payments" }

func (m *FeePaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.FeePaymentID == uuid.Nil {
		m.FeePaymentID = uuid.New()
	}
	return nil
}
