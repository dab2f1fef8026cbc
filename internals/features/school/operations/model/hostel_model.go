// file: internals/features/school/operations/model/hostel_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HostelModel struct {
	HostelID       uuid.UUID `gorm:"column:hostel_id;type:uuid;primaryKey" json:"hostel_id"`
	HostelSchoolID uuid.UUID `gorm:"column:hostel_school_id;type:uuid;not null;index" json:"hostel_school_id"`

	HostelName    string  `gorm:"column:hostel_name;type:varchar(80);not null" json:"hostel_name"`
	HostelAddress *string `gorm:"column:hostel_address;type:text" json:"hostel_address,omitempty"`

	HostelCreatedAt time.Time      `gorm:"column:hostel_created_at;not null;autoCreateTime" json:"hostel_created_at"`
	HostelUpdatedAt time.Time      `gorm:"column:hostel_updated_at;not null;autoUpdateTime" json:"hostel_updated_at"`
	HostelDeletedAt gorm.DeletedAt `gorm:"column:hostel_deleted_at;index" json:"hostel_deleted_at,omitempty"`
}

func (HostelModel) TableName() string { return "hostels" }

func (m *HostelModel) BeforeCreate(tx *gorm.DB) error {
	if m.HostelID == uuid.Nil {
		m.HostelID = uuid.New()
	}
	return nil
}

type RoomTypeModel struct {
	RoomTypeID       uuid.UUID `gorm:"column:room_type_id;type:uuid;primaryKey" json:"room_type_id"`
	RoomTypeSchoolID uuid.UUID `gorm:"column:room_type_school_id;type:uuid;not null;index" json:"room_type_school_id"`

	RoomTypeName string  `gorm:"column:room_type_name;type:varchar(80);not null" json:"room_type_name"`
	RoomTypeDesc *string `gorm:"column:room_type_desc;type:text" json:"room_type_desc,omitempty"`

	RoomTypeCreatedAt time.Time      `gorm:"column:room_type_created_at;not null;autoCreateTime" json:"room_type_created_at"`
	RoomTypeUpdatedAt time.Time      `gorm:"column:room_type_updated_at;not null;autoUpdateTime" json:"room_type_updated_at"`
	RoomTypeDeletedAt gorm.DeletedAt `gorm:"column:room_type_deleted_at;index" json:"room_type_deleted_at,omitempty"`
}

func (RoomTypeModel) TableName() string { return "room_types" }

func (m *RoomTypeModel) BeforeCreate(tx *gorm.DB) error {
	if m.RoomTypeID == uuid.Nil {
		m.RoomTypeID = uuid.New()
	}
	return nil
}

// RoomModel keeps an occupied counter maintained by student placement.
type RoomModel struct {
	RoomID       uuid.UUID `gorm:"column:room_id;type:uuid;primaryKey" json:"room_id"`
	RoomSchoolID uuid.UUID `gorm:"column:room_school_id;type:uuid;not null;index" json:"room_school_id"`

	RoomHostelID   uuid.UUID  `gorm:"column:room_hostel_id;type:uuid;not null;index" json:"room_hostel_id"`
	RoomRoomTypeID *uuid.UUID `gorm:"column:room_room_type_id;type:uuid;index" json:"room_room_type_id,omitempty"`

	RoomNumber   string `gorm:"column:room_number;type:varchar(20);not null" json:"room_number"`
	RoomCapacity int    `gorm:"column:room_capacity;not null" json:"room_capacity"`
	RoomOccupied int    `gorm:"column:room_occupied;not null;default:0" json:"room_occupied"`

	RoomCreatedAt time.Time      `gorm:"column:room_created_at;not null;autoCreateTime" json:"room_created_at"`
	RoomUpdatedAt time.Time      `gorm:"column:room_updated_at;not null;autoUpdateTime" json:"room_updated_at"`
	RoomDeletedAt gorm.DeletedAt `gorm:"column:room_deleted_at;index" json:"room_deleted_at,omitempty"`
}

func (RoomModel) TableName() string { return "rooms" }

func (m *RoomModel) BeforeCreate(tx *gorm.DB) error {
	if m.RoomID == uuid.Nil {
		m.RoomID = uuid.New()
	}
	return nil
}
