// file: internals/features/school/operations/model/transport_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransportRouteModel struct {
	TransportRouteID       uuid.UUID `gorm:"column:transport_route_id;type:uuid;primaryKey" json:"transport_route_id"`
	TransportRouteSchoolID uuid.UUID `gorm:"column:transport_route_school_id;type:uuid;not null;index" json:"transport_route_school_id"`

	TransportRouteName string  `gorm:"column:transport_route_name;type:varchar(120);not null" json:"transport_route_name"`
	TransportRouteDesc *string `gorm:"column:transport_route_desc;type:text" json:"transport_route_desc,omitempty"`

	TransportRouteCreatedAt time.Time      `gorm:"column:transport_route_created_at;not null;autoCreateTime" json:"transport_route_created_at"`
	TransportRouteUpdatedAt time.Time      `gorm:"column:transport_route_updated_at;not null;autoUpdateTime" json:"transport_route_updated_at"`
	TransportRouteDeletedAt gorm.DeletedAt `gorm:"column:transport_route_deleted_at;index" json:"transport_route_deleted_at,omitempty"`
}

func (TransportRouteModel) TableName() string { return "transport_routes" }

func (m *TransportRouteModel) BeforeCreate(tx *gorm.DB) error {
	if m.TransportRouteID == uuid.Nil {
		m.TransportRouteID = uuid.New()
	}
	return nil
}

type PickupPointModel struct {
	PickupPointID       uuid.UUID `gorm:"column:pickup_point_id;type:uuid;primaryKey" json:"pickup_point_id"`
	PickupPointSchoolID uuid.UUID `gorm:"column:pickup_point_school_id;type:uuid;not null;index" json:"pickup_point_school_id"`

	PickupPointRouteID uuid.UUID `gorm:"column:pickup_point_route_id;type:uuid;not null;index" json:"pickup_point_route_id"`

	PickupPointName string  `gorm:"column:pickup_point_name;type:varchar(120);not null" json:"pickup_point_name"`
	PickupPointTime *string `gorm:"column:pickup_point_time;type:varchar(10)" json:"pickup_point_time,omitempty"`

	PickupPointCreatedAt time.Time      `gorm:"column:pickup_point_created_at;not null;autoCreateTime" json:"pickup_point_created_at"`
	PickupPointUpdatedAt time.Time      `gorm:"column:pickup_point_updated_at;not null;autoUpdateTime" json:"pickup_point_updated_at"`
	PickupPointDeletedAt gorm.DeletedAt `gorm:"column:pickup_point_deleted_at;index" json:"pickup_point_deleted_at,omitempty"`
}

func (PickupPointModel) TableName() string { return "pickup_points" }

func (m *PickupPointModel) BeforeCreate(tx *gorm.DB) error {
	if m.PickupPointID == uuid.Nil {
		m.PickupPointID = uuid.New()
	}
	return nil
}
