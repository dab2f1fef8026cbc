// file: internals/features/school/operations/dto/operations_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "schoolku_backend/internals/features/school/operations/model"
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
   HOSTEL
=================================*/

type CreateHostelRequest struct {
	Name    string  `json:"hostel_name" validate:"required,min=1,max=80"`
	Address *string `json:"hostel_address" validate:"omitempty,max=2000"`
}

type UpdateHostelRequest struct {
	Name    *string `json:"hostel_name" validate:"omitempty,min=1,max=80"`
	Address *string `json:"hostel_address" validate:"omitempty,max=2000"`
}

func (r *CreateHostelRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Address = trimPtr(r.Address)
}

func (r *UpdateHostelRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
	r.Address = trimPtr(r.Address)
}

func (r *CreateHostelRequest) ToModel(schoolID uuid.UUID) m.HostelModel {
	return m.HostelModel{HostelSchoolID: schoolID, HostelName: r.Name, HostelAddress: r.Address}
}

type CreateRoomTypeRequest struct {
	Name string  `json:"room_type_name" validate:"required,min=1,max=80"`
	Desc *string `json:"room_type_desc" validate:"omitempty,max=2000"`
}

type UpdateRoomTypeRequest struct {
	Name *string `json:"room_type_name" validate:"omitempty,min=1,max=80"`
	Desc *string `json:"room_type_desc" validate:"omitempty,max=2000"`
}

func (r *CreateRoomTypeRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Desc = trimPtr(r.Desc)
}

func (r *UpdateRoomTypeRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
	r.Desc = trimPtr(r.Desc)
}

func (r *CreateRoomTypeRequest) ToModel(schoolID uuid.UUID) m.RoomTypeModel {
	return m.RoomTypeModel{RoomTypeSchoolID: schoolID, RoomTypeName: r.Name, RoomTypeDesc: r.Desc}
}

type CreateRoomRequest struct {
	HostelID   uuid.UUID  `json:"room_hostel_id" validate:"required"`
	RoomTypeID *uuid.UUID `json:"room_room_type_id"`
	Number     string     `json:"room_number" validate:"required,min=1,max=20"`
	Capacity   int        `json:"room_capacity" validate:"required,gt=0"`
}

type UpdateRoomRequest struct {
	RoomTypeID *uuid.UUID `json:"room_room_type_id"`
	Number     *string    `json:"room_number" validate:"omitempty,min=1,max=20"`
	Capacity   *int       `json:"room_capacity" validate:"omitempty,gt=0"`
}

func (r *CreateRoomRequest) Normalize() { r.Number = strings.TrimSpace(r.Number) }

func (r *UpdateRoomRequest) Normalize() {
	if r.Number != nil {
		n := strings.TrimSpace(*r.Number)
		r.Number = &n
	}
}

func (r *CreateRoomRequest) ToModel(schoolID uuid.UUID) m.RoomModel {
	return m.RoomModel{
		RoomSchoolID:   schoolID,
		RoomHostelID:   r.HostelID,
		RoomRoomTypeID: r.RoomTypeID,
		RoomNumber:     r.Number,
		RoomCapacity:   r.Capacity,
	}
}

/* ===============================
   INVENTORY
=================================*/

type CreateItemRequest struct {
	Name     string  `json:"item_name" validate:"required,min=1,max=120"`
	Desc     *string `json:"item_desc" validate:"omitempty,max=2000"`
	Quantity int     `json:"item_quantity" validate:"required,gte=0"`
}

type UpdateItemRequest struct {
	Name *string `json:"item_name" validate:"omitempty,min=1,max=120"`
	Desc *string `json:"item_desc" validate:"omitempty,max=2000"`
}

func (r *CreateItemRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Desc = trimPtr(r.Desc)
}

func (r *UpdateItemRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
	r.Desc = trimPtr(r.Desc)
}

func (r *CreateItemRequest) ToModel(schoolID uuid.UUID) m.ItemModel {
	return m.ItemModel{
		ItemSchoolID:  schoolID,
		ItemName:      r.Name,
		ItemDesc:      r.Desc,
		ItemQuantity:  r.Quantity,
		ItemAvailable: r.Quantity,
	}
}

type CreateItemIssueRequest struct {
	ItemID   uuid.UUID `json:"item_issue_item_id" validate:"required"`
	IssuedTo string    `json:"item_issue_issued_to" validate:"required,min=1,max=120"`
}

func (r *CreateItemIssueRequest) Normalize() { r.IssuedTo = strings.TrimSpace(r.IssuedTo) }

/* ===============================
   TRANSPORT
=================================*/

type CreateTransportRouteRequest struct {
	Name string  `json:"transport_route_name" validate:"required,min=1,max=120"`
	Desc *string `json:"transport_route_desc" validate:"omitempty,max=2000"`
}

type UpdateTransportRouteRequest struct {
	Name *string `json:"transport_route_name" validate:"omitempty,min=1,max=120"`
	Desc *string `json:"transport_route_desc" validate:"omitempty,max=2000"`
}

func (r *CreateTransportRouteRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Desc = trimPtr(r.Desc)
}

func (r *UpdateTransportRouteRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
	r.Desc = trimPtr(r.Desc)
}

func (r *CreateTransportRouteRequest) ToModel(schoolID uuid.UUID) m.TransportRouteModel {
	return m.TransportRouteModel{
		TransportRouteSchoolID: schoolID,
		TransportRouteName:     r.Name,
		TransportRouteDesc:     r.Desc,
	}
}

type CreatePickupPointRequest struct {
	RouteID uuid.UUID `json:"pickup_point_route_id" validate:"required"`
	Name    string    `json:"pickup_point_name" validate:"required,min=1,max=120"`
	Time    *string   `json:"pickup_point_time" validate:"omitempty,max=10"`
}

type UpdatePickupPointRequest struct {
	Name *string `json:"pickup_point_name" validate:"omitempty,min=1,max=120"`
	Time *string `json:"pickup_point_time" validate:"omitempty,max=10"`
}

func (r *CreatePickupPointRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Time = trimPtr(r.Time)
}

func (r *UpdatePickupPointRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
	r.Time = trimPtr(r.Time)
}

func (r *CreatePickupPointRequest) ToModel(schoolID uuid.UUID) m.PickupPointModel {
	return m.PickupPointModel{
		PickupPointSchoolID: schoolID,
		PickupPointRouteID:  r.RouteID,
		PickupPointName:     r.Name,
		PickupPointTime:     r.Time,
	}
}

/* ===============================
   LIBRARY
=================================*/

type CreateLibraryMemberRequest struct {
	Code string  `json:"library_member_code" validate:"required,min=1,max=40"`
	Name string  `json:"library_member_name" validate:"required,min=1,max=120"`
	Type *string `json:"library_member_type" validate:"omitempty,oneof=student staff"`
}

type UpdateLibraryMemberRequest struct {
	Name *string `json:"library_member_name" validate:"omitempty,min=1,max=120"`
	Type *string `json:"library_member_type" validate:"omitempty,oneof=student staff"`
}

func (r *CreateLibraryMemberRequest) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
	r.Name = strings.TrimSpace(r.Name)
	if r.Type != nil {
		t := strings.ToLower(strings.TrimSpace(*r.Type))
		r.Type = &t
	}
}

func (r *UpdateLibraryMemberRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
	if r.Type != nil {
		t := strings.ToLower(strings.TrimSpace(*r.Type))
		r.Type = &t
	}
}

func (r *CreateLibraryMemberRequest) ToModel(schoolID uuid.UUID) m.LibraryMemberModel {
	return m.LibraryMemberModel{
		LibraryMemberSchoolID: schoolID,
		LibraryMemberCode:     r.Code,
		LibraryMemberName:     r.Name,
		LibraryMemberType:     r.Type,
	}
}

type CreateBookIssueRequest struct {
	MemberID  uuid.UUID  `json:"book_issue_member_id" validate:"required"`
	BookTitle string     `json:"book_issue_book_title" validate:"required,min=1,max=200"`
	DueDate   *time.Time `json:"book_issue_due_date"`
}

func (r *CreateBookIssueRequest) Normalize() { r.BookTitle = strings.TrimSpace(r.BookTitle) }

/* ===============================
   FRONT OFFICE
=================================*/

type CreateVisitorRequest struct {
	Name    string  `json:"visitor_name" validate:"required,min=1,max=120"`
	Phone   *string `json:"visitor_phone" validate:"omitempty,max=30"`
	Purpose *string `json:"visitor_purpose" validate:"omitempty,max=200"`
	ToMeet  *string `json:"visitor_to_meet" validate:"omitempty,max=120"`
}

func (r *CreateVisitorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = trimPtr(r.Phone)
	r.Purpose = trimPtr(r.Purpose)
	r.ToMeet = trimPtr(r.ToMeet)
}
