// file: internals/features/users/roles/dto/role_dto.go
package dto

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "schoolku_backend/internals/features/users/roles/model"
)

type CreateRoleRequest struct {
	Name        string   `json:"role_name" validate:"required,min=2,max=60"`
	Permissions []string `json:"role_permissions" validate:"omitempty,dive,min=3,max=80"`
}

type UpdateRoleRequest struct {
	Name        *string   `json:"role_name" validate:"omitempty,min=2,max=60"`
	Permissions *[]string `json:"role_permissions" validate:"omitempty,dive,min=3,max=80"`
}

func (r *CreateRoleRequest) Normalize() {
	r.Name = strings.ToLower(strings.TrimSpace(r.Name))
	r.Permissions = normalizeSlugs(r.Permissions)
}

func (r *UpdateRoleRequest) Normalize() {
	if r.Name != nil {
		n := strings.ToLower(strings.TrimSpace(*r.Name))
		r.Name = &n
	}
	if r.Permissions != nil {
		p := normalizeSlugs(*r.Permissions)
		r.Permissions = &p
	}
}

func normalizeSlugs(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]struct{}{}
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func PermissionsJSON(slugs []string) datatypes.JSON {
	if slugs == nil {
		slugs = []string{}
	}
	b, _ := json.Marshal(slugs)
	return datatypes.JSON(b)
}

func (r *CreateRoleRequest) ToModel(schoolID uuid.UUID) m.RoleModel {
	return m.RoleModel{
		RoleSchoolID:    schoolID,
		RoleName:        r.Name,
		RolePermissions: PermissionsJSON(r.Permissions),
	}
}

type RoleResponse struct {
	RoleID          uuid.UUID `json:"role_id"`
	RoleSchoolID    uuid.UUID `json:"role_school_id"`
	RoleName        string    `json:"role_name"`
	RolePermissions []string  `json:"role_permissions"`
	RoleIsSystem    bool      `json:"role_is_system"`
}

func FromRoleModel(r m.RoleModel) RoleResponse {
	perms := []string{}
	_ = json.Unmarshal(r.RolePermissions, &perms)
	return RoleResponse{
		RoleID:          r.RoleID,
		RoleSchoolID:    r.RoleSchoolID,
		RoleName:        r.RoleName,
		RolePermissions: perms,
		RoleIsSystem:    r.RoleIsSystem,
	}
}

func FromRoleModels(rows []m.RoleModel) []RoleResponse {
	out := make([]RoleResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromRoleModel(r))
	}
	return out
}
