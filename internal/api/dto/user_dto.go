package dto

type UserDTO struct {
	ID        uint64 `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Disabled  bool   `json:"disabled"`
	CreatedAt string `json:"created_at"`
}

type UpdateRoleDTO struct {
	Role string `json:"role" validate:"required,oneof=USER ADMIN"`
}

type UpdateDisabledDTO struct {
	Disabled *bool `json:"disabled" validate:"required"`
}
