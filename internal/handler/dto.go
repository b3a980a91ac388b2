package handler

import (
	"time"

	"github.com/msomdec/victim-store/internal/domain"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	DisplayName string  `json:"displayName"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
	LastLoginAt *string `json:"lastLoginAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	dto := UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   u.UpdatedAt.Format(time.RFC3339),
	}
	if u.LastLoginAt != nil {
		t := u.LastLoginAt.Format(time.RFC3339)
		dto.LastLoginAt = &t
	}
	return dto
}

// VictimDTO is the JSON representation of a victim. ID is omitted until one
// has been assigned.
type VictimDTO struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toVictimDTO(v *domain.Victim) VictimDTO {
	return VictimDTO{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
	}
}

func toVictimDTOs(victims []domain.Victim) []VictimDTO {
	dtos := make([]VictimDTO, len(victims))
	for i := range victims {
		dtos[i] = toVictimDTO(&victims[i])
	}
	return dtos
}

// victimPatchRequest decodes a partial update. Absent keys stay nil.
type victimPatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (p victimPatchRequest) toPatch() domain.VictimPatch {
	return domain.VictimPatch{Name: p.Name, Description: p.Description}
}
