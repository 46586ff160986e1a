package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PopupNotification is an admin-authored broadcast shown to the targeted roles
// while the scheduling window is open.
type PopupNotification struct {
	gorm.Model
	Title       string         `json:"title"`
	Message     string         `json:"message" gorm:"type:text"`
	StartsAt    time.Time      `json:"starts_at"`
	EndsAt      time.Time      `json:"ends_at"`
	TargetRoles datatypes.JSON `json:"target_roles"` // e.g. ["STUDENT","INSTRUCTOR"]
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	CreatedBy   uint           `json:"created_by"`
	IsDeleted   bool           `gorm:"default:false"`
}

// Roles decodes the target-role column. Malformed data is an error, not an
// empty list.
func (n *PopupNotification) Roles() ([]string, error) {
	if len(n.TargetRoles) == 0 {
		return nil, nil
	}
	var roles []string
	if err := json.Unmarshal(n.TargetRoles, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// SetRoles encodes the target-role list into the JSON column.
func (n *PopupNotification) SetRoles(roles []string) error {
	raw, err := json.Marshal(roles)
	if err != nil {
		return err
	}
	n.TargetRoles = raw
	return nil
}

// Targets reports whether the notification targets the given role. An empty
// target list means everyone.
func (n *PopupNotification) Targets(role string) (bool, error) {
	roles, err := n.Roles()
	if err != nil {
		return false, err
	}
	if len(roles) == 0 {
		return true, nil
	}
	for _, r := range roles {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}
