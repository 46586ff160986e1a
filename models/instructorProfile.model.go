package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InstructorProfile is 1:1 with a User by email. Stats (course counts,
// enrollment totals, revenue) are computed on read, never stored here.
type InstructorProfile struct {
	gorm.Model
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	Email       string         `json:"email" gorm:"unique;not null"`
	Title       string         `json:"title"`
	Bio         string         `json:"bio" gorm:"type:text"`
	Expertise   datatypes.JSON `json:"expertise"`    // e.g. ["pentesting","forensics"]
	SocialLinks datatypes.JSON `json:"social_links"` // e.g. {"linkedin":"...","github":"..."}
	IsDeleted   bool           `gorm:"default:false"`
}

// ExpertiseList decodes the expertise column; malformed data fails loudly.
func (p *InstructorProfile) ExpertiseList() ([]string, error) {
	if len(p.Expertise) == 0 {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal(p.Expertise, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (p *InstructorProfile) SetExpertise(tags []string) error {
	raw, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	p.Expertise = raw
	return nil
}

func (p *InstructorProfile) Links() (map[string]string, error) {
	if len(p.SocialLinks) == 0 {
		return nil, nil
	}
	links := make(map[string]string)
	if err := json.Unmarshal(p.SocialLinks, &links); err != nil {
		return nil, err
	}
	return links, nil
}

func (p *InstructorProfile) SetLinks(links map[string]string) error {
	raw, err := json.Marshal(links)
	if err != nil {
		return err
	}
	p.SocialLinks = raw
	return nil
}
