package course

import "gorm.io/gorm"

// Course represents a cybersecurity course with dual pricing (money and escudos)
type Course struct {
	gorm.Model
	Title            string  `json:"title"`
	ShortDescription string  `json:"short_description"`
	Description      string  `json:"description" gorm:"type:text"`
	Price            float64 `json:"price" gorm:"default:0"`               // money price, two decimals
	EscudosPrice     uint    `json:"escudos_price" gorm:"default:0"`       // virtual currency price
	Difficulty       string  `json:"difficulty" gorm:"default:'BEGINNER'"` // BEGINNER, INTERMEDIATE, ADVANCED
	Duration         int64   `json:"duration" gorm:"default:0"`            // duration in hours
	CourseType       string  `json:"course_type" gorm:"default:'RECORDED'"` // RECORDED, ONLINE, HYBRID
	Category         string  `json:"category"`
	ThumbnailURL     string  `json:"thumbnail_url"`
	InstructorID     uint    `json:"instructor_id" gorm:"index;not null"`
	Status           string  `json:"status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED
	IsApproved       bool    `json:"is_approved" gorm:"default:false"`
	IsPublished      bool    `json:"is_published" gorm:"default:false"`
	RejectionReason  string  `json:"rejection_reason"`
	EnrolledCount    int     `json:"enrolled_count" gorm:"default:0"`
	IsDeleted        bool    `gorm:"default:false"`
}

// IsFree reports whether the course can be enrolled without payment.
func (c *Course) IsFree() bool {
	return c.Price == 0 && c.EscudosPrice == 0
}

// VisibleTo reports whether the course detail may be shown to a viewer
// reaching it by direct id: published courses are public, unpublished ones
// only show to their instructor or an admin. Anonymous viewers pass zero/"".
func (c *Course) VisibleTo(viewerID uint, role string) bool {
	if c.IsPublished {
		return true
	}
	if role == "ADMIN" {
		return true
	}
	return viewerID != 0 && viewerID == c.InstructorID
}
