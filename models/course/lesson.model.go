package course

import "gorm.io/gorm"

// Lesson types
const (
	LessonTypeVideo     = "VIDEO"
	LessonTypeText      = "TEXT"
	LessonTypeQuiz      = "QUIZ"
	LessonTypePractical = "PRACTICAL"
	LessonTypeCTF       = "CTF"
)

// Lesson represents typed content within a module
type Lesson struct {
	gorm.Model
	CourseID      uint   `json:"course_id" gorm:"index;not null"`
	ModuleID      uint   `json:"module_id" gorm:"index;not null"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	LessonType    string `json:"lesson_type" gorm:"default:'TEXT'"` // VIDEO, TEXT, QUIZ, PRACTICAL, CTF
	TextContent   string `json:"text_content" gorm:"type:text"`
	VideoURL      string `json:"video_url"`
	AttachmentURL string `json:"attachment_url"`
	Duration      int    `json:"duration" gorm:"default:0"` // minutes
	OrderIndex    int    `json:"order_index" gorm:"default:0"`
	IsPublished   bool   `json:"is_published" gorm:"default:false"`
	IsDeleted     bool   `gorm:"default:false"`
}

// LessonProgress tracks per-(user, lesson) completion and watched time
type LessonProgress struct {
	gorm.Model
	UserID        uint `json:"user_id" gorm:"index;not null"`
	CourseID      uint `json:"course_id" gorm:"index;not null"`
	LessonID      uint `json:"lesson_id" gorm:"index;not null"`
	Completed     bool `json:"completed" gorm:"default:false"`
	WatchedTime   int  `json:"watched_time" gorm:"default:0"` // seconds
	VideoDuration int  `json:"video_duration" gorm:"default:0"`
	IsDeleted     bool `gorm:"default:false"`
}
