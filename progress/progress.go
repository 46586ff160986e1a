// Package progress computes course completion aggregates from explicit inputs.
// It holds no state and does no I/O; callers fetch the lesson list and the
// user's completion records and hand both in.
package progress

import "math"

// Lesson is the slice of a course lesson the tracker needs.
type Lesson struct {
	ID       uint
	Type     string
	VideoURL string
}

// Record is a single per-(user, lesson) completion flag.
type Record struct {
	LessonID  uint
	Completed bool
}

// State is the per-lesson entry of the progress map.
type State struct {
	Completed bool `json:"completed"`
}

// Summary aggregates completion over a course for one user.
type Summary struct {
	TotalLessons     int            `json:"totalLessons"`
	CompletedLessons int            `json:"completedLessons"`
	Percentage       int            `json:"percentage"`
	ProgressMap      map[uint]State `json:"progressMap"`
}

// Compute builds the completion summary for a course. Percentage is
// round(100 * completed / total) and 0 for a course with no lessons. Records
// for lessons not in the list are ignored; duplicate records for one lesson
// collapse into a single map entry.
func Compute(lessons []Lesson, records []Record) Summary {
	summary := Summary{
		TotalLessons: len(lessons),
		ProgressMap:  make(map[uint]State, len(lessons)),
	}

	completed := make(map[uint]bool, len(records))
	for _, r := range records {
		if r.Completed {
			completed[r.LessonID] = true
		}
	}

	for _, l := range lessons {
		done := completed[l.ID]
		summary.ProgressMap[l.ID] = State{Completed: done}
		if done {
			summary.CompletedLessons++
		}
	}

	if summary.TotalLessons > 0 {
		summary.Percentage = int(math.Round(float64(summary.CompletedLessons) / float64(summary.TotalLessons) * 100))
	}

	return summary
}

// AutoCompleteOnOpen reports whether opening the lesson completes it: any
// lesson whose type is not VIDEO and which has no video URL is considered
// complete as soon as it is opened.
func AutoCompleteOnOpen(l Lesson) bool {
	return l.Type != "VIDEO" && l.VideoURL == ""
}
