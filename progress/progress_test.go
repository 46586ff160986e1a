package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeEmptyCourse(t *testing.T) {
	summary := Compute(nil, nil)

	assert.Equal(t, 0, summary.TotalLessons)
	assert.Equal(t, 0, summary.CompletedLessons)
	assert.Equal(t, 0, summary.Percentage)
	assert.Empty(t, summary.ProgressMap)
}

func TestComputePercentageRounds(t *testing.T) {
	lessons := []Lesson{{ID: 1}, {ID: 2}, {ID: 3}}
	records := []Record{{LessonID: 1, Completed: true}}

	summary := Compute(lessons, records)

	assert.Equal(t, 3, summary.TotalLessons)
	assert.Equal(t, 1, summary.CompletedLessons)
	assert.Equal(t, 33, summary.Percentage) // round(100/3)

	records = append(records, Record{LessonID: 2, Completed: true})
	summary = Compute(lessons, records)
	assert.Equal(t, 67, summary.Percentage) // round(200/3)
}

func TestComputeFullCompletion(t *testing.T) {
	lessons := []Lesson{{ID: 10}, {ID: 11}}
	records := []Record{
		{LessonID: 10, Completed: true},
		{LessonID: 11, Completed: true},
	}

	summary := Compute(lessons, records)

	assert.Equal(t, 100, summary.Percentage)
	assert.True(t, summary.ProgressMap[10].Completed)
	assert.True(t, summary.ProgressMap[11].Completed)
}

func TestComputeDuplicateRecordsAreIdempotent(t *testing.T) {
	lessons := []Lesson{{ID: 1}, {ID: 2}}
	records := []Record{
		{LessonID: 1, Completed: true},
		{LessonID: 1, Completed: true}, // marked twice
	}

	summary := Compute(lessons, records)

	assert.Equal(t, 1, summary.CompletedLessons)
	assert.Equal(t, 50, summary.Percentage)
}

func TestComputeIgnoresUnknownLessons(t *testing.T) {
	lessons := []Lesson{{ID: 1}}
	records := []Record{
		{LessonID: 1, Completed: true},
		{LessonID: 99, Completed: true}, // lesson removed from the course
	}

	summary := Compute(lessons, records)

	assert.Equal(t, 1, summary.TotalLessons)
	assert.Equal(t, 1, summary.CompletedLessons)
	assert.Equal(t, 100, summary.Percentage)
	assert.NotContains(t, summary.ProgressMap, uint(99))
}

func TestComputeIncompleteRecordsDoNotCount(t *testing.T) {
	lessons := []Lesson{{ID: 1}, {ID: 2}}
	records := []Record{
		{LessonID: 1, Completed: false}, // partially watched video
	}

	summary := Compute(lessons, records)

	assert.Equal(t, 0, summary.CompletedLessons)
	assert.False(t, summary.ProgressMap[1].Completed)
}

func TestAutoCompleteOnOpen(t *testing.T) {
	assert.True(t, AutoCompleteOnOpen(Lesson{Type: "TEXT"}))
	assert.True(t, AutoCompleteOnOpen(Lesson{Type: "QUIZ"}))
	assert.True(t, AutoCompleteOnOpen(Lesson{Type: "CTF"}))

	// A video lesson always needs explicit completion
	assert.False(t, AutoCompleteOnOpen(Lesson{Type: "VIDEO"}))
	assert.False(t, AutoCompleteOnOpen(Lesson{Type: "VIDEO", VideoURL: "https://cdn.example.com/v/1.mp4"}))

	// A non-video lesson with an attached video keeps manual completion
	assert.False(t, AutoCompleteOnOpen(Lesson{Type: "PRACTICAL", VideoURL: "https://cdn.example.com/v/2.mp4"}))
}
