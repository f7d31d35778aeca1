package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChapterForCode(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"E11.621", ChapterEndocrine},
		{"E11621", ChapterEndocrine},
		{"C50", ChapterNeoplasms},
		{"D20", ChapterNeoplasms},
		{"D52", ChapterBlood},
		{"H05", ChapterEye},
		{"H60", ChapterEar},
		{"I21", ChapterCirculatory},
		{"J44", ChapterRespiratory},
		{"K21", ChapterDigestive},
		{"U07.1", ChapterSpecial},
		{"Z00.0", ChapterHealthFactors},
		{"i21", ChapterCirculatory}, // lowercase input
		{"9A1", ChapterUnknown},
		{"", ChapterUnknown},
		{"D", ChapterUnknown},  // no numeric part
		{"D99", ChapterUnknown}, // outside both D ranges
		{"H99", ChapterUnknown}, // outside both H ranges
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ChapterForCode(tt.code))
		})
	}
}

func TestChapters(t *testing.T) {
	chapters := Chapters()
	assert.Len(t, chapters, 22)
	assert.Equal(t, ChapterInfectious, chapters[0])
	assert.Equal(t, ChapterSpecial, chapters[21])

	// Mutating the returned slice must not affect the canonical order.
	chapters[0] = "mutated"
	assert.Equal(t, ChapterInfectious, Chapters()[0])
}
