package hierarchy

import (
	"strings"
)

// Detector infers a chapter from free text by counting keyword occurrences.
// It is a pure function of its table and the input; safe for concurrent use.
type Detector struct {
	table KeywordTable
}

// NewDetector creates a detector over the built-in keyword table.
func NewDetector() *Detector {
	return NewDetectorWithTable(defaultKeywords)
}

// NewDetectorWithTable creates a detector over a custom keyword table.
// Keywords are expected to be lowercase. The table is not copied and must
// not be mutated after this call.
func NewDetectorWithTable(table KeywordTable) *Detector {
	return &Detector{table: table}
}

// Detect returns the chapter whose keywords occur most often as substrings
// of the lowercased text, and whether any keyword matched at all.
//
// When several chapters tie at the maximum count, the chapter earliest in
// canonical declaration order wins. Callers rely on this being deterministic
// for a given table and input.
func (d *Detector) Detect(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	lower := strings.ToLower(text)

	best := ""
	bestCount := 0
	for _, chapter := range chapterOrder {
		keywords, ok := d.table[chapter]
		if !ok {
			continue
		}
		count := 0
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				count++
			}
		}
		if count > bestCount {
			best = chapter
			bestCount = count
		}
	}

	if bestCount == 0 {
		return "", false
	}
	return best, true
}
