// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package hierarchy

import (
	"strconv"
	"strings"
)

// Chapter identifiers from the WHO classification. The closed set of
// top-level groupings every catalog code belongs to.
const (
	ChapterInfectious      = "I. Certain infectious and parasitic diseases"
	ChapterNeoplasms       = "II. Neoplasms"
	ChapterBlood           = "III. Diseases of the blood and blood-forming organs"
	ChapterEndocrine       = "IV. Endocrine, nutritional and metabolic diseases"
	ChapterMental          = "V. Mental, Behavioral and Neurodevelopmental disorders"
	ChapterNervous         = "VI. Diseases of the nervous system"
	ChapterEye             = "VII. Diseases of the eye and adnexa"
	ChapterEar             = "VIII. Diseases of the ear and mastoid process"
	ChapterCirculatory     = "IX. Diseases of the circulatory system"
	ChapterRespiratory     = "X. Diseases of the respiratory system"
	ChapterDigestive       = "XI. Diseases of the digestive system"
	ChapterSkin            = "XII. Diseases of the skin and subcutaneous tissue"
	ChapterMusculoskeletal = "XIII. Diseases of the musculoskeletal system and connective tissue"
	ChapterGenitourinary   = "XIV. Diseases of the genitourinary system"
	ChapterPregnancy       = "XV. Pregnancy, childbirth and the puerperium"
	ChapterPerinatal       = "XVI. Certain conditions originating in the perinatal period"
	ChapterCongenital      = "XVII. Congenital malformations, deformations and chromosomal abnormalities"
	ChapterSymptoms        = "XVIII. Symptoms, signs and abnormal clinical and laboratory findings"
	ChapterInjury          = "XIX. Injury, poisoning and certain other consequences of external causes"
	ChapterExternal        = "XX. External causes of morbidity"
	ChapterHealthFactors   = "XXI. Factors influencing health status and contact with health services"
	ChapterSpecial         = "XXII. Codes for special purposes"

	// ChapterUnknown is returned for codes that map to no known chapter.
	ChapterUnknown = "Unknown"
)

// chapterOrder is the canonical declaration order. The detector's tie-break
// depends on this order staying stable.
var chapterOrder = []string{
	ChapterInfectious,
	ChapterNeoplasms,
	ChapterBlood,
	ChapterEndocrine,
	ChapterMental,
	ChapterNervous,
	ChapterEye,
	ChapterEar,
	ChapterCirculatory,
	ChapterRespiratory,
	ChapterDigestive,
	ChapterSkin,
	ChapterMusculoskeletal,
	ChapterGenitourinary,
	ChapterPregnancy,
	ChapterPerinatal,
	ChapterCongenital,
	ChapterSymptoms,
	ChapterInjury,
	ChapterExternal,
	ChapterHealthFactors,
	ChapterSpecial,
}

// letterChapters maps a code's leading letter to its chapter. The D and H
// blocks are split by numeric range and handled in ChapterForCode.
var letterChapters = map[byte]string{
	'A': ChapterInfectious,
	'B': ChapterInfectious,
	'C': ChapterNeoplasms,
	'E': ChapterEndocrine,
	'F': ChapterMental,
	'G': ChapterNervous,
	'I': ChapterCirculatory,
	'J': ChapterRespiratory,
	'K': ChapterDigestive,
	'L': ChapterSkin,
	'M': ChapterMusculoskeletal,
	'N': ChapterGenitourinary,
	'O': ChapterPregnancy,
	'P': ChapterPerinatal,
	'Q': ChapterCongenital,
	'R': ChapterSymptoms,
	'S': ChapterInjury,
	'T': ChapterInjury,
	'V': ChapterExternal,
	'W': ChapterExternal,
	'X': ChapterExternal,
	'Y': ChapterExternal,
	'Z': ChapterHealthFactors,
	'U': ChapterSpecial,
}

// Chapters returns all chapters in canonical order.
// The returned slice is a copy and safe to modify.
func Chapters() []string {
	out := make([]string, len(chapterOrder))
	copy(out, chapterOrder)
	return out
}

// ChapterForCode maps a code identifier to its chapter.
// Accepts both dotted and undotted forms. Returns ChapterUnknown for
// unrecognized identifiers.
func ChapterForCode(code string) string {
	code = strings.ToUpper(strings.ReplaceAll(code, ".", ""))
	if code == "" {
		return ChapterUnknown
	}

	first := code[0]

	// D and H codes split into two chapters by numeric range.
	switch first {
	case 'D':
		if n, ok := numericPart(code); ok {
			if n <= 49 {
				return ChapterNeoplasms
			}
			if n <= 89 {
				return ChapterBlood
			}
		}
		return ChapterUnknown
	case 'H':
		if n, ok := numericPart(code); ok {
			if n <= 59 {
				return ChapterEye
			}
			if n <= 95 {
				return ChapterEar
			}
		}
		return ChapterUnknown
	}

	if chapter, ok := letterChapters[first]; ok {
		return chapter
	}
	return ChapterUnknown
}

// numericPart parses the two digits following the leading letter.
func numericPart(code string) (int, bool) {
	if len(code) < 3 {
		return 0, false
	}
	n, err := strconv.Atoi(code[1:3])
	if err != nil {
		return 0, false
	}
	return n, true
}
