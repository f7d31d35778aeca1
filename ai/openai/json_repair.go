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


package openai

// repairJSON fixes the one malformation small extraction models produce
// often enough to matter: an object key missing its opening quote, as in
// `, severity": "acute"`. Anything it does not recognize passes through
// unchanged and fails at unmarshal instead.
func repairJSON(s string) string {
	in := []rune(s)
	out := make([]rune, 0, len(in)+16)

	i := 0
	for i < len(in) {
		ch := in[i]

		// A key can only start after { or , so only scan there.
		if ch == '{' || ch == ',' {
			out = append(out, ch)
			i++

			for i < len(in) && (in[i] == ' ' || in[i] == '\n' || in[i] == '\t') {
				out = append(out, in[i])
				i++
			}

			if i < len(in) && in[i] != '"' && isASCIILetter(in[i]) {
				keyStart := i
				for i < len(in) && (isASCIILetter(in[i]) || in[i] == '_' || in[i] == ' ') {
					i++
				}
				keyEnd := i

				// `word":` here means the opening quote was dropped.
				if i+1 < len(in) && in[i] == '"' && in[i+1] == ':' {
					out = append(out, '"')
					for j := keyStart; j < keyEnd; j++ {
						if in[j] != ' ' || (j > keyStart && j < keyEnd-1) {
							out = append(out, in[j])
						}
					}
					// The closing quote at in[i] is copied on the next pass.
					continue
				}

				// Not a key after all, copy the scanned run as-is.
				for j := keyStart; j < i; j++ {
					out = append(out, in[j])
				}
			}
		} else {
			out = append(out, ch)
			i++
		}
	}

	return string(out)
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
