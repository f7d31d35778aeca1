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

package ingestion

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// DatasetEntry is one line of a JSONL catalog dataset.
type DatasetEntry struct {
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Synonyms    []string `json:"synonyms,omitempty"`
}

// EmbeddingText returns the text embedded for this entry: the description,
// followed by any synonyms so alternate phrasings land near the code too.
func (e *DatasetEntry) EmbeddingText() string {
	if len(e.Synonyms) == 0 {
		return e.Description
	}
	return e.Description + "; " + strings.Join(e.Synonyms, "; ")
}

// ReadDataset reads a JSONL dataset file and returns its entries together
// with a BLAKE2b fingerprint of the raw file contents. Blank lines are
// skipped; a malformed line fails the whole read with its line number.
func ReadDataset(path string) ([]DatasetEntry, string, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	fingerprint := Fingerprint(contents)

	var entries []DatasetEntry
	scanner := bufio.NewScanner(bytes.NewReader(contents))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var entry DatasetEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, "", fmt.Errorf("dataset line %d: %w", lineNo, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, "", err
	}

	return entries, fingerprint, nil
}

// Fingerprint returns a hex-encoded BLAKE2b digest of the given bytes.
func Fingerprint(contents []byte) string {
	h, _ := blake2b.New(16, nil)
	h.Write(contents)
	return hex.EncodeToString(h.Sum(nil))
}
