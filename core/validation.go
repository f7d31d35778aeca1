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


package core

import (
	"fmt"
)

// ValidateCode validates a catalog Code according to domain rules.
//
// Validation rules:
//   - Id must not be empty
//   - Description must not be empty
//
// NOT validated (populated during ingestion):
//   - Vector (can be empty until the embedding step runs)
//   - Chapter (derived from the code identifier)
func ValidateCode(code *Code) error {
	if code == nil {
		return fmt.Errorf("%w: code is nil", ErrInvalidCode)
	}

	if code.Id == "" {
		return fmt.Errorf("%w: empty identifier", ErrInvalidCode)
	}

	if code.Description == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCode, ErrEmptyDescription)
	}

	return nil
}

// ValidateTopK validates a requested result count.
// A count below 1 is rejected before any collaborator is called.
func ValidateTopK(topK int) error {
	if topK < 1 {
		return fmt.Errorf("%w: topK must be >= 1, got %d", ErrInvalidArgument, topK)
	}
	return nil
}

// ValidateMinConfidence validates a minimum-confidence threshold.
func ValidateMinConfidence(minConfidence float64) error {
	if minConfidence < 0 || minConfidence > 1 {
		return fmt.Errorf("%w: minConfidence must be in [0, 1], got %g", ErrInvalidArgument, minConfidence)
	}
	return nil
}

// ClampConfidence clamps a confidence score to the closed interval [0, 1].
// Boosting can overshoot 1.0; every candidate passes through this before it
// leaves the reranker.
func ClampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
