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

package search

import (
	"errors"
	"fmt"

	"github.com/poiesic/medcode/core"
)

var (
	// ErrRepositoryRequired is returned when a code repository is not provided.
	// It matches core.ErrNotReady under errors.Is.
	ErrRepositoryRequired = fmt.Errorf("%w: code repository required", core.ErrNotReady)

	// ErrIndexRequired is returned when a vector index is not provided.
	// It matches core.ErrNotReady under errors.Is.
	ErrIndexRequired = fmt.Errorf("%w: vector index required", core.ErrNotReady)

	// ErrEmbedderRequired is returned when an embedder is not provided.
	// It matches core.ErrNotReady under errors.Is.
	ErrEmbedderRequired = fmt.Errorf("%w: embedder required", core.ErrNotReady)

	// ErrDetectorRequired is returned when a chapter detector is not provided.
	ErrDetectorRequired = errors.New("chapter detector required")

	// ErrSearcherRequired is returned when a searcher is not provided.
	ErrSearcherRequired = errors.New("searcher required")

	// ErrRerankerRequired is returned when a reranker is not provided.
	ErrRerankerRequired = errors.New("reranker required")

	// ErrPipelineRequired is returned when a retrieval pipeline is not provided.
	ErrPipelineRequired = errors.New("retrieval pipeline required")
)
