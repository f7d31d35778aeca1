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

import "errors"

var (
	// ErrNotReady indicates a required collaborator (embedder or index) was
	// never initialized. Fatal to the caller; never retried.
	ErrNotReady = errors.New("retrieval dependencies not ready")

	// ErrInvalidArgument indicates a caller-supplied parameter is out of range.
	// Rejected before any collaborator call.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyQuery indicates the query text is empty.
	ErrEmptyQuery = errors.New("query text cannot be empty")

	// ErrInvalidCode indicates a code identifier failed validation.
	ErrInvalidCode = errors.New("invalid code")

	// ErrEmptyDescription indicates a catalog entry has no description.
	ErrEmptyDescription = errors.New("description cannot be empty")
)
