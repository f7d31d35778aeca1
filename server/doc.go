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

// Package server exposes code suggestion over HTTP.
//
// Endpoints:
//   - POST /suggest: ranked code suggestions for a short text
//   - POST /suggest/clinical: entity extraction plus multi-query retrieval
//     for full clinical notes
//   - GET  /detect: chapter detection probe
//   - GET  /chapters: the chapter list
//   - GET  /health: readiness and catalog statistics
package server
