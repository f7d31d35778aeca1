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

// Package search implements ranked retrieval of diagnostic codes.
//
// Retrieval is a three-stage process:
//   - Searcher embeds the query text and finds the nearest catalog codes
//     by vector distance, converting distances into confidence scores.
//   - Reranker boosts candidates whose chapter matches the chapter
//     detected from the query text, then re-sorts by confidence.
//   - Pipeline composes the two, over-fetching before the rerank so that
//     boosted candidates outside the initial cut can still surface.
//
// Aggregator runs the pipeline once per query across a worker pool and
// merges the per-query results into a single deduplicated ranking.
package search
