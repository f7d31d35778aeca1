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


// Package storage defines the persistence abstractions for the code catalog.
//
// The catalog is write-once, read-many: ingestion populates it with codes and
// their embedding vectors, after which every retrieval request only reads.
// Records are serialized with MUS binary codecs generated in the core package
// (run go generate ./core to regenerate after model changes).
//
// The storage/badger sub-package provides the BadgerDB implementation.
package storage
