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


package storage

import (
	"github.com/poiesic/medcode/core"
)

// MarshalCode serializes a Code to bytes.
func MarshalCode(code *core.Code) []byte {
	buf := make([]byte, core.CodeMUS.Size(*code))
	core.CodeMUS.Marshal(*code, buf)
	return buf
}

// UnmarshalCode deserializes a Code from bytes.
func UnmarshalCode(data []byte) (*core.Code, error) {
	code, _, err := core.CodeMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &code, nil
}

// MarshalDatasetInfo serializes a DatasetInfo to bytes.
func MarshalDatasetInfo(info *core.DatasetInfo) []byte {
	buf := make([]byte, core.DatasetInfoMUS.Size(*info))
	core.DatasetInfoMUS.Marshal(*info, buf)
	return buf
}

// UnmarshalDatasetInfo deserializes a DatasetInfo from bytes.
func UnmarshalDatasetInfo(data []byte) (*core.DatasetInfo, error) {
	info, _, err := core.DatasetInfoMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &info, nil
}
