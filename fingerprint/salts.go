// Copyright 2026 The Cmdline Authors.
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

package fingerprint

import "github.com/google/uuid"

// Stable per-feature fingerprint salts. These bit patterns are part of the
// on-disk cache compatibility surface: never change them.
var (
	ExpandDirectories = uuid.MustParse("9d7520d2-a187-11e8-98d0-529269fb1459")
	Uniquify          = uuid.MustParse("7f494c3e-faea-4498-a521-5d3bc6ee19eb")
	OmitIfEmpty       = uuid.MustParse("923206f1-6474-4a8f-b30f-4dd3143622e6")
	HasArgName        = uuid.MustParse("2bc00382-7199-46ec-ad52-1556577cde1a")
	HasFormatEach     = uuid.MustParse("8e974aec-df07-4a51-9418-f4c1172b4045")
	HasBeforeEach     = uuid.MustParse("f7e101bc-644d-4277-8562-6515ad55a988")
	HasJoinWith       = uuid.MustParse("c227dbd3-edad-454e-bc8a-c9b5ba1c38a3")
	HasFormatJoined   = uuid.MustParse("528af376-4233-4c27-be4d-b0ff24ed68db")
	HasTerminateWith  = uuid.MustParse("a4e5e090-0dbd-4d41-899a-77cfbba58655")
	SingleFormatted   = uuid.MustParse("8cb96642-a235-4fe0-b3ed-ebfdae8a0bd9")
)
