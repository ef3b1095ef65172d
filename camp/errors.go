//
// See the file COPYRIGHT for copyright information.
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
//

package camp

import "errors"

var (
	// ErrValidation covers rejected numeric or textual input. The caller
	// is informed and no partial state change is made.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound means a referenced camp name or index does not exist.
	ErrNotFound = errors.New("camp not found")

	// ErrConflict means a selected set of camps overlaps in date range.
	// Supervision assignment is all-or-nothing, so nothing is mutated.
	ErrConflict = errors.New("selected camps overlap")
)
