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

package authn

import (
	"errors"
	"strings"
	"sync"

	"github.com/scoutforge/camp-ops-go/lib/argon2id"
)

// argonLocker disallows concurrent calls into the Argon2id hash
// algorithm. Each call needs tens of MiB of working memory, and a burst
// of login attempts would otherwise push the process over the memory
// limit of a small deployment.
var argonLocker sync.Mutex

// Verify checks a password against the stored credential-file value.
// Only argon2id hashes are accepted; any legacy plaintext value still
// sitting in the file fails closed and must be reset by an admin.
func Verify(password, storedValue string) (isValid bool, err error) {
	if !strings.HasPrefix(storedValue, "$argon2id") {
		return false, errors.New("unsupported non-argon2id stored password")
	}
	argonLocker.Lock()
	defer argonLocker.Unlock()
	return argon2id.ComparePasswordAndHash(password, storedValue)
}

func NewSaltedArgon2idDevOnly(password string) string {
	// do not use DevelopmentParams for production use!
	return argon2id.CreateHash(password, argon2id.DevelopmentParams)
}
