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

// Package argon2id hashes and verifies passwords with Argon2id, using
// the standard encoded form:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<base64 salt>$<base64 key>
//
// Decoding is strict: a hash that doesn't match the form exactly is
// rejected rather than partially parsed.
package argon2id

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	// ErrInvalidHash means the encoded hash is not in the expected format.
	ErrInvalidHash = errors.New("argon2id: hash is not in the correct format")

	// ErrIncompatibleVariant means the hash was made with a different
	// argon2 variant, such as argon2i or argon2d.
	ErrIncompatibleVariant = errors.New("argon2id: incompatible variant of argon2")

	// ErrIncompatibleVersion means the hash was made with a different
	// version of argon2.
	ErrIncompatibleVersion = errors.New("argon2id: incompatible version of argon2")
)

// Params describes the Argon2id cost parameters and output sizes.
type Params struct {
	// Memory is the amount of memory used by the algorithm, in KiB.
	Memory uint32

	// Iterations is the number of passes over the memory.
	Iterations uint32

	// Parallelism is the number of threads used by the algorithm.
	Parallelism uint8

	// SaltLength is the length of the random salt, in bytes.
	SaltLength uint32

	// KeyLength is the length of the derived key, in bytes.
	KeyLength uint32
}

// DevelopmentParams are quick-to-compute parameters for development and
// testing. Production deployments should tune these upward.
var DevelopmentParams = &Params{
	Memory:      64 * 1024,
	Iterations:  1,
	Parallelism: uint8(min(runtime.NumCPU(), 255)),
	SaltLength:  16,
	KeyLength:   32,
}

// CreateHash derives a key from the password and returns the full
// encoded hash, salt included. Two calls with the same password give
// different hashes, because each call draws a fresh random salt.
func CreateHash(password string, params *Params) string {
	salt := make([]byte, params.SaltLength)
	// crypto/rand.Read never returns an error
	_, _ = rand.Read(salt)

	key := argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Key := base64.RawStdEncoding.EncodeToString(key)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, params.Memory, params.Iterations, params.Parallelism, b64Salt, b64Key)
}

// ComparePasswordAndHash reports whether the password matches the
// encoded hash.
func ComparePasswordAndHash(password, hash string) (match bool, err error) {
	match, _, err = CheckHash(password, hash)
	return match, err
}

// CheckHash is like ComparePasswordAndHash but also returns the decoded
// parameters, so callers can detect hashes made with outdated costs.
func CheckHash(password, hash string) (match bool, params *Params, err error) {
	params, salt, key, err := DecodeHash(hash)
	if err != nil {
		return false, nil, err
	}
	otherKey := argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)
	if subtle.ConstantTimeCompare(key, otherKey) == 1 {
		return true, params, nil
	}
	return false, params, nil
}

// DecodeHash pulls the parameters, salt, and derived key out of an
// encoded hash.
func DecodeHash(hash string) (params *Params, salt, key []byte, err error) {
	vals := strings.Split(hash, "$")
	if len(vals) != 6 || vals[0] != "" {
		return nil, nil, nil, ErrInvalidHash
	}
	if vals[1] != "argon2id" {
		return nil, nil, nil, ErrIncompatibleVariant
	}

	version, err := prefixedUint(vals[2], "v=", 32)
	if err != nil {
		return nil, nil, nil, err
	}
	if int(version) != argon2.Version {
		return nil, nil, nil, ErrIncompatibleVersion
	}

	perf := strings.Split(vals[3], ",")
	if len(perf) != 3 {
		return nil, nil, nil, ErrInvalidHash
	}
	memory, err := prefixedUint(perf[0], "m=", 32)
	if err != nil {
		return nil, nil, nil, err
	}
	iterations, err := prefixedUint(perf[1], "t=", 32)
	if err != nil {
		return nil, nil, nil, err
	}
	parallelism, err := prefixedUint(perf[2], "p=", 8)
	if err != nil {
		return nil, nil, nil, err
	}

	salt, err = base64.RawStdEncoding.Strict().DecodeString(vals[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}
	key, err = base64.RawStdEncoding.Strict().DecodeString(vals[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}

	params = &Params{
		Memory:      uint32(memory),
		Iterations:  uint32(iterations),
		Parallelism: uint8(parallelism),
		SaltLength:  uint32(len(salt)),
		KeyLength:   uint32(len(key)),
	}
	return params, salt, key, nil
}

// prefixedUint parses "k=123" style fields. Anything before or after
// the digits makes the whole hash invalid.
func prefixedUint(s, prefix string, bitSize int) (uint64, error) {
	if !strings.HasPrefix(s, prefix) {
		return 0, ErrInvalidHash
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(s, prefix), 10, bitSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}
	return n, nil
}
