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

// Package directory manages the user accounts behind authentication:
// who exists, what role they hold, and whether their login is disabled.
// Accounts live in a line-oriented credential file, with disabled
// usernames tracked in a second file alongside it.
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"github.com/scoutforge/camp-ops-go/lib/cache"
)

// Role is the access level attached to a user account.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleScoutLeader Role = "scout leader"
	RoleLogistics   Role = "logistics coordinator"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleScoutLeader, RoleLogistics:
		return true
	}
	return false
}

// User is one account in the credential file.
type User struct {
	Role         Role
	Username     string
	PasswordHash string
	Disabled     bool
}

var (
	ErrUnknownUser   = errors.New("no such user")
	ErrDuplicateUser = errors.New("username already taken")
	ErrBadRole       = errors.New("unknown role")
	ErrBadUsername   = errors.New("unusable username")
)

// UserStore reads and edits the credential files. Reads go through a
// TTL cache so the hot login path doesn't reparse the file on every
// request; every write invalidates the cache.
type UserStore struct {
	loginsPath   string
	disabledPath string

	usersCache *cache.InMemory[[]User]
}

func NewUserStore(loginsPath, disabledPath string, cacheTTL time.Duration) *UserStore {
	us := &UserStore{
		loginsPath:   loginsPath,
		disabledPath: disabledPath,
	}
	us.usersCache = cache.New[[]User](cacheTTL, us.readUsers)
	return us
}

// Users returns every account, in file order, with Disabled filled in.
func (us *UserStore) Users(ctx context.Context) ([]User, error) {
	users, err := us.usersCache.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("[usersCache.Get]: %w", err)
	}
	return *users, nil
}

// Lookup finds one account by exact username.
func (us *UserStore) Lookup(ctx context.Context, username string) (User, bool, error) {
	users, err := us.Users(ctx)
	if err != nil {
		return User{}, false, fmt.Errorf("[Users]: %w", err)
	}
	for _, u := range users {
		if u.Username == username {
			return u, true, nil
		}
	}
	return User{}, false, nil
}

// Add appends a new account. The username must not collide with an
// existing one, and the role must be known.
func (us *UserStore) Add(ctx context.Context, role Role, username, passwordHash string) error {
	if !role.Valid() {
		return fmt.Errorf("%w: %q", ErrBadRole, role)
	}
	username = strings.TrimSpace(username)
	if username == "" || strings.Contains(username, ",") {
		return fmt.Errorf("%w: %q", ErrBadUsername, username)
	}
	_, found, err := us.Lookup(ctx, username)
	if err != nil {
		return fmt.Errorf("[Lookup]: %w", err)
	}
	if found {
		return fmt.Errorf("%w: %q", ErrDuplicateUser, username)
	}
	users, err := us.Users(ctx)
	if err != nil {
		return fmt.Errorf("[Users]: %w", err)
	}
	users = append(users, User{Role: role, Username: username, PasswordHash: passwordHash})
	return us.writeUsers(users)
}

// SetPassword replaces the stored hash for an existing account.
func (us *UserStore) SetPassword(ctx context.Context, username, passwordHash string) error {
	return us.edit(ctx, username, func(u *User) {
		u.PasswordHash = passwordHash
	})
}

// Delete removes an account from the credential file and clears it from
// the disabled list too.
func (us *UserStore) Delete(ctx context.Context, username string) error {
	users, err := us.Users(ctx)
	if err != nil {
		return fmt.Errorf("[Users]: %w", err)
	}
	kept := slices.DeleteFunc(slices.Clone(users), func(u User) bool {
		return u.Username == username
	})
	if len(kept) == len(users) {
		return fmt.Errorf("%w: %q", ErrUnknownUser, username)
	}
	if err = us.writeUsers(kept); err != nil {
		return err
	}
	disabled, err := us.readDisabled()
	if err != nil {
		return fmt.Errorf("[readDisabled]: %w", err)
	}
	if slices.Contains(disabled, username) {
		disabled = slices.DeleteFunc(disabled, func(d string) bool { return d == username })
		if err = us.writeDisabled(disabled); err != nil {
			return err
		}
	}
	return nil
}

// Disable blocks an account from logging in without deleting it.
func (us *UserStore) Disable(ctx context.Context, username string) error {
	_, found, err := us.Lookup(ctx, username)
	if err != nil {
		return fmt.Errorf("[Lookup]: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: %q", ErrUnknownUser, username)
	}
	disabled, err := us.readDisabled()
	if err != nil {
		return fmt.Errorf("[readDisabled]: %w", err)
	}
	if slices.Contains(disabled, username) {
		return nil
	}
	return us.writeDisabled(append(disabled, username))
}

// Enable lifts a Disable. Enabling an already-enabled account is a no-op.
func (us *UserStore) Enable(ctx context.Context, username string) error {
	disabled, err := us.readDisabled()
	if err != nil {
		return fmt.Errorf("[readDisabled]: %w", err)
	}
	if !slices.Contains(disabled, username) {
		return nil
	}
	disabled = slices.DeleteFunc(disabled, func(d string) bool { return d == username })
	return us.writeDisabled(disabled)
}

func (us *UserStore) edit(ctx context.Context, username string, mutate func(*User)) error {
	users, err := us.Users(ctx)
	if err != nil {
		return fmt.Errorf("[Users]: %w", err)
	}
	users = slices.Clone(users)
	for i := range users {
		if users[i].Username == username {
			mutate(&users[i])
			return us.writeUsers(users)
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownUser, username)
}

// readUsers parses the credential file, one "role,username,hash" line
// per account. Lines that don't fit the shape are logged and skipped so
// that one mangled line can't lock everyone out.
func (us *UserStore) readUsers(_ context.Context) ([]User, error) {
	data, err := os.ReadFile(us.loginsPath)
	if errors.Is(err, os.ErrNotExist) {
		return []User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("[os.ReadFile]: %w", err)
	}
	disabled, err := us.readDisabled()
	if err != nil {
		return nil, fmt.Errorf("[readDisabled]: %w", err)
	}
	var users []User
	for lineNo, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ",", 3)
		if len(parts) != 3 || !Role(parts[0]).Valid() || parts[1] == "" {
			slog.Warn("Skipping malformed credential line",
				"path", us.loginsPath, "line", lineNo+1)
			continue
		}
		users = append(users, User{
			Role:         Role(parts[0]),
			Username:     parts[1],
			PasswordHash: parts[2],
			Disabled:     slices.Contains(disabled, parts[1]),
		})
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

func (us *UserStore) writeUsers(users []User) error {
	var b strings.Builder
	for _, u := range users {
		b.WriteString(string(u.Role))
		b.WriteString(",")
		b.WriteString(u.Username)
		b.WriteString(",")
		b.WriteString(u.PasswordHash)
		b.WriteString("\n")
	}
	if err := atomic.WriteFile(us.loginsPath, strings.NewReader(b.String())); err != nil {
		return fmt.Errorf("[atomic.WriteFile]: %w", err)
	}
	us.usersCache.Invalidate()
	return nil
}

func (us *UserStore) readDisabled() ([]string, error) {
	data, err := os.ReadFile(us.disabledPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("[os.ReadFile]: %w", err)
	}
	var disabled []string
	for _, field := range strings.FieldsFunc(string(data), func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	}) {
		field = strings.TrimSpace(field)
		if field != "" && !slices.Contains(disabled, field) {
			disabled = append(disabled, field)
		}
	}
	return disabled, nil
}

func (us *UserStore) writeDisabled(disabled []string) error {
	content := strings.Join(disabled, ",")
	if err := atomic.WriteFile(us.disabledPath, strings.NewReader(content)); err != nil {
		return fmt.Errorf("[atomic.WriteFile]: %w", err)
	}
	us.usersCache.Invalidate()
	return nil
}
