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

package authz

import (
	"slices"

	"github.com/scoutforge/camp-ops-go/directory"
)

type PermissionMask uint16

const NoPermissions PermissionMask = 0

const (
	// ManageUsers covers the personnel admin surface: adding, deleting,
	// disabling accounts and resetting passwords.
	ManageUsers PermissionMask = 1 << iota
	// ManageCamps covers camp lifecycle and budget: create, delete,
	// food stock top-ups and pay rates.
	ManageCamps
	// SuperviseCamps covers the scout-leader surface: supervision,
	// camper rosters, activity logs, daily records, food requirements.
	SuperviseCamps
	// ViewReports covers read-only reporting: dashboard, shortage and
	// earnings figures, notifications.
	ViewReports
	// ExchangeMessages covers the direct-messaging surface.
	ExchangeMessages
)

var rolePermissions = map[directory.Role]PermissionMask{
	directory.RoleAdmin:       ManageUsers | ViewReports | ExchangeMessages,
	directory.RoleLogistics:   ManageCamps | ViewReports | ExchangeMessages,
	directory.RoleScoutLeader: SuperviseCamps | ViewReports | ExchangeMessages,
}

// Permissions maps a role to its mask. Extra admin usernames from the
// configuration get ManageUsers on top of whatever their role grants.
func Permissions(role directory.Role, username string, extraAdmins []string) PermissionMask {
	perms := rolePermissions[role]
	if slices.Contains(extraAdmins, username) {
		perms |= ManageUsers
	}
	return perms
}
