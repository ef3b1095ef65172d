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

package api

import (
	"net/http"
	"os"
	"path/filepath"

	campjson "github.com/scoutforge/camp-ops-go/json"
	"github.com/scoutforge/camp-ops-go/lib/format"
	"github.com/scoutforge/camp-ops-go/lib/herr"
	"github.com/scoutforge/camp-ops-go/store"
)

// GetStatus reports server health plus the size of each store file, so
// an operator can see data growth without shelling into the host.
type GetStatus struct {
	db *store.Store
}

func (action GetStatus) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.getStatus()
	if errHTTP != nil {
		errHTTP.From("[getStatus]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, resp)
}

func (action GetStatus) getStatus() (campjson.ServerStatus, *herr.HTTPError) {
	dir := action.db.Dir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return campjson.ServerStatus{}, herr.InternalServerError("Failed to read data directory", err).From("[ReadDir]")
	}
	sizes := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		sizes[entry.Name()] = format.HumanByteSize(info.Size())
	}
	return campjson.ServerStatus{
		Status:    "ok",
		DataDir:   dir,
		FileSizes: sizes,
	}, nil
}
