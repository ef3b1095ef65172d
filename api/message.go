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

	"github.com/scoutforge/camp-ops-go/directory"
	campjson "github.com/scoutforge/camp-ops-go/json"
	"github.com/scoutforge/camp-ops-go/lib/authz"
	"github.com/scoutforge/camp-ops-go/lib/herr"
	"github.com/scoutforge/camp-ops-go/store"
)

// GetMessages returns the caller's conversation with the partner named
// in the query string. Fetching a conversation marks it read.
type GetMessages struct {
	db     *store.Store
	admins []string
}

func (action GetMessages) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.getMessages(req)
	if errHTTP != nil {
		errHTTP.From("[getMessages]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, resp)
}

func (action GetMessages) getMessages(req *http.Request) ([]store.Message, *herr.HTTPError) {
	jwtCtx, errHTTP := requirePermissions(req, action.admins, authz.ExchangeMessages)
	if errHTTP != nil {
		return nil, errHTTP.From("[requirePermissions]")
	}
	partner := req.URL.Query().Get("partner")
	if partner == "" {
		return nil, herr.BadRequest("A partner query parameter is required", nil).SetExpectedError()
	}
	me := jwtCtx.Claims.Username
	thread, err := action.db.Messages.Conversation(me, partner)
	if err != nil {
		return nil, herr.InternalServerError("Failed to load conversation", err).From("[Conversation]")
	}
	if err = action.db.Messages.MarkConversationRead(me, partner); err != nil {
		return nil, herr.InternalServerError("Failed to mark conversation read", err).From("[MarkConversationRead]")
	}
	if thread == nil {
		thread = []store.Message{}
	}
	return thread, nil
}

type PostMessage struct {
	db        *store.Store
	userStore *directory.UserStore
	admins    []string
}

func (action PostMessage) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.postMessage(req)
	if errHTTP != nil {
		errHTTP.From("[postMessage]").WriteResponse(w)
		return
	}
	w.WriteHeader(http.StatusCreated)
	mustWriteJSON(w, req, resp)
}

func (action PostMessage) postMessage(req *http.Request) (store.Message, *herr.HTTPError) {
	var empty store.Message
	jwtCtx, errHTTP := requirePermissions(req, action.admins, authz.ExchangeMessages)
	if errHTTP != nil {
		return empty, errHTTP.From("[requirePermissions]")
	}
	vals, errHTTP := readBodyAs[campjson.MessageSend](req)
	if errHTTP != nil {
		return empty, errHTTP.From("[readBodyAs]")
	}
	if vals.Text == "" {
		return empty, herr.BadRequest("A message text is required", nil).SetExpectedError()
	}
	me := jwtCtx.Claims.Username
	if vals.To == me {
		return empty, herr.BadRequest("You may not message yourself", nil).SetExpectedError()
	}
	_, found, err := action.userStore.Lookup(req.Context(), vals.To)
	if err != nil {
		return empty, herr.InternalServerError("Failed to look up recipient", err).From("[Lookup]")
	}
	if !found {
		return empty, herr.NotFound("No such recipient", nil).SetExpectedError()
	}
	sent, err := action.db.Messages.Send(me, vals.To, vals.Text)
	if err != nil {
		return empty, herr.InternalServerError("Failed to send message", err).From("[Send]")
	}
	return sent, nil
}

type GetMessagePartners struct {
	db     *store.Store
	admins []string
}

func (action GetMessagePartners) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.getMessagePartners(req)
	if errHTTP != nil {
		errHTTP.From("[getMessagePartners]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, resp)
}

func (action GetMessagePartners) getMessagePartners(req *http.Request) ([]campjson.MessagePartner, *herr.HTTPError) {
	jwtCtx, errHTTP := requirePermissions(req, action.admins, authz.ExchangeMessages)
	if errHTTP != nil {
		return nil, errHTTP.From("[requirePermissions]")
	}
	me := jwtCtx.Claims.Username
	partners, err := action.db.Messages.Partners(me)
	if err != nil {
		return nil, herr.InternalServerError("Failed to list partners", err).From("[Partners]")
	}
	resp := make([]campjson.MessagePartner, 0, len(partners))
	for _, partner := range partners {
		unread, err := action.db.Messages.UnreadCount(me, partner)
		if err != nil {
			return nil, herr.InternalServerError("Failed to count unread messages", err).From("[UnreadCount]")
		}
		resp = append(resp, campjson.MessagePartner{Username: partner, UnreadCount: unread})
	}
	return resp, nil
}
