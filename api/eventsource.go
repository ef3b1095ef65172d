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
	"encoding/json"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/launchdarkly/eventsource"
)

const EventSourceChannel = "campevents"

type CampEventData struct {
	Comment string `json:"comment,omitzero"`

	// Exactly one of CampName+kind or InitialEvent is set per event.
	// Shortage distinguishes a shortage alert from a plain camp update.

	CampName     string `json:"camp_name,omitzero"`
	Shortage     bool   `json:"shortage,omitzero"`
	InitialEvent bool   `json:"initial_event,omitzero"`
}

type CampEvent struct {
	EventID   int64
	EventData CampEventData
}

func (e CampEvent) Id() string {
	return strconv.FormatInt(e.EventID, 10)
}

func (e CampEvent) Event() string {
	switch {
	case e.EventData.InitialEvent:
		return "InitialEvent"
	case e.EventData.Shortage:
		return "Shortage"
	case e.EventData.CampName != "":
		return "Camp"
	default:
		return "UnknownEvent"
	}
}

func (e CampEvent) Data() string {
	b, err := json.Marshal(e.EventData)
	if err != nil {
		slog.Error("Error converting CampEvent to JSON", "EventData", e.EventData, "err", err)
	}
	return string(b)
}

// EventSourcerer publishes camp-update and shortage events over SSE, so
// open dashboards can refetch without polling.
type EventSourcerer struct {
	Server    *eventsource.Server
	IdCounter atomic.Int64
}

func NewEventSourcerer() *EventSourcerer {
	es := &EventSourcerer{
		Server:    eventsource.NewServer(),
		IdCounter: atomic.Int64{},
	}
	es.Server.Register(EventSourceChannel, es)
	es.Server.ReplayAll = true
	return es
}

func (es *EventSourcerer) Replay(channel, id string) chan eventsource.Event {
	if channel != EventSourceChannel {
		return nil
	}
	out := make(chan eventsource.Event, 1)
	out <- CampEvent{
		EventID: es.IdCounter.Load(),
		EventData: CampEventData{
			InitialEvent: true,
			Comment:      "The most recent SSE ID is provided in this message",
		},
	}
	close(out)
	return out
}

func (es *EventSourcerer) notifyCampUpdate(campName string) {
	if campName == "" {
		return
	}
	es.Server.Publish([]string{EventSourceChannel}, CampEvent{
		EventID: es.IdCounter.Add(1),
		EventData: CampEventData{
			CampName: campName,
		},
	})
}

func (es *EventSourcerer) notifyShortage(campName string) {
	if campName == "" {
		return
	}
	es.Server.Publish([]string{EventSourceChannel}, CampEvent{
		EventID: es.IdCounter.Add(1),
		EventData: CampEventData{
			CampName: campName,
			Shortage: true,
		},
	})
}
