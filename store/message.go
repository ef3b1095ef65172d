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

package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Message is one direct message between two users.
type Message struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// MessageStore keeps all direct messages in one document, shaped as
// {"messages": [...]} to match the historical file layout.
type MessageStore struct {
	path string
}

type messageDocument struct {
	Messages []Message `json:"messages"`
}

// All returns every stored message in append order.
func (ms *MessageStore) All() ([]Message, error) {
	data, err := readFile(ms.path)
	if err != nil {
		return nil, fmt.Errorf("[readFile]: %w", err)
	}
	if len(data) == 0 {
		return []Message{}, nil
	}
	var doc messageDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Error("Message store is corrupted; treating it as empty",
			"path", ms.path, "err", err)
		return []Message{}, nil
	}
	return doc.Messages, nil
}

func (ms *MessageStore) save(messages []Message) error {
	if err := writeJSON(ms.path, messageDocument{Messages: messages}); err != nil {
		return fmt.Errorf("[writeJSON]: %w", err)
	}
	return nil
}

// Send appends a new unread message and returns it.
func (ms *MessageStore) Send(from, to, text string) (Message, error) {
	msg := Message{
		ID:        uuid.NewString(),
		From:      from,
		To:        to,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
	messages, err := ms.All()
	if err != nil {
		return Message{}, fmt.Errorf("[All]: %w", err)
	}
	messages = append(messages, msg)
	if err = ms.save(messages); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// Conversation returns all messages between two users, oldest first.
func (ms *MessageStore) Conversation(user, other string) ([]Message, error) {
	messages, err := ms.All()
	if err != nil {
		return nil, fmt.Errorf("[All]: %w", err)
	}
	thread := make([]Message, 0)
	for _, m := range messages {
		if (m.From == user && m.To == other) || (m.From == other && m.To == user) {
			thread = append(thread, m)
		}
	}
	slices.SortStableFunc(thread, func(a, b Message) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return thread, nil
}

// Partners lists the users this user has exchanged messages with,
// sorted by name.
func (ms *MessageStore) Partners(user string) ([]string, error) {
	messages, err := ms.All()
	if err != nil {
		return nil, fmt.Errorf("[All]: %w", err)
	}
	var partners []string
	for _, m := range messages {
		var other string
		switch user {
		case m.From:
			other = m.To
		case m.To:
			other = m.From
		default:
			continue
		}
		if !slices.Contains(partners, other) {
			partners = append(partners, other)
		}
	}
	slices.Sort(partners)
	return partners, nil
}

// UnreadCount counts unread messages sent to user. With a non-empty
// from, only messages from that sender are counted.
func (ms *MessageStore) UnreadCount(user, from string) (int, error) {
	messages, err := ms.All()
	if err != nil {
		return 0, fmt.Errorf("[All]: %w", err)
	}
	count := 0
	for _, m := range messages {
		if m.To != user || m.Read {
			continue
		}
		if from != "" && m.From != from {
			continue
		}
		count++
	}
	return count, nil
}

// MarkConversationRead marks every message from other to user as read.
// The document is only rewritten when something actually changed.
func (ms *MessageStore) MarkConversationRead(user, other string) error {
	messages, err := ms.All()
	if err != nil {
		return fmt.Errorf("[All]: %w", err)
	}
	changed := false
	for i := range messages {
		if messages[i].From == other && messages[i].To == user && !messages[i].Read {
			messages[i].Read = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return ms.save(messages)
}
