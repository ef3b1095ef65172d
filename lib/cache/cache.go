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

// Package cache provides a single-value TTL cache, used to keep hot
// read paths off the flat files that back the application.
package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// InMemory caches one value of type T for a fixed TTL. Reads are
// lock-free while the value is fresh; a single writer refreshes it when
// it expires, and other callers wait rather than refreshing in parallel.
type InMemory[T any] struct {
	current   atomic.Pointer[entry[T]]
	ttl       time.Duration
	refresher func(context.Context) (T, error)
	refreshMu sync.Mutex
}

type entry[T any] struct {
	value     T
	fetchedAt time.Time
}

// New creates an InMemory cache. The refresher fetches a new value
// whenever the cached one is older than ttl. A ttl of zero disables
// caching entirely: every Get refreshes.
func New[T any](
	ttl time.Duration,
	refresher func(context.Context) (T, error),
) *InMemory[T] {
	im := &InMemory[T]{
		ttl:       ttl,
		refresher: refresher,
	}
	im.current.Store(&entry[T]{fetchedAt: time.Time{}})
	return im
}

// Get returns the cached value, refreshing it first if it has expired.
func (im *InMemory[T]) Get(ctx context.Context) (*T, error) {
	e := im.current.Load()
	if e.fresh(im.ttl) {
		return &e.value, nil
	}

	im.refreshMu.Lock()
	defer im.refreshMu.Unlock()
	// another caller may have refreshed while we waited for the lock
	e = im.current.Load()
	if e.fresh(im.ttl) {
		return &e.value, nil
	}

	value, err := im.refresher(ctx)
	if err != nil {
		return nil, fmt.Errorf("[refresher]: %w", err)
	}
	im.current.Store(&entry[T]{value: value, fetchedAt: time.Now()})
	return &value, nil
}

// Invalidate expires the cached value, forcing the next Get to refresh.
func (im *InMemory[T]) Invalidate() {
	im.refreshMu.Lock()
	defer im.refreshMu.Unlock()
	im.current.Store(&entry[T]{fetchedAt: time.Time{}})
}

func (e *entry[T]) fresh(ttl time.Duration) bool {
	if e.fetchedAt.IsZero() {
		return false
	}
	return time.Now().Before(e.fetchedAt.Add(ttl))
}
