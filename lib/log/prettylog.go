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

// Package log provides a human-readable slog.Handler for local
// development, printing one line per record with attrs as indented
// JSON, rather than the machine-oriented JSON of slog's own handlers.
package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

const timeFormat = "[15:04:05.000]"

type Handler struct {
	h slog.Handler
	r func([]string, slog.Attr) slog.Attr
	b *bytes.Buffer
	m *sync.Mutex

	writer           io.Writer
	outputEmptyAttrs bool
}

type Option func(h *Handler)

// WithDestinationWriter sends output somewhere other than stderr.
func WithDestinationWriter(writer io.Writer) Option {
	return func(h *Handler) {
		h.writer = writer
	}
}

// WithOutputEmptyAttrs prints "{}" on records that carry no attrs,
// instead of omitting the attr block.
func WithOutputEmptyAttrs() Option {
	return func(h *Handler) {
		h.outputEmptyAttrs = true
	}
}

// New builds a Handler. A nil handlerOptions gets slog defaults.
func New(handlerOptions *slog.HandlerOptions, options ...Option) *Handler {
	if handlerOptions == nil {
		handlerOptions = &slog.HandlerOptions{}
	}
	buf := &bytes.Buffer{}
	handler := &Handler{
		b: buf,
		h: slog.NewJSONHandler(buf, &slog.HandlerOptions{
			Level:       handlerOptions.Level,
			AddSource:   handlerOptions.AddSource,
			ReplaceAttr: suppressDefaults(handlerOptions.ReplaceAttr),
		}),
		r:      handlerOptions.ReplaceAttr,
		m:      &sync.Mutex{},
		writer: os.Stderr,
	}
	for _, opt := range options {
		opt(handler)
	}
	return handler
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		h:                h.h.WithAttrs(attrs),
		r:                h.r,
		b:                h.b,
		m:                h.m,
		writer:           h.writer,
		outputEmptyAttrs: h.outputEmptyAttrs,
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &Handler{
		h:                h.h.WithGroup(name),
		r:                h.r,
		b:                h.b,
		m:                h.m,
		writer:           h.writer,
		outputEmptyAttrs: h.outputEmptyAttrs,
	}
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	attrs, err := h.computeAttrs(ctx, r)
	if err != nil {
		return fmt.Errorf("[computeAttrs]: %w", err)
	}

	var attrsStr string
	if h.outputEmptyAttrs || len(attrs) > 0 {
		attrsBytes, err := json.MarshalIndent(attrs, "", "  ")
		if err != nil {
			return fmt.Errorf("[json.MarshalIndent]: %w", err)
		}
		attrsStr = string(attrsBytes)
	}

	var out strings.Builder
	if !r.Time.IsZero() {
		out.WriteString(r.Time.Format(timeFormat))
		out.WriteString(" ")
	}

	levelAttr := slog.Attr{Key: slog.LevelKey, Value: slog.AnyValue(r.Level)}
	if h.r != nil {
		levelAttr = h.r([]string{}, levelAttr)
	}
	if !levelAttr.Equal(slog.Attr{}) {
		out.WriteString(levelAttr.Value.String())
		out.WriteString(": ")
	}

	out.WriteString(r.Message)
	if attrsStr != "" {
		out.WriteString(" ")
		out.WriteString(attrsStr)
	}
	out.WriteString("\n")

	if _, err = io.WriteString(h.writer, out.String()); err != nil {
		return fmt.Errorf("[io.WriteString]: %w", err)
	}
	return nil
}

// computeAttrs runs the record through the inner JSON handler and
// unmarshals the result, so that groups and ReplaceAttr behave exactly
// as slog defines them.
func (h *Handler) computeAttrs(ctx context.Context, r slog.Record) (map[string]any, error) {
	h.m.Lock()
	defer func() {
		h.b.Reset()
		h.m.Unlock()
	}()
	if err := h.h.Handle(ctx, r); err != nil {
		return nil, fmt.Errorf("[Handle]: %w", err)
	}

	var attrs map[string]any
	if err := json.Unmarshal(h.b.Bytes(), &attrs); err != nil {
		return nil, fmt.Errorf("[json.Unmarshal]: %w", err)
	}
	return attrs, nil
}

// suppressDefaults drops the time, level, and message attrs from the
// inner handler's output, since Handle prints those itself.
func suppressDefaults(next func([]string, slog.Attr) slog.Attr) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey || a.Key == slog.LevelKey || a.Key == slog.MessageKey {
			return slog.Attr{}
		}
		if next == nil {
			return a
		}
		return next(groups, a)
	}
}
