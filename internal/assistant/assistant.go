// Package assistant orchestrates the question-answering chain: extract the
// manual, rank pages, detect the topic, synthesize an answer, log the
// interaction. Inputs and outputs are explicit values; nothing here depends
// on ambient session state.
package assistant

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kangouroukids/kaizen-assistant/internal/concept"
	"github.com/kangouroukids/kaizen-assistant/internal/history"
	"github.com/kangouroukids/kaizen-assistant/internal/search"
	"github.com/kangouroukids/kaizen-assistant/internal/synthesis"
	"github.com/kangouroukids/kaizen-assistant/pkg/models"
)

// PageSource yields the manual as a page-number → text map. Satisfied by
// extractor.Extractor.
type PageSource interface {
	Pages(ctx context.Context) (map[int]string, error)
}

// Config holds search tuning for the assistant.
type Config struct {
	MinTokenLen int
	MaxResults  int
}

// Response is the outcome of one question.
type Response struct {
	Query   string                `json:"query"`
	Topic   string                `json:"topic,omitempty"` // empty when no topic matched
	Answer  models.Answer         `json:"answer"`
	Results []models.SearchResult `json:"-"` // raw search results, for ticket drafts
}

// Assistant owns the extraction cache, the synthesizer and the history log
// for the process lifetime.
type Assistant struct {
	manual  PageSource
	synth   *synthesis.Synthesizer
	history *history.Store // nil disables logging
	cfg     Config

	warnExtract sync.Once
	warnHistory sync.Once
}

// New creates an assistant. history may be nil when the caller does not
// want interactions logged.
func New(manual PageSource, synth *synthesis.Synthesizer, hist *history.Store, cfg Config) *Assistant {
	if cfg.MinTokenLen <= 0 {
		cfg.MinTokenLen = 3
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 5
	}
	return &Assistant{
		manual:  manual,
		synth:   synth,
		history: hist,
		cfg:     cfg,
	}
}

// Search ranks manual pages against the query. Extraction failure degrades
// to an empty result list, the "no information available" state.
func (a *Assistant) Search(ctx context.Context, query string) []models.SearchResult {
	pages, err := a.manual.Pages(ctx)
	if err != nil {
		a.warnExtract.Do(func() {
			slog.Warn("manual extraction unavailable", "error", err)
		})
		return nil
	}
	return search.Search(query, pages, a.cfg.MinTokenLen, a.cfg.MaxResults)
}

// Ask runs the full chain for one question and appends the interaction to
// the history log. No failure along the way is fatal: the worst outcome is
// a "not found" answer.
func (a *Assistant) Ask(ctx context.Context, query string) *Response {
	results := a.Search(ctx, query)
	topic, found := concept.Detect(query)
	answer := a.synth.Synthesize(query, topic, found, results)

	resp := &Response{
		Query:   query,
		Answer:  answer,
		Results: results,
	}
	if found {
		resp.Topic = topic.Name
	}

	if a.history != nil {
		entry := history.NewEntry(time.Now(), query, answer.Text, answer.Pages, len(results))
		if err := a.history.Append(entry); err != nil {
			// Persistence problems must not break the session; warn once.
			a.warnHistory.Do(func() {
				slog.Warn("history not persisted", "error", err)
			})
		}
	}

	return resp
}
