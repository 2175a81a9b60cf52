// Package translate turns natural-language product questions into executed
// store queries: cache consultation, bounded LLM generation with error
// repair, result normalization, and generative summarization.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/healthsearch/internal/db"
	"github.com/kailas-cloud/healthsearch/internal/domain"
	domcache "github.com/kailas-cloud/healthsearch/internal/domain/cache"
	"github.com/kailas-cloud/healthsearch/internal/domain/product"
	"github.com/kailas-cloud/healthsearch/internal/domain/schema"
	"github.com/kailas-cloud/healthsearch/internal/metrics"
)

// maxAttempts bounds the generate/execute/repair loop.
const maxAttempts = 3

// markerFresh prefixes summaries produced by a fresh generation.
const markerFresh = "✨ GENERATED: "

const (
	eastereggTrigger = "easteregg"
	eastereggQuery   = "🚀 Congratulations, you rolled the demo!"
	eastereggSummary = "You just got rick-rolled..."
)

// queryJoiner separates the accepted retrieval query from its
// summarization variant in the combined query text.
const queryJoiner = "\n\n# Query with generative module\n\n"

// Result is a completed translation.
type Result struct {
	Query     string
	Products  []product.Record
	Summary   string
	FromCache bool
}

// Metrics holds the optional instrumentation hooks. Any field may be nil.
type Metrics struct {
	Translations *prometheus.CounterVec
	Attempts     prometheus.Counter
}

// Service orchestrates the translation pipeline.
type Service struct {
	llm      LLM
	store    Executor
	cache    Cache
	rewriter Rewriter
	schema   schema.Schema
	requests *metrics.RequestCounter
	metrics  Metrics
	system   string
	logger   *zap.Logger
}

// New creates a translation service over the given collaborators.
func New(
	llm LLM,
	store Executor,
	cache Cache,
	rewriter Rewriter,
	s schema.Schema,
	requests *metrics.RequestCounter,
	m Metrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		llm:      llm,
		store:    store,
		cache:    cache,
		rewriter: rewriter,
		schema:   s,
		requests: requests,
		metrics:  m,
		system:   systemPrompt(s),
		logger:   logger,
	}
}

// Translate resolves naturalQuery into an executed store query with
// normalized products and a summary. The normalized (trimmed, lowercased)
// text is both the cache key and the generation subject.
func (s *Service) Translate(ctx context.Context, naturalQuery string) (Result, error) {
	if s.requests != nil {
		s.requests.Inc()
	}
	normalized := strings.ToLower(strings.TrimSpace(naturalQuery))

	if normalized == eastereggTrigger {
		s.incTranslations("easteregg")
		return Result{
			Query:    eastereggQuery,
			Products: []product.Record{},
			Summary:  eastereggSummary,
		}, nil
	}

	if entry, ok := s.cache.Lookup(ctx, normalized); ok {
		s.incTranslations("cache")
		return Result{
			Query:     entry.GraphQuery,
			Products:  s.decodeProducts(entry),
			Summary:   entry.Summary,
			FromCache: true,
		}, nil
	}

	graphQuery, raw, err := s.generate(ctx, normalized)
	if err != nil {
		s.incTranslations("error")
		return Result{}, err
	}

	products := product.Normalize(raw.Data, s.schema.Class(), s.logger)

	genQuery, err := s.rewriter.Rewrite(graphQuery, normalized)
	if err != nil {
		s.logger.Warn("Summarization rewrite failed", zap.Error(err))
		s.incTranslations("degraded")
		return Result{Query: graphQuery, Products: products, Summary: err.Error()}, nil
	}

	combined := graphQuery + queryJoiner + genQuery

	summary, err := s.summarize(ctx, genQuery)
	if err != nil {
		s.logger.Warn("Summarization query failed", zap.Error(err))
		s.incTranslations("degraded")
		return Result{Query: combined, Products: products, Summary: err.Error()}, nil
	}

	s.writeThrough(ctx, normalized, combined, products, summary)

	s.incTranslations("fresh")
	return Result{
		Query:    combined,
		Products: products,
		Summary:  markerFresh + summary,
	}, nil
}

// generate runs the bounded generation loop: ask the model for a query,
// execute it, and on failure feed the error text back as a repair prompt.
// Store and query errors are retryable; model transport errors are terminal.
func (s *Service) generate(ctx context.Context, normalized string) (string, db.RawResult, error) {
	prompt := generatePrompt(normalized)
	var graphQuery string

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		s.incAttempts()

		reply, err := s.llm.Complete(ctx, s.system, prompt)
		if err != nil {
			return "", db.RawResult{}, fmt.Errorf("generate query: %w", err)
		}
		graphQuery = cleanReply(reply)

		raw, err := s.store.RawQuery(ctx, graphQuery)
		if err != nil {
			s.logger.Warn("Generated query failed to execute",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			prompt = repairPrompt(err.Error(), graphQuery)
			continue
		}
		if raw.HasErrors() {
			s.logger.Warn("Generated query rejected",
				zap.Int("attempt", attempt),
				zap.String("errors", raw.ErrorText()),
			)
			prompt = repairPrompt(raw.ErrorText(), graphQuery)
			continue
		}

		s.logger.Debug("Accepted generated query", zap.Int("attempt", attempt))
		return graphQuery, raw, nil
	}

	return "", db.RawResult{}, fmt.Errorf("%w after %d attempts", domain.ErrGenerationExhausted, maxAttempts)
}

// summarize executes the summarization variant and extracts the grouped
// generative result.
func (s *Service) summarize(ctx context.Context, genQuery string) (string, error) {
	raw, err := s.store.RawQuery(ctx, genQuery)
	if err != nil {
		return "", fmt.Errorf("execute summarization query: %w", err)
	}
	if raw.HasErrors() {
		return "", fmt.Errorf("summarization query rejected: %s", raw.ErrorText())
	}
	return s.groupedSummary(raw.Data)
}

// groupedSummary digs the grouped generative text out of the first row.
func (s *Service) groupedSummary(data map[string]any) (string, error) {
	get, ok := data["Get"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("summarization result missing Get block")
	}
	rows, ok := get[s.schema.Class()].([]any)
	if !ok || len(rows) == 0 {
		return "", fmt.Errorf("summarization result has no rows")
	}
	row, ok := rows[0].(map[string]any)
	if !ok {
		return "", fmt.Errorf("summarization row is malformed")
	}
	additional, ok := row["_additional"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("summarization row missing _additional")
	}
	generate, ok := additional["generate"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("summarization row missing generate block")
	}
	if errText, ok := generate["error"].(string); ok && errText != "" {
		return "", fmt.Errorf("generative module: %s", errText)
	}
	grouped, ok := generate["groupedResult"].(string)
	if !ok || grouped == "" {
		return "", fmt.Errorf("generative module returned no grouped result")
	}
	return grouped, nil
}

// writeThrough stores the completed translation. The summary is cached
// unprefixed; lookup marks it on the way out.
func (s *Service) writeThrough(
	ctx context.Context, normalized, combined string, products []product.Record, summary string,
) {
	blob, err := json.Marshal(products)
	if err != nil {
		s.logger.Warn("Failed to encode products for cache", zap.Error(err))
		return
	}
	s.cache.Write(ctx, domcache.Entry{
		NaturalQuery: normalized,
		GraphQuery:   combined,
		Products:     string(blob),
		Summary:      summary,
	})
}

// decodeProducts unpacks a cached product blob, falling back to the
// placeholder record when the blob is unreadable.
func (s *Service) decodeProducts(entry domcache.Entry) []product.Record {
	var records []product.Record
	if err := json.Unmarshal([]byte(entry.Products), &records); err != nil {
		s.logger.Warn("Cached products are unreadable",
			zap.String("natural_query", entry.NaturalQuery),
			zap.Error(err),
		)
		return product.Fallback()
	}
	return records
}

// cleanReply strips markdown fencing and surrounding whitespace from a
// model reply.
func cleanReply(reply string) string {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "```graphql")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")
	return strings.TrimSpace(reply)
}

func (s *Service) incTranslations(outcome string) {
	if s.metrics.Translations != nil {
		s.metrics.Translations.WithLabelValues(outcome).Inc()
	}
}

func (s *Service) incAttempts() {
	if s.metrics.Attempts != nil {
		s.metrics.Attempts.Inc()
	}
}
