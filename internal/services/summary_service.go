package services

import (
	"context"
	"fmt"
	"time"

	"github.com/chasilva1997-jpg/FinBot/internal/cache"
	"github.com/chasilva1997-jpg/FinBot/internal/core"
	applog "github.com/chasilva1997-jpg/FinBot/internal/log"
	"github.com/chasilva1997-jpg/FinBot/internal/sheets"
)

const summaryCacheKey = "totals"

// SummaryService answers /total-style queries. Results are cached with a
// short TTL so a burst of commands does not re-read the whole sheet.
type SummaryService struct {
	reader sheets.RowReader
	cache  *cache.LRU[core.Summary]
	logger *applog.Logger
}

func NewSummaryService(reader sheets.RowReader, ttl time.Duration, logger *applog.Logger) *SummaryService {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &SummaryService{
		reader: reader,
		cache:  cache.NewLRU[core.Summary](1, ttl),
		logger: logger.WithComponent(applog.ComponentService),
	}
}

// Totals reads every stored row and aggregates it. Rows with malformed
// amounts are skipped inside core.Totals rather than failing the query.
func (s *SummaryService) Totals(ctx context.Context) (core.Summary, error) {
	if cached, ok := s.cache.Get(summaryCacheKey); ok {
		return cached, nil
	}

	rows, err := s.reader.ReadAll(ctx)
	if err != nil {
		return core.Summary{}, fmt.Errorf("read rows: %w", err)
	}

	summary := core.Totals(rows)
	s.cache.Set(summaryCacheKey, summary)
	s.logger.InfoContext(ctx, "Summary computed",
		"rows", len(rows), "categories", summary.Count())
	return summary, nil
}

// Invalidate drops the cached summary; called after a successful append so
// the next query sees the new record.
func (s *SummaryService) Invalidate() {
	s.cache.Delete(summaryCacheKey)
}
