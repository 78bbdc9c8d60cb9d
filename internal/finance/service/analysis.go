package service

import (
	"context"
	"errors"

	"github.com/pfennigfuchs/pfennig/internal/finance/domain"
	"github.com/pfennigfuchs/pfennig/internal/finance/store"
)

var errInvalidYear = errors.New("year out of range")

// AnalysisService aggregates a user's transactions for reporting.
type AnalysisService struct {
	Store store.Store
}

// YearlySummary returns per-month expense and income totals for one calendar
// year, split by transaction kind. Only the user's own records contribute.
func (s *AnalysisService) YearlySummary(ctx context.Context, userID int64, year int) (domain.YearlySummary, error) {
	if year < 1 || year > 9999 {
		return domain.YearlySummary{}, invalid(errInvalidYear)
	}
	return s.Store.Analysis().YearlySummary(ctx, userID, year)
}
