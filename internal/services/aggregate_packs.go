package services

import (
	"cmp"
	"commute-learning-service/internal/domain"
	"commute-learning-service/internal/platform/obs"
	"commute-learning-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// PackAggregator combines catalog packs with externally fetched packs and
// ranks them for a commute.
type PackAggregator struct {
	Catalog Catalog
	Fetcher ports.PackFetcher
	Tags    ScoringTags

	// Concurrency caps in-flight fetches; zero or negative means no cap.
	Concurrency int
	// FetchTimeout bounds each individual fetch; zero disables the bound.
	FetchTimeout time.Duration
}

type scoredPack struct {
	pack  domain.LearningPack
	score int
}

// Aggregate returns packs for the route, mixing in the external packs named by
// externalPackIDs.
//
// External fetches run concurrently and fail independently; failed fetches are
// dropped. Candidates are ranked by EfficiencyScore (ties keep base-then-external
// input order) and fitted to route.Minutes. Any unexpected failure degrades to
// SelectPacks over the catalog, so Aggregate never fails.
func (a *PackAggregator) Aggregate(
	ctx context.Context,
	route domain.RouteInfo,
	externalPackIDs []string,
) (packs []domain.LearningPack) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("aggregate packs: recovered panic=%v; falling back to catalog selection", r)
			obs.AggregateFallbacks.Inc()
			packs = SelectPacks(a.Catalog.Packs(), route.Minutes)
		}
	}()

	packs, err := a.aggregate(ctx, route, externalPackIDs)
	if err != nil {
		log.Printf("aggregate packs: %v; falling back to catalog selection", err)
		obs.AggregateFallbacks.Inc()
		return SelectPacks(a.Catalog.Packs(), route.Minutes)
	}

	return packs
}

func (a *PackAggregator) aggregate(
	ctx context.Context,
	route domain.RouteInfo,
	externalPackIDs []string,
) (_ []domain.LearningPack, err error) {
	defer obs.Time(ctx, "aggregate.packs")(&err)

	base := SelectPacks(a.Catalog.Packs(), route.Minutes)

	candidates := make([]domain.LearningPack, 0, len(base)+len(externalPackIDs))
	candidates = append(candidates, base...)

	if len(externalPackIDs) > 0 {
		external, err := a.fetchAll(ctx, externalPackIDs)
		if err != nil {
			return nil, fmt.Errorf("aggregate packs: fetch external: %w", err)
		}
		candidates = append(candidates, external...)
	}

	return RankAndFit(candidates, route.Minutes, a.Tags), nil
}

// RankAndFit orders candidates by EfficiencyScore, highest first, and keeps the
// ones that fit budgetMinutes. If none fit, the best-ranked candidate is returned.
func RankAndFit(candidates []domain.LearningPack, budgetMinutes int, tags ScoringTags) []domain.LearningPack {
	scored := make([]scoredPack, 0, len(candidates))
	for _, p := range candidates {
		scored = append(scored, scoredPack{pack: p, score: scoreTenths(p, tags)})
	}

	slices.SortStableFunc(scored, func(x, y scoredPack) int {
		return cmp.Compare(y.score, x.score)
	})

	ordered := make([]domain.LearningPack, len(scored))
	for i, s := range scored {
		ordered[i] = s.pack
	}

	result := fitBudget(ordered, budgetMinutes)
	if len(result) == 0 && len(ordered) > 0 {
		return ordered[:1]
	}

	return result
}

// fetchAll fetches every id concurrently and returns the successes in id order.
func (a *PackAggregator) fetchAll(ctx context.Context, ids []string) ([]domain.LearningPack, error) {
	if a.Fetcher == nil {
		return nil, errors.New("fetch external packs: no fetcher configured")
	}

	results := make([]*domain.LearningPack, len(ids))

	// Individual failures are recorded, never returned, so one fetch can't cancel the rest.
	var g errgroup.Group
	if a.Concurrency > 0 {
		g.SetLimit(a.Concurrency)
	}

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			p, err := a.fetchOne(ctx, id)
			if err != nil {
				log.Printf("fetch external pack dropped id=%q err=%v", id, err)
				obs.ExternalPackFetches.WithLabelValues("error").Inc()
				return nil
			}
			obs.ExternalPackFetches.WithLabelValues("ok").Inc()
			results[i] = &p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]domain.LearningPack, 0, len(ids))
	for _, p := range results {
		if p != nil {
			out = append(out, *p)
		}
	}

	return out, nil
}

func (a *PackAggregator) fetchOne(ctx context.Context, id string) (p domain.LearningPack, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetch pack %q: panic: %v", id, r)
		}
	}()

	id = strings.TrimSpace(id)
	if id == "" {
		return domain.LearningPack{}, errors.New("fetch pack: id must be non-empty")
	}

	if a.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.FetchTimeout)
		defer cancel()
	}

	p, err = a.Fetcher.FetchPack(ctx, id)
	if err != nil {
		return domain.LearningPack{}, fmt.Errorf("fetch pack %q: %w", id, err)
	}

	p.Tags = domain.UniqueTags(p.Tags)
	if err := p.Validate(); err != nil {
		return domain.LearningPack{}, fmt.Errorf("fetch pack %q: %w", id, err)
	}

	return p, nil
}
