// Package ranking orders scored venues and attaches aggregate insights.
package ranking

import (
	"fmt"
	"sort"
	"time"

	"venue-intelligence/internal/common/logger"
	"venue-intelligence/internal/models"
	"venue-intelligence/internal/venue/scoring"
)

const (
	DefaultTopN    = 5
	MaxKeyFeatures = 5
)

// InsightGenerator produces the insight lines shown above the recommendations.
// It sees the whole candidate set but never touches scores.
type InsightGenerator interface {
	Insights(req models.EventRequirement, venues []models.Venue, recs []models.Recommendation) []string
}

// TemplateInsights emits the fixed five-line summary.
type TemplateInsights struct{}

func (TemplateInsights) Insights(req models.EventRequirement, venues []models.Venue, _ []models.Recommendation) []string {
	return []string{
		fmt.Sprintf("Found %d venues matching your criteria in %s", len(venues), req.City),
		"Top venues offer excellent amenities including WiFi, AC, and catering services",
		"Consider booking early to secure the best rates and availability",
		"Venues with parking facilities are highly recommended for guest convenience",
		"Heritage venues provide unique cultural experiences for special events",
	}
}

type Ranker struct {
	scorer   *scoring.Scorer
	insights InsightGenerator
	topN     int
	logger   logger.Logger
}

type Option func(*Ranker)

func WithTopN(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.topN = n
		}
	}
}

func WithInsights(g InsightGenerator) Option {
	return func(r *Ranker) {
		if g != nil {
			r.insights = g
		}
	}
}

func NewRanker(log logger.Logger, opts ...Option) *Ranker {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	r := &Ranker{
		scorer:   scoring.NewScorer(log),
		insights: TemplateInsights{},
		topN:     DefaultTopN,
		logger:   log.WithFields(map[string]interface{}{"component": "ranking"}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank scores every venue, sorts by score descending (then rating descending,
// then id ascending) and keeps the top N.
func (r *Ranker) Rank(req models.EventRequirement, venues []models.Venue) (models.RecommendationResult, error) {
	if err := scoring.CheckPreconditions(req); err != nil {
		return models.RecommendationResult{}, err
	}

	start := time.Now()

	scored := make([]models.ScoredVenue, 0, len(venues))
	for _, v := range venues {
		sv, err := r.scorer.Score(req, v)
		if err != nil {
			return models.RecommendationResult{}, err
		}
		scored = append(scored, sv)
	}

	SortScored(scored)

	if len(scored) > r.topN {
		scored = scored[:r.topN]
	}

	recs := make([]models.Recommendation, 0, len(scored))
	for _, sv := range scored {
		recs = append(recs, toRecommendation(sv))
	}

	r.logger.Info("ranking completed", map[string]interface{}{
		"inputCount":  len(venues),
		"outputCount": len(recs),
		"durationMs":  time.Since(start).Milliseconds(),
	})

	return models.RecommendationResult{
		Recommendations:     recs,
		Insights:            r.insights.Insights(req, venues, recs),
		BudgetAdvice:        BudgetAdvice(req, recs),
		TotalVenuesAnalyzed: len(venues),
	}, nil
}

// SortScored orders in place: score desc, rating desc, id asc.
func SortScored(scored []models.ScoredVenue) {
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Venue.Rating != b.Venue.Rating {
			return a.Venue.Rating > b.Venue.Rating
		}
		return a.Venue.ID < b.Venue.ID
	})
}

func toRecommendation(sv models.ScoredVenue) models.Recommendation {
	n := len(sv.MatchedFeatures)
	if n > MaxKeyFeatures {
		n = MaxKeyFeatures
	}
	key := make([]string, n)
	copy(key, sv.MatchedFeatures[:n])

	return models.Recommendation{
		VenueID:     sv.Venue.ID,
		Score:       sv.Score,
		Reasoning:   sv.Reasoning,
		KeyFeatures: key,
		ScoredVenue: sv,
	}
}
