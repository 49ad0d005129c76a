// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/evaluation"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/models"
)

// ErrNoSelection is returned when an interaction names no movie.
var ErrNoSelection = errors.New("either movie_id or title is required")

// ItemResolver looks movies up by id or title. *catalog.Catalog implements it.
type ItemResolver interface {
	ByID(id int) (models.Movie, error)
	ByTitle(title string) (models.Movie, error)
}

// QueryRecorder persists one query log entry. *querylog.Recorder implements it.
type QueryRecorder interface {
	Record(ctx context.Context, entry models.QueryLogEntry) (models.QueryLogEntry, error)
}

// Interaction is one "Recommend" action.
type Interaction struct {
	// UserID identifies who asked.
	UserID int

	// MovieID selects the movie when positive; otherwise Title is used.
	// Catalog ids are always positive.
	MovieID int

	// Title selects the movie by exact title.
	Title string

	// Query is the free-text request. Empty uses the configured template.
	Query string

	// Limit overrides the per-signal limit when positive.
	Limit int
}

// Outcome is the result of one interaction.
type Outcome struct {
	RequestID string `json:"request_id"`

	Movie   models.Movie       `json:"movie"`
	Results Results            `json:"results"`
	Primary []models.Candidate `json:"primary"`

	// Relevance names the RelevanceSource used for Metrics.
	Relevance string            `json:"relevance"`
	Metrics   evaluation.Result `json:"metrics"`

	// LogEntry is the persisted row, nil when logging is off or failed.
	LogEntry *models.QueryLogEntry `json:"log_entry,omitempty"`

	// LogError is set when the query log write failed. The recommendations
	// are still valid.
	LogError error `json:"-"`

	Latency time.Duration `json:"-"`
}

// Engine runs interactions against a catalog and a fixed set of signals.
// It is safe for concurrent use.
type Engine struct {
	config      *Config
	logger      zerolog.Logger
	items       ItemResolver
	signals     *Signals
	recommender *Recommender
	relevance   RelevanceSource
	recorder    QueryRecorder
}

// NewEngine creates an engine. recorder may be nil to disable query logging.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, items ItemResolver, signals *Signals, relevance RelevanceSource, recorder QueryRecorder, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if items == nil {
		return nil, errors.New("item resolver is required")
	}
	if signals == nil || signals.Len() == 0 {
		return nil, ErrNoSignals
	}
	if relevance == nil {
		relevance = SelfRelevance{}
	}

	e := &Engine{
		config:      cfg,
		logger:      logger.With().Str("component", "recommend").Logger(),
		items:       items,
		signals:     signals,
		recommender: NewRecommender(logger),
		relevance:   relevance,
		recorder:    recorder,
	}

	if _, ok := relevance.(SelfRelevance); ok {
		e.logger.Warn().
			Msg("relevance=self evaluates the primary list against itself; metrics will always be perfect")
	}
	e.logger.Info().
		Strs("signals", signals.Names()).
		Str("relevance", relevance.Name()).
		Int("limit_per_signal", cfg.LimitPerSignal).
		Int("k", cfg.K).
		Bool("query_log", e.logging()).
		Msg("recommendation engine ready")

	return e, nil
}

// Signals returns the registered signals.
func (e *Engine) Signals() *Signals {
	return e.signals
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return *e.config
}

// Interact runs one interaction. It fails with models.ErrUnknownItem when
// the selection is not in the catalog. A query log failure is reported in
// Outcome.LogError, not as the returned error.
//
//nolint:gocritic // hugeParam: in passed by value for immutability
func (e *Engine) Interact(ctx context.Context, in Interaction) (*Outcome, error) {
	start := time.Now()

	requestID := logging.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = logging.GenerateRequestID()
	}
	logger := e.logger.With().Str("request_id", requestID).Int("user_id", in.UserID).Logger()

	out, err := e.interact(ctx, in, requestID, logger)
	elapsed := time.Since(start)
	metrics.InteractionDuration.Observe(elapsed.Seconds())

	if err != nil {
		metrics.InteractionsTotal.WithLabelValues(interactionStatus(err)).Inc()
		logger.Warn().Err(err).Int("movie_id", in.MovieID).Str("title", in.Title).Msg("interaction failed")
		return nil, err
	}

	out.Latency = elapsed
	status := "ok"
	if out.LogError != nil {
		status = "log_failed"
	}
	metrics.InteractionsTotal.WithLabelValues(status).Inc()

	logger.Info().
		Int("movie_id", out.Movie.ID).
		Str("title", out.Movie.Title).
		Int("recommended", len(out.Results.MovieIDs())).
		Float64("precision_at_k", out.Metrics.PrecisionAtK).
		Float64("recall_at_k", out.Metrics.RecallAtK).
		Float64("hit_rate", out.Metrics.HitRate).
		Bool("logged", out.LogEntry != nil).
		Dur("latency", elapsed).
		Msg("interaction complete")

	return out, nil
}

//nolint:gocritic // hugeParam: in passed by value for immutability
func (e *Engine) interact(ctx context.Context, in Interaction, requestID string, logger zerolog.Logger) (*Outcome, error) {
	movie, err := e.resolve(in)
	if err != nil {
		return nil, err
	}

	limit := in.Limit
	if limit <= 0 {
		limit = e.config.LimitPerSignal
	}

	// One exclusion set per interaction; the selected movie is never
	// recommended to itself.
	exclusions := NewExclusionSet(movie.ID)

	results, err := e.recommender.Recommend(ctx, movie.ID, e.signals.list, exclusions, limit)
	if err != nil {
		return nil, err
	}

	primary, err := Primary(movie.ID, e.signals.Primary(), e.config.PrimaryLimit)
	if err != nil {
		return nil, err
	}

	res, err := e.evaluate(movie.ID, primary)
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		RequestID: requestID,
		Movie:     movie,
		Results:   results,
		Primary:   primary,
		Relevance: e.relevance.Name(),
		Metrics:   res,
	}

	if e.logging() {
		query := in.Query
		if query == "" {
			query = e.config.QueryFor(movie.Title)
		}
		entry, err := e.record(ctx, in.UserID, movie.Title, query, primary)
		if err != nil {
			logger.Error().Err(err).Str("title", movie.Title).Msg("query log write failed")
			out.LogError = err
		} else {
			out.LogEntry = &entry
		}
	}

	return out, nil
}

func (e *Engine) resolve(in Interaction) (models.Movie, error) { //nolint:gocritic // hugeParam
	switch {
	case in.MovieID > 0:
		return e.items.ByID(in.MovieID)
	case in.Title != "":
		return e.items.ByTitle(in.Title)
	default:
		return models.Movie{}, ErrNoSelection
	}
}

func (e *Engine) evaluate(movieID int, primary []models.Candidate) (evaluation.Result, error) {
	relevant, err := e.relevance.Relevant(movieID, primary)
	if err != nil {
		return evaluation.Result{}, fmt.Errorf("relevance %s: %w", e.relevance.Name(), err)
	}
	res, err := evaluation.Evaluate(models.CandidateIDs(primary), relevant, e.config.K)
	if err != nil {
		return evaluation.Result{}, err
	}
	metrics.EvaluationScore.WithLabelValues("precision").Observe(res.PrecisionAtK)
	metrics.EvaluationScore.WithLabelValues("recall").Observe(res.RecallAtK)
	metrics.EvaluationScore.WithLabelValues("hit_rate").Observe(res.HitRate)
	return res, nil
}

func (e *Engine) record(ctx context.Context, userID int, title, query string, primary []models.Candidate) (models.QueryLogEntry, error) {
	entry, err := e.recorder.Record(ctx, models.QueryLogEntry{
		UserID:            userID,
		MovieName:         title,
		UserQuery:         query,
		RecommendedMovies: models.FormatRecommended(models.CandidateTitles(primary)),
	})
	if err != nil {
		var pe *models.PersistenceError
		if !errors.As(err, &pe) {
			err = &models.PersistenceError{Op: "record", Err: err}
		}
		return models.QueryLogEntry{}, err
	}
	return entry, nil
}

func (e *Engine) logging() bool {
	return e.recorder != nil && e.config.LogQueries
}

func interactionStatus(err error) string {
	switch {
	case errors.Is(err, models.ErrUnknownItem), errors.Is(err, ErrNoSelection):
		return "unknown_item"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
