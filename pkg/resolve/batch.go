package resolve

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	sserrors "github.com/screenline/sdnscreen/pkg/errors"
	"github.com/screenline/sdnscreen/pkg/logging"
	"github.com/screenline/sdnscreen/pkg/observability"
	"github.com/screenline/sdnscreen/pkg/reference"
)

// DefaultSourceThreshold is the fuzzy threshold for cross-referencing new
// external sources. The lower bar trades precision for recall on noisier
// input.
const DefaultSourceThreshold = 80

// MatchType labels the kind of match a verdict reports.
type MatchType string

const (
	MatchExact MatchType = "exact"
	MatchFuzzy MatchType = "fuzzy"
	MatchNone  MatchType = "none"
)

// Confidence is the coarse tier summarizing match strength for downstream
// consumers.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	// ConfidenceNewEntity signals the input matched nothing known and may
	// itself be a newly observed entity.
	ConfidenceNewEntity Confidence = "new_entity"
)

// Verdict is one row of the batch-resolution output table, in input order.
type Verdict struct {
	InputName string    `json:"input_name"`
	MatchType MatchType `json:"match_type"`

	// UID is the best-matching entity, nil for MatchNone. CandidateUIDs
	// lists every entity tied for the best match when the name is ambiguous.
	UID           *int64  `json:"uid,omitempty"`
	CandidateUIDs []int64 `json:"candidate_uids,omitempty"`

	MatchedName string     `json:"matched_canonical_name,omitempty"`
	Score       *int       `json:"match_score,omitempty"`
	Confidence  Confidence `json:"confidence"`

	// LocationMatches counts address records matching the row's location
	// value. It is an orthogonal signal, not folded into Confidence. Nil
	// when no location column was supplied.
	LocationMatches *int `json:"location_matches,omitempty"`
}

// BatchResolver drives the Matcher over a collection of query names,
// producing one verdict per input row with input order preserved. It never
// mutates the index or the reference tables.
type BatchResolver struct {
	matcher   *Matcher
	addresses []reference.Address
	workers   int
	logger    logging.Logger
	metrics   *observability.ScreeningMetrics
	tracer    *observability.Tracer
}

// BatchOption configures a BatchResolver.
type BatchOption func(*BatchResolver)

// WithAddresses supplies the address table used for location lookups.
func WithAddresses(addresses []reference.Address) BatchOption {
	return func(r *BatchResolver) { r.addresses = addresses }
}

// WithWorkers sets the number of concurrent resolution workers. Rows are
// independent, so fan-out only changes latency, never output order.
func WithWorkers(n int) BatchOption {
	return func(r *BatchResolver) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) BatchOption {
	return func(r *BatchResolver) { r.logger = logger }
}

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *observability.ScreeningMetrics) BatchOption {
	return func(r *BatchResolver) { r.metrics = m }
}

// WithTracer attaches an OpenTelemetry tracer.
func WithTracer(t *observability.Tracer) BatchOption {
	return func(r *BatchResolver) { r.tracer = t }
}

// NewBatchResolver creates a batch resolver over a matcher.
func NewBatchResolver(matcher *Matcher, opts ...BatchOption) *BatchResolver {
	r := &BatchResolver{
		matcher: matcher,
		workers: 1,
		logger:  logging.MustGlobal(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(logging.F("component", "batch_resolver"))
	if r.metrics != nil {
		r.metrics.IndexEntries.Set(float64(matcher.Index().Len()))
	}
	return r
}

// ResolveNames resolves an ordered sequence of query names at the given
// threshold. The result has exactly one verdict per input, in input order.
func (r *BatchResolver) ResolveNames(ctx context.Context, names []string, threshold int) []Verdict {
	runID := uuid.NewString()
	ctx, span := r.tracer.StartBatch(ctx, runID, len(names), threshold, r.workers)
	defer span.End()

	rows := make([]row, len(names))
	for i, name := range names {
		rows[i] = row{name: name}
	}
	return r.resolveAll(ctx, runID, rows, threshold)
}

// ResolveSource resolves a tabular source with a designated name column and
// an optional location column (empty string for none). A missing column is a
// caller contract violation and fails the whole operation; a row with an
// empty name cell degrades to a none/new_entity verdict instead.
func (r *BatchResolver) ResolveSource(ctx context.Context, src *reference.Source, nameColumn, locationColumn string, threshold int) ([]Verdict, error) {
	runID := uuid.NewString()
	ctx, span := r.tracer.StartBatch(ctx, runID, len(src.Rows), threshold, r.workers)
	defer span.End()

	nameIdx, ok := src.ColumnIndex(nameColumn)
	if !ok {
		err := fmt.Errorf("name column %q not in source: %w", nameColumn, sserrors.ErrSchema)
		observability.RecordError(span, err)
		return nil, err
	}
	locationIdx := -1
	if locationColumn != "" {
		locationIdx, ok = src.ColumnIndex(locationColumn)
		if !ok {
			err := fmt.Errorf("location column %q not in source: %w", locationColumn, sserrors.ErrSchema)
			observability.RecordError(span, err)
			return nil, err
		}
	}

	rows := make([]row, len(src.Rows))
	for i := range src.Rows {
		rows[i] = row{name: src.Cell(i, nameIdx)}
		if locationIdx >= 0 {
			rows[i].location = src.Cell(i, locationIdx)
			rows[i].hasLocation = true
		}
	}
	return r.resolveAll(ctx, runID, rows, threshold), nil
}

type row struct {
	name        string
	location    string
	hasLocation bool
}

// resolveAll fans rows out over the worker pool and collects verdicts by
// input position. The caller owns the batch span on ctx.
func (r *BatchResolver) resolveAll(ctx context.Context, runID string, rows []row, threshold int) []Verdict {
	start := time.Now()
	verdicts := make([]Verdict, len(rows))

	workers := r.workers
	if workers > len(rows) {
		workers = len(rows)
	}
	if workers <= 1 {
		for i, rw := range rows {
			verdicts[i] = r.resolveOne(ctx, rw, threshold)
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					verdicts[i] = r.resolveOne(ctx, rows[i], threshold)
				}
			}()
		}
		for i := range rows {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	if r.metrics != nil {
		for _, v := range verdicts {
			r.metrics.ResolutionsTotal.WithLabelValues(string(v.MatchType), string(v.Confidence)).Inc()
		}
	}

	r.logger.Debug("batch resolution complete",
		logging.F("run_id", runID),
		logging.F("rows", len(rows)),
		logging.F("threshold", threshold),
		logging.F("duration", time.Since(start)))

	return verdicts
}

// resolveOne applies the per-row algorithm: exact match, then fuzzy match at
// the threshold, then none. Absence of name data is a data-quality anomaly,
// not an error; it yields a new_entity verdict.
func (r *BatchResolver) resolveOne(ctx context.Context, rw row, threshold int) Verdict {
	_, span := r.tracer.StartRow(ctx)
	defer span.End()

	v := Verdict{
		InputName:  rw.name,
		MatchType:  MatchNone,
		Confidence: ConfidenceNewEntity,
	}

	if uids := r.matcher.ExactMatch(rw.name); len(uids) > 0 {
		score := 100
		v.MatchType = MatchExact
		v.Confidence = ConfidenceHigh
		v.UID = &uids[0]
		v.MatchedName = Normalize(rw.name)
		v.Score = &score
		if len(uids) > 1 {
			v.CandidateUIDs = uids
		}
	} else {
		scanStart := time.Now()
		matches := r.matcher.FuzzyMatch(rw.name, threshold)
		if r.metrics != nil {
			r.metrics.FuzzyScanSeconds.Observe(time.Since(scanStart).Seconds())
		}
		if len(matches) > 0 {
			top := matches[0]
			v.MatchType = MatchFuzzy
			v.UID = &top.UID
			v.MatchedName = top.CanonicalName
			v.Score = &top.Score
			if top.Score > 85 {
				v.Confidence = ConfidenceMedium
			} else {
				v.Confidence = ConfidenceLow
			}
			for _, m := range matches {
				if m.Score == top.Score {
					v.CandidateUIDs = append(v.CandidateUIDs, m.UID)
				}
			}
			if len(v.CandidateUIDs) == 1 {
				v.CandidateUIDs = nil
			}
			if r.metrics != nil {
				r.metrics.MatchScore.Observe(float64(top.Score))
			}
		}
	}

	if rw.hasLocation {
		count := r.countLocationMatches(rw.location)
		v.LocationMatches = &count
	}

	score := 0
	if v.Score != nil {
		score = *v.Score
	}
	observability.RecordVerdict(span, string(v.MatchType), string(v.Confidence), score)

	return v
}

// countLocationMatches counts address records whose country or city contains
// the location value, case-insensitively.
func (r *BatchResolver) countLocationMatches(location string) int {
	needle := strings.ToLower(strings.TrimSpace(location))
	if needle == "" {
		return 0
	}
	count := 0
	for _, addr := range r.addresses {
		if strings.Contains(strings.ToLower(addr.Country), needle) ||
			strings.Contains(strings.ToLower(addr.City), needle) {
			count++
		}
	}
	return count
}
