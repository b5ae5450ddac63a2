// Package grading wires the pipeline stages together: roster indexing,
// report parsing, group aggregation and the final merge. The transform
// is single-threaded and synchronous; inputs are immutable snapshots
// consumed once, so a run either completes deterministically or fails
// with a structured error.
package grading

import (
	"context"
	"io"
	"log/slog"

	"github.com/tonechas/moodle-workshop-group-grades/internal/aggregation"
	"github.com/tonechas/moodle-workshop-group-grades/internal/merge"
	"github.com/tonechas/moodle-workshop-group-grades/internal/report"
	"github.com/tonechas/moodle-workshop-group-grades/internal/roster"
	"github.com/tonechas/moodle-workshop-group-grades/pkg/contracts/domain"
)

// Options configures a pipeline run.
type Options struct {
	// GroupingSet pins the grouping set used for reconciliation. When
	// empty the set is inferred from the report's group menu or the
	// roster.
	GroupingSet string
}

// Pipeline runs the full roster-report-aggregate-merge transform.
type Pipeline struct {
	logger *slog.Logger
	opts   Options
}

// NewPipeline creates a pipeline.
func NewPipeline(logger *slog.Logger, opts Options) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger, opts: opts}
}

// Summary carries the run statistics reported to the user.
type Summary struct {
	WorkshopTitle string
	GroupingSet   string
	Students      int
	Matched       int
	Unmatched     int
	Ungraded      int
}

// RunResult is the complete outcome of one pipeline run.
type RunResult struct {
	Rows      []domain.GradeRow
	Unmatched []domain.RawGradeRecord
	Ungraded  []*domain.Participant
	Summary   Summary
}

// Run executes the transform over the given roster rows and report
// markup.
func (p *Pipeline) Run(ctx context.Context, rosterRows []roster.Row, reportHTML io.Reader) (*RunResult, error) {
	idx, err := roster.Build(rosterRows)
	if err != nil {
		return nil, err
	}
	p.logger.InfoContext(ctx, "roster indexed",
		slog.Int("participants", len(idx.Participants())),
		slog.Int("grouping_sets", len(idx.Sets())))

	rep, err := report.NewParser(p.logger).Parse(reportHTML)
	if err != nil {
		return nil, err
	}
	p.logger.InfoContext(ctx, "grades report parsed",
		slog.String("workshop", rep.WorkshopTitle),
		slog.Int("students", len(rep.Records)))

	matched, unmatched, err := merge.Resolve(idx, rep.Records)
	if err != nil {
		return nil, err
	}
	for _, rec := range unmatched {
		p.logger.WarnContext(ctx, "report row matches no roster participant",
			slog.String("name", rec.DisplayName),
			slog.Int("row", rec.Row))
	}

	set := p.opts.GroupingSet
	if set == "" {
		set, err = aggregation.InferSet(rep.GroupNames, idx.Sets())
		if err != nil {
			return nil, err
		}
	}
	p.logger.InfoContext(ctx, "reconciling submission grades", slog.String("set", set))

	members := make([]aggregation.MemberRecord, len(matched))
	for i, m := range matched {
		members[i] = aggregation.MemberRecord{Participant: m.Participant, Record: m.Record}
	}
	aggregated, err := aggregation.Aggregate(set, members)
	if err != nil {
		return nil, err
	}

	merged := merge.Merge(idx, aggregated, unmatched)
	result := &RunResult{
		Rows:      merged.Rows,
		Unmatched: merged.Unmatched,
		Ungraded:  merged.Ungraded,
		Summary: Summary{
			WorkshopTitle: rep.WorkshopTitle,
			GroupingSet:   set,
			Students:      len(rep.Records),
			Matched:       len(matched),
			Unmatched:     len(merged.Unmatched),
			Ungraded:      len(merged.Ungraded),
		},
	}
	p.logger.InfoContext(ctx, "pipeline complete",
		slog.Int("rows", len(result.Rows)),
		slog.Int("matched", result.Summary.Matched),
		slog.Int("unmatched", result.Summary.Unmatched),
		slog.Int("ungraded", result.Summary.Ungraded))
	return result, nil
}
