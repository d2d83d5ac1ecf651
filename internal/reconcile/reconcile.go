// Package reconcile keeps AppFirst server nicknames in sync with the BOSH
// job/index name of the VM they run on.
//
// A sync runs three steps in order, each feeding the next,
//
//   - SelectDeployments lists the BOSH deployments running the AppFirst collector.
//   - ResolveCanonicalNames maps the join key of each VM in those deployments to its "job/index" name.
//   - Reconcile fetches the servers under a tag and updates the nicknames that differ.
//
// Any error aborts the run, there is no per deployment or per server isolation.
package reconcile

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/metal-toolbox/afsync/internal/inventory"
	"github.com/metal-toolbox/afsync/internal/metrics"
	"github.com/metal-toolbox/afsync/internal/model"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	pkgName = "internal/reconcile"
)

// Syncer runs the sync between the orchestrator and the monitoring platform.
type Syncer struct {
	orchestrator inventory.Orchestrator
	monitor      inventory.Monitor
	logger       *logrus.Entry
	out          io.Writer
	joinKey      model.JoinKey
	tag          string
	dryRun       bool
}

// Option sets optional Syncer parameters.
type Option func(*Syncer)

// WithJoinKey sets the VM field matched against the server hostname.
func WithJoinKey(k model.JoinKey) Option {
	return func(s *Syncer) {
		s.joinKey = k
	}
}

// WithTag sets the server tag Run reconciles.
func WithTag(tag string) Option {
	return func(s *Syncer) {
		s.tag = tag
	}
}

// WithDryRun skips server updates, the notices report what would be updated.
func WithDryRun(dryRun bool) Option {
	return func(s *Syncer) {
		s.dryRun = dryRun
	}
}

// WithOutput sets the writer notices are printed to, defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Syncer) {
		s.out = w
	}
}

// New returns a Syncer.
func New(orchestrator inventory.Orchestrator, monitor inventory.Monitor, logger *logrus.Logger, opts ...Option) *Syncer {
	s := &Syncer{
		orchestrator: orchestrator,
		monitor:      monitor,
		out:          os.Stdout,
		joinKey:      model.DefaultJoinKey,
		tag:          model.DefaultTag,
		logger:       logger.WithField("runID", uuid.New().String()),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Result summarizes a sync run.
type Result struct {
	Deployments    int
	CanonicalNames int

	Updated     int
	UpToDate    int
	Skipped     int
	WouldUpdate int
}

func (r *Result) add(o model.Outcome) {
	switch o {
	case model.OutcomeUpdated:
		r.Updated++
	case model.OutcomeUpToDate:
		r.UpToDate++
	case model.OutcomeSkipped:
		r.Skipped++
	case model.OutcomeWouldUpdate:
		r.WouldUpdate++
	}
}

// Run performs one full sync pass.
func (s *Syncer) Run(ctx context.Context) (*Result, error) {
	ctx, span := otel.Tracer(pkgName).Start(
		ctx,
		"Run",
		trace.WithAttributes(
			attribute.String("tag", s.tag),
			attribute.String("joinKey", string(s.joinKey)),
			attribute.Bool("dryRun", s.dryRun),
		),
	)
	defer span.End()

	startTS := time.Now()

	s.logger.WithFields(logrus.Fields{
		"tag":     s.tag,
		"joinKey": s.joinKey,
		"dryRun":  s.dryRun,
	}).Info("sync started")

	result, err := s.run(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		metrics.RunTimeSummary.WithLabelValues("failed").Observe(time.Since(startTS).Seconds())

		return result, err
	}

	metrics.RunTimeSummary.WithLabelValues("succeeded").Observe(time.Since(startTS).Seconds())

	s.logger.WithFields(logrus.Fields{
		"deployments":    result.Deployments,
		"canonicalNames": result.CanonicalNames,
		"updated":        result.Updated,
		"upToDate":       result.UpToDate,
		"skipped":        result.Skipped,
		"wouldUpdate":    result.WouldUpdate,
		"elapsed":        time.Since(startTS).String(),
	}).Info("sync completed")

	return result, nil
}

func (s *Syncer) run(ctx context.Context) (*Result, error) {
	deployments, err := s.SelectDeployments(ctx)
	if err != nil {
		return nil, err
	}

	names, err := s.ResolveCanonicalNames(ctx, deployments)
	if err != nil {
		return nil, err
	}

	result, err := s.Reconcile(ctx, s.tag, names)
	if result != nil {
		result.Deployments = len(deployments)
		result.CanonicalNames = len(names)
	}

	return result, err
}
