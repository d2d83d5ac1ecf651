package reconcile

import (
	"context"

	"github.com/metal-toolbox/afsync/internal/metrics"
	"github.com/metal-toolbox/afsync/internal/model"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	// CollectorRelease is the BOSH release shipping the AppFirst collector.
	CollectorRelease = "appfirst"

	// CollectorStemcellPrefix prefixes the stemcells with the collector baked in.
	CollectorStemcellPrefix = "collector"
)

// RunsCollector returns true when the deployment has the collector release attached
// or is built on a collector stemcell.
func RunsCollector(d *model.Deployment) bool {
	return d.HasRelease(CollectorRelease) || d.HasStemcellPrefix(CollectorStemcellPrefix)
}

// SelectDeployments returns the names of the deployments running the collector,
// deduplicated and sorted.
func (s *Syncer) SelectDeployments(ctx context.Context) ([]string, error) {
	ctx, span := otel.Tracer(pkgName).Start(ctx, "SelectDeployments")
	defer span.End()

	deployments, err := s.orchestrator.Deployments(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Wrap(err, "select deployments")
	}

	selected := map[string]struct{}{}

	for idx := range deployments {
		if RunsCollector(&deployments[idx]) {
			selected[deployments[idx].Name] = struct{}{}
		}
	}

	names := maps.Keys(selected)
	slices.Sort(names)

	span.SetAttributes(attribute.Int("deployments", len(names)))
	metrics.DeploymentsSelected.Set(float64(len(names)))

	s.logger.WithField("deployments", names).Debug("deployments selected")

	return names, nil
}
