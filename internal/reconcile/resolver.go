package reconcile

import (
	"context"

	"github.com/metal-toolbox/afsync/internal/metrics"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// NameMap maps a VM join key value to the VM canonical "job/index" name.
type NameMap map[string]string

// ResolveCanonicalNames queries the VMs of each deployment and maps their join key to their canonical name.
//
// When two VMs share a join key the one from the deployment later in the list wins.
// VMs without an index or without a join key value are left out.
func (s *Syncer) ResolveCanonicalNames(ctx context.Context, deployments []string) (NameMap, error) {
	ctx, span := otel.Tracer(pkgName).Start(ctx, "ResolveCanonicalNames")
	defer span.End()

	names := NameMap{}

	for _, deployment := range deployments {
		vms, err := s.orchestrator.DeploymentVMs(ctx, deployment)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, errors.Wrap(err, "resolve canonical names")
		}

		for idx := range vms {
			vm := &vms[idx]

			key := s.joinKey.Of(vm)
			name := vm.CanonicalName()

			le := s.logger.WithFields(logrus.Fields{
				"deployment": deployment,
				"joinKey":    s.joinKey,
				"key":        key,
				"job":        vm.Job,
			})

			if key == "" || name == "" {
				le.Debug("VM without join key value or index, ignored")
				continue
			}

			if prev, exists := names[key]; exists && prev != name {
				le.WithFields(logrus.Fields{
					"previous": prev,
					"name":     name,
				}).Debug("duplicate join key, canonical name overwritten")
			}

			names[key] = name
		}
	}

	span.SetAttributes(attribute.Int("canonicalNames", len(names)))
	metrics.VMsResolved.Set(float64(len(names)))

	return names, nil
}
