package inventory

import (
	"context"

	"github.com/metal-toolbox/afsync/internal/model"
)

// Orchestrator is the source of deployments and their VMs.
type Orchestrator interface {
	// Deployments returns all deployments with their releases and stemcells.
	Deployments(ctx context.Context) ([]model.Deployment, error)

	// DeploymentVMs returns the VMs of the named deployment.
	DeploymentVMs(ctx context.Context, deployment string) ([]model.VM, error)
}

// Monitor is the monitoring platform holding the server records to keep in sync.
type Monitor interface {
	// ServerTags returns all server tags.
	ServerTags(ctx context.Context) ([]model.Tag, error)

	// Server returns the full server record identified by id.
	Server(ctx context.Context, id int64) (*model.Server, error)

	// UpdateServer submits the full server record.
	UpdateServer(ctx context.Context, server *model.Server) error

	// ServerURL returns the location of the server record, for reporting.
	ServerURL(id int64) string
}
