package bosh

import (
	"context"
	"time"

	"github.com/metal-toolbox/afsync/internal/app"
	"github.com/metal-toolbox/afsync/internal/model"
	"github.com/metal-toolbox/afsync/internal/rest"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// API names the director in request errors and metrics.
	API = "bosh"
)

// Client queries deployments and VMs from a BOSH director.
type Client struct {
	rest   *rest.Client
	logger *logrus.Logger
}

// New returns a BOSH director client, the TLS trust follows the CA certificate and insecure options.
func New(config *app.BoshOptions, timeout time.Duration, logger *logrus.Logger) (*Client, error) {
	tlsConfig, err := TLSConfig(config.CACertFile, config.Insecure)
	if err != nil {
		return nil, err
	}

	if config.Insecure {
		logger.WithField("url", config.URL).Warn("BOSH director TLS certificate verification disabled")
	}

	return &Client{
		rest: rest.New(
			API,
			config.URL,
			rest.Credentials{Username: config.User, Password: config.Password},
			rest.WithHTTPClient(rest.NewHTTPClient(tlsConfig, timeout)),
			rest.WithLogger(logger),
		),
		logger: logger,
	}, nil
}

// Deployments returns all deployments known to the director.
func (c *Client) Deployments(ctx context.Context) ([]model.Deployment, error) {
	var deployments []model.Deployment

	if err := c.rest.Get(ctx, c.rest.URL("deployments"), &deployments); err != nil {
		return nil, errors.Wrap(err, "deployments query")
	}

	return deployments, nil
}

// DeploymentVMs returns the VMs of the named deployment.
func (c *Client) DeploymentVMs(ctx context.Context, deployment string) ([]model.VM, error) {
	var vms []model.VM

	if err := c.rest.Get(ctx, c.rest.URL("deployments", deployment, "vms"), &vms); err != nil {
		return nil, errors.Wrap(err, "deployment VMs query: "+deployment)
	}

	return vms, nil
}
