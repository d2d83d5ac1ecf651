package appfirst

import (
	"context"
	"strconv"
	"time"

	"github.com/metal-toolbox/afsync/internal/app"
	"github.com/metal-toolbox/afsync/internal/model"
	"github.com/metal-toolbox/afsync/internal/rest"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// API names AppFirst in request errors and metrics.
	API = "appfirst"
)

// Client queries and updates AppFirst monitored servers.
type Client struct {
	rest   *rest.Client
	logger *logrus.Logger
}

// tagList is the server_tags listing envelope.
type tagList struct {
	Data []model.Tag `json:"data"`
}

// New returns an AppFirst API client.
func New(config *app.AppFirstOptions, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		rest: rest.New(
			API,
			config.APIRoot,
			rest.Credentials{Username: config.User, Password: config.APIKey},
			rest.WithHTTPClient(rest.NewHTTPClient(nil, timeout)),
			rest.WithLogger(logger),
		),
		logger: logger,
	}
}

// ServerTags returns all server tags.
func (c *Client) ServerTags(ctx context.Context) ([]model.Tag, error) {
	var tags tagList

	// the API routes are slash terminated
	if err := c.rest.Get(ctx, c.rest.URL("server_tags")+"/", &tags); err != nil {
		return nil, errors.Wrap(err, "server tags query")
	}

	return tags.Data, nil
}

// ServerURL returns the API URL of the server record.
func (c *Client) ServerURL(id int64) string {
	return c.rest.URL("servers", strconv.FormatInt(id, 10)) + "/"
}

// Server returns the full server record.
func (c *Client) Server(ctx context.Context, id int64) (*model.Server, error) {
	server := &model.Server{ID: id}

	if err := c.rest.Get(ctx, c.ServerURL(id), server); err != nil {
		return nil, errors.Wrap(err, "server query")
	}

	return server, nil
}

// UpdateServer submits the full server record.
func (c *Client) UpdateServer(ctx context.Context, server *model.Server) error {
	if err := c.rest.Put(ctx, c.ServerURL(server.ID), server, nil); err != nil {
		return errors.Wrap(err, "server update")
	}

	return nil
}
