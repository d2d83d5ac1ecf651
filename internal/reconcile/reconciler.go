package reconcile

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jinzhu/copier"
	"github.com/metal-toolbox/afsync/internal/metrics"
	"github.com/metal-toolbox/afsync/internal/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// placeholderDescription replaces an empty description on update,
// AppFirst rejects server records with a blank description.
const placeholderDescription = " "

// TaggedServerIDs returns the ids of the servers under the tag, an unknown tag has no servers.
func (s *Syncer) TaggedServerIDs(ctx context.Context, tag string) ([]int64, error) {
	tags, err := s.monitor.ServerTags(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "tagged servers")
	}

	for _, t := range tags {
		if t.Name == tag {
			return t.Servers, nil
		}
	}

	s.logger.WithField("tag", tag).Warn("server tag not found")

	return []int64{}, nil
}

// Reconcile sets the nickname of each server under the tag to the canonical name its hostname maps to.
//
// The first failing request aborts the run, the result counts the servers handled up to then.
func (s *Syncer) Reconcile(ctx context.Context, tag string, names NameMap) (*Result, error) {
	ctx, span := otel.Tracer(pkgName).Start(
		ctx,
		"Reconcile",
		trace.WithAttributes(attribute.String("tag", tag)),
	)
	defer span.End()

	result := &Result{}

	ids, err := s.TaggedServerIDs(ctx, tag)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}

	for _, id := range ids {
		outcome, err := s.reconcileServer(ctx, id, names)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return result, err
		}

		result.add(outcome)
		metrics.ServerCounter.WithLabelValues(string(outcome)).Inc()
	}

	return result, nil
}

func (s *Syncer) reconcileServer(ctx context.Context, id int64, names NameMap) (model.Outcome, error) {
	server, err := s.monitor.Server(ctx, id)
	if err != nil {
		return "", errors.Wrap(err, "reconcile server "+strconv.FormatInt(id, 10))
	}

	le := s.logger.WithFields(logrus.Fields{
		"serverID": id,
		"hostname": server.Hostname,
		"nickname": server.Nickname,
	})

	name, ok := names[s.joinKey.Match(server)]
	if !ok {
		le.Debug("no canonical name for server")
		return model.OutcomeSkipped, nil
	}

	url := s.monitor.ServerURL(id)

	if name == server.Nickname {
		s.notify("Server %s is up to date (%s).", server.Nickname, url)
		return model.OutcomeUpToDate, nil
	}

	// the fetched record is left as is, the update goes out on a copy
	update := &model.Server{}
	if err := copier.CopyWithOption(update, server, copier.Option{DeepCopy: true}); err != nil {
		return "", errors.Wrap(err, "server record copy")
	}

	update.Nickname = name
	if update.Description == "" {
		update.Description = placeholderDescription
	}

	if s.dryRun {
		s.notify("Server %s would be updated (%s).", update.Nickname, url)
		return model.OutcomeWouldUpdate, nil
	}

	if err := s.monitor.UpdateServer(ctx, update); err != nil {
		return "", errors.Wrap(err, "reconcile server "+strconv.FormatInt(id, 10))
	}

	le.WithField("canonicalName", name).Info("server nickname updated")
	s.notify("Server %s has been updated (%s).", update.Nickname, url)

	return model.OutcomeUpdated, nil
}

func (s *Syncer) notify(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format+"\n", args...)
}
