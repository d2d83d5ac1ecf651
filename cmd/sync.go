package cmd

import (
	"context"
	"log"
	"strings"

	"github.com/equinix-labs/otel-init-go/otelinit"
	"github.com/metal-toolbox/afsync/internal/app"
	"github.com/metal-toolbox/afsync/internal/appfirst"
	"github.com/metal-toolbox/afsync/internal/bosh"
	"github.com/metal-toolbox/afsync/internal/inventory"
	"github.com/metal-toolbox/afsync/internal/metrics"
	"github.com/metal-toolbox/afsync/internal/model"
	"github.com/metal-toolbox/afsync/internal/reconcile"
	"github.com/metal-toolbox/afsync/internal/version"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var cmdSync = &cobra.Command{
	Use:   "sync",
	Short: "Run one sync pass, the default action",
	Run: func(cmd *cobra.Command, args []string) {
		runSync(cmd.Context())
	},
}

// sync command
var (
	dryrun        bool
	inventoryFile string
)

var (
	ErrInventorySource = errors.New("inventory source error")
)

func runSync(ctx context.Context) {
	var logLevel int

	switch {
	case debug:
		logLevel = model.LogLevelDebug
	case trace:
		logLevel = model.LogLevelTrace
	default:
		logLevel = model.LogLevelInfo
	}

	inventoryKind := model.InventoryKindBosh
	if inventoryFile != "" {
		inventoryKind = model.InventoryKindYaml
	}

	afsync, err := app.New(model.AppKindCLI, inventoryKind, cfgFile, logLevel)
	if err != nil {
		log.Fatal(err)
	}

	ctx, otelShutdown := otelinit.InitOpenTelemetry(ctx, model.AppName)
	defer otelShutdown(ctx)

	// Setup cancel context with cancel func.
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	// routine listens for termination signal and cancels the context
	go func() {
		<-afsync.TermCh
		afsync.Logger.Info("got TERM signal, exiting...")
		cancelFunc()
	}()

	orchestrator, err := initInventory(inventoryKind, afsync.Config, afsync.Logger)
	if err != nil {
		afsync.Logger.Fatal(err)
	}

	monitor := appfirst.New(&afsync.Config.AppFirst, afsync.Config.HTTPTimeout, afsync.Logger)

	v := version.Current()
	afsync.Logger.WithFields(
		logrus.Fields{
			"version":   v.AppVersion,
			"commit":    v.GitCommit,
			"branch":    v.GitBranch,
			"dry-run":   dryrun,
			"inventory": inventoryKind,
		},
	).Debug("afsync starting")

	syncer := reconcile.New(
		orchestrator,
		monitor,
		afsync.Logger,
		reconcile.WithTag(afsync.Config.Tag),
		reconcile.WithJoinKey(afsync.Config.JoinKey),
		reconcile.WithDryRun(dryrun),
	)

	_, errSync := syncer.Run(ctx)

	if afsync.Config.PushgatewayURL != "" {
		version.ExportBuildInfoMetric()

		if err := metrics.Push(afsync.Config.PushgatewayURL); err != nil {
			afsync.Logger.WithError(err).Warn("metrics push failed")
		}
	}

	if errSync != nil {
		// the deferred shutdown is skipped by Fatal
		otelShutdown(ctx)
		afsync.Logger.Fatal(errSync)
	}
}

func initInventory(kind model.InventoryKind, config *app.Configuration, logger *logrus.Logger) (inventory.Orchestrator, error) {
	switch {
	// from CLI flags
	case kind == model.InventoryKindYaml && (strings.HasSuffix(inventoryFile, ".yml") || strings.HasSuffix(inventoryFile, ".yaml")):
		return inventory.NewYamlInventory(inventoryFile)
	case kind == model.InventoryKindBosh:
		return bosh.New(&config.Bosh, config.HTTPTimeout, logger)
	}

	return nil, errors.Wrap(ErrInventorySource, "expected an inventory file with a .yml/.yaml extension")
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&dryrun, "dry-run", "", false, "In dryrun mode, servers are reconciled without updating their nickname")
	rootCmd.PersistentFlags().StringVar(&inventoryFile, "inventory", "", "Read BOSH deployments and VMs from an inventory file with a .yml/.yaml extension instead of the director")

	rootCmd.AddCommand(cmdSync)
}
