package app

import (
	"os"
	"os/signal"
	"syscall"

	runtime "github.com/banzaicloud/logrus-runtime-formatter"
	"github.com/bombsimon/logrusr/v2"
	"github.com/metal-toolbox/afsync/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
)

// App holds attributes for the afsync application
type App struct {
	// Viper loads configuration parameters.
	v *viper.Viper
	// afsync configuration.
	Config *Configuration
	// TermCh is the channel to terminate the app based on a signal
	TermCh chan os.Signal
	// Logger is the app logger
	Logger *logrus.Logger
	// Kind is the type of application - cli
	Kind model.AppKind
}

// New returns returns a new instance of the afsync app
func New(appKind model.AppKind, inventoryKind model.InventoryKind, cfgFile string, loglevel int) (*App, error) {
	app := &App{
		v:      viper.New(),
		Kind:   appKind,
		Config: &Configuration{},
		TermCh: make(chan os.Signal, 1),
		Logger: logrus.New(),
	}

	if err := app.LoadConfiguration(cfgFile, inventoryKind); err != nil {
		return nil, err
	}

	// the log level flags take precedence over the configured log level
	switch loglevel {
	case model.LogLevelDebug:
		app.Logger.Level = logrus.DebugLevel
	case model.LogLevelTrace:
		app.Logger.Level = logrus.TraceLevel
	default:
		app.Logger.Level = logLevelFromConfig(app.Config.LogLevel)
	}

	app.Logger.SetFormatter(
		&runtime.Formatter{ChildFormatter: &logrus.JSONFormatter{}},
	)

	// otel reports exporter errors through this logger
	otel.SetLogger(logrusr.New(app.Logger))

	// register for SIGINT, SIGTERM
	signal.Notify(app.TermCh, syscall.SIGINT, syscall.SIGTERM)

	return app, nil
}

func logLevelFromConfig(level string) logrus.Level {
	switch level {
	case "debug":
		return logrus.DebugLevel
	case "trace":
		return logrus.TraceLevel
	default:
		return logrus.InfoLevel
	}
}
