package app

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/jeremywohl/flatten"
	"github.com/metal-toolbox/afsync/internal/model"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

const (
	// DefaultConfigFile is looked up in the user home directory when no config file is given.
	DefaultConfigFile = ".af_sync.yml"

	DefaultAppFirstAPIRoot = "https://wwws.appfirst.com/api"
)

var (
	ErrConfig = errors.New("configuration error")
)

// MissingFieldError is returned for each required configuration field left unset.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing configuration field '" + e.Field + "'"
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrConfig
}

// Configuration holds application configuration read from a YAML or set by env variables.
//
// The YAML keys are the upper case names used by the AppFirst sync script,
// viper matches them case insensitively.
//
// nolint:govet // prefer readability over field alignment optimization for this case.
type Configuration struct {
	// LogLevel is the app verbose logging level.
	// one of - info, debug, trace
	LogLevel string `mapstructure:"log_level"`

	// Tag is the AppFirst server tag whose servers are reconciled.
	Tag string `mapstructure:"tag"`

	// JoinKey is the BOSH VM field matched against the AppFirst server hostname.
	JoinKey model.JoinKey `mapstructure:"join_key"`

	// HTTPTimeout applies to each API request, zero leaves requests without a timeout.
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`

	// PushgatewayURL when set, run metrics are pushed to this Prometheus Pushgateway.
	PushgatewayURL string `mapstructure:"pushgateway_url"`

	Bosh     BoshOptions     `mapstructure:",squash"`
	AppFirst AppFirstOptions `mapstructure:",squash"`
}

// BoshOptions defines configuration for the BOSH director client.
type BoshOptions struct {
	URL      string `mapstructure:"bosh_url"`
	User     string `mapstructure:"bosh_user"`
	Password string `mapstructure:"bosh_pass"`

	// CACertFile is a PEM bundle trusted in addition to the system roots,
	// directors commonly present a certificate signed by their own CA.
	CACertFile string `mapstructure:"bosh_ca_cert"`

	// Insecure disables the director TLS certificate verification, it must be opted in to.
	Insecure bool `mapstructure:"bosh_insecure"`
}

// AppFirstOptions defines configuration for the AppFirst API client.
type AppFirstOptions struct {
	APIRoot string `mapstructure:"af_api_root"`
	User    string `mapstructure:"af_user"`
	APIKey  string `mapstructure:"af_api_key"`
}

// LoadConfiguration loads application configuration
//
// Reads in the cfgFile when available and overrides from environment variables.
func (a *App) LoadConfiguration(cfgFile string, inventoryKind model.InventoryKind) error {
	a.v.SetConfigType("yaml")
	a.v.SetEnvPrefix(model.AppName)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	file, explicit, err := configFile(cfgFile)
	if err != nil {
		return errors.Wrap(ErrConfig, err.Error())
	}

	fh, err := os.Open(file)

	switch {
	case err == nil:
		defer fh.Close()

		if err = a.v.ReadConfig(fh); err != nil {
			return errors.Wrap(ErrConfig, "ReadConfig error: "+file+": "+err.Error())
		}
	case explicit || !os.IsNotExist(err):
		return errors.Wrap(ErrConfig, err.Error())
	}

	a.v.SetDefault("log_level", "info")
	a.v.SetDefault("tag", model.DefaultTag)
	a.v.SetDefault("join_key", string(model.DefaultJoinKey))
	a.v.SetDefault("af_api_root", DefaultAppFirstAPIRoot)

	if err := a.envBindVars(); err != nil {
		return errors.Wrap(ErrConfig, "env var bind error: "+err.Error())
	}

	if err := a.v.Unmarshal(a.Config); err != nil {
		return errors.Wrap(ErrConfig, "Unmarshal error: "+err.Error())
	}

	return a.Config.validate(inventoryKind)
}

// configFile returns the configuration file path and if it was set explicitly.
func configFile(cfgFile string) (string, bool, error) {
	if cfgFile != "" {
		return cfgFile, true, nil
	}

	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", false, err
	}

	return filepath.Join(homedir, DefaultConfigFile), false, nil
}

// envBindVars binds environment variables to the struct
// without a configuration file being unmarshalled,
// this is a workaround for a viper bug,
//
// This can be replaced by the solution in https://github.com/spf13/viper/pull/1429
// once that PR is merged.
func (a *App) envBindVars() error {
	envKeysMap := map[string]interface{}{}
	if err := mapstructure.Decode(a.Config, &envKeysMap); err != nil {
		return err
	}

	// Flatten nested conf map
	flat, err := flatten.Flatten(envKeysMap, "", flatten.DotStyle)
	if err != nil {
		return errors.Wrap(err, "Unable to flatten config")
	}

	for k := range flat {
		if err := a.v.BindEnv(k); err != nil {
			return errors.Wrap(ErrConfig, "env var bind error: "+err.Error())
		}
	}

	return nil
}

// validate checks the required parameters are present, all missing fields are returned at once.
//
// The BOSH parameters are not required when the inventory is read from a YAML snapshot.
func (c *Configuration) validate(inventoryKind model.InventoryKind) error {
	var merr *multierror.Error

	required := []struct {
		field string
		value string
	}{
		{"AF_USER", c.AppFirst.User},
		{"AF_API_KEY", c.AppFirst.APIKey},
	}

	if inventoryKind != model.InventoryKindYaml {
		required = append(
			[]struct {
				field string
				value string
			}{
				{"BOSH_URL", c.Bosh.URL},
				{"BOSH_USER", c.Bosh.User},
				{"BOSH_PASS", c.Bosh.Password},
			},
			required...,
		)
	}

	for _, r := range required {
		if r.value == "" {
			merr = multierror.Append(merr, &MissingFieldError{Field: r.field})
		}
	}

	if err := merr.ErrorOrNil(); err != nil {
		return err
	}

	if _, err := model.ParseJoinKey(string(c.JoinKey)); err != nil {
		return errors.Wrap(ErrConfig, err.Error())
	}

	if c.Bosh.URL != "" {
		if _, err := url.ParseRequestURI(c.Bosh.URL); err != nil {
			return errors.Wrap(ErrConfig, "BOSH_URL error: "+err.Error())
		}
	}

	if _, err := url.ParseRequestURI(c.AppFirst.APIRoot); err != nil {
		return errors.Wrap(ErrConfig, "AF_API_ROOT error: "+err.Error())
	}

	if c.Bosh.Insecure && c.Bosh.CACertFile != "" {
		return errors.Wrap(ErrConfig, "BOSH_INSECURE and BOSH_CA_CERT are mutually exclusive")
	}

	return nil
}
