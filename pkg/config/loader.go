package config

import (
	"errors"
	"io"
	"os"

	"github.com/kkyr/fig"
	"github.com/spf13/pflag"
)

const (
	EnvPrefix = "COCODE"
	FileName  = "config.yaml"
)

// LoadConfig loads a configuration file into the given struct.
// The path param specifies a custom directory with the configuration file.
// Reads and puts environment variables with the prefix COCODE_.
// Params from the config should be in uppercase separated with _,
// i.e. COCODE_COORDINATOR_SERVER_ADDRESS.
// Without any file only the defaults and the env are used.
func LoadConfig(config any, path string) error {
	dirs := []string{path}
	if path == "" {
		dirs = append(dirs, ".", "configs", "../../configs")
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, home+"/.cocode")
		}
	}
	err := fig.Load(config, fig.File(FileName), fig.Dirs(dirs...), fig.UseEnv(EnvPrefix))
	if errors.Is(err, fig.ErrFileNotFound) && path == "" {
		return LoadConfigEnv(config)
	}
	return err
}

func LoadConfigEnv(config any) error {
	return fig.Load(config, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
}

// NewCoordinatorConfig loads the config from the --conf dir found in args.
func NewCoordinatorConfig(args []string) (conf CoordinatorConfig, err error) {
	err = LoadConfig(&conf, ConfPath(args))
	return
}

// ConfPath picks the --conf value from the command line
// before the real flags are parsed.
func ConfPath(args []string) string {
	fs := pflag.NewFlagSet("conf", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	path := fs.String("conf", "", "")
	_ = fs.Parse(args)
	return *path
}
