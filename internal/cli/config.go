package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// Config holds defaults read from the TOML config file. Command line flags
// always take precedence over it.
//
//	lang = "de"
//	depth = 3
//	downsize = 2.5
//	formats = ["svg", "html"]
//
//	[serve]
//	addr = ":9000"
//	timeout = "2m"
type Config struct {
	Lang           string   `toml:"lang"`
	Depth          *int     `toml:"depth"`
	Downsize       float64  `toml:"downsize"`
	Style          string   `toml:"style"`
	Formats        []string `toml:"formats"`
	MaxNodes       int      `toml:"max_nodes"`
	PruneThreshold int      `toml:"prune_threshold"`

	Serve ServeConfig `toml:"serve"`
}

// ServeConfig holds defaults for the serve command.
type ServeConfig struct {
	Addr    string        `toml:"addr"`
	Timeout time.Duration `toml:"timeout"`
}

// defaultConfigPath returns $XDG_CONFIG_HOME/wikigraph/config.toml.
func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// loadConfig reads the config file at path. An empty path selects the
// default location, which may be absent. An explicitly named file must exist.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return &Config{}, nil
		}
		path = p
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return &cfg, nil
}

// applyTo sets the defaults of cmd's flags that were not given on the command line.
func (cfg *Config) applyTo(cmd *cobra.Command) error {
	values := map[string]string{}
	if cfg.Lang != "" {
		values["lang"] = cfg.Lang
	}
	if cfg.Depth != nil {
		values["depth"] = strconv.Itoa(*cfg.Depth)
	}
	if cfg.Downsize != 0 {
		values["downsize"] = strconv.FormatFloat(cfg.Downsize, 'g', -1, 64)
	}
	if cfg.Style != "" {
		values["style"] = cfg.Style
	}
	if len(cfg.Formats) > 0 {
		values["format"] = strings.Join(cfg.Formats, ",")
	}
	if cfg.MaxNodes != 0 {
		values["max-nodes"] = strconv.Itoa(cfg.MaxNodes)
	}
	if cfg.PruneThreshold != 0 {
		values["prune-threshold"] = strconv.Itoa(cfg.PruneThreshold)
	}
	if cfg.Serve.Addr != "" {
		values["addr"] = cfg.Serve.Addr
	}
	if cfg.Serve.Timeout != 0 {
		values["timeout"] = cfg.Serve.Timeout.String()
	}

	for name, value := range values {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if err := f.Value.Set(value); err != nil {
			return fmt.Errorf("config %s: %w", strings.ReplaceAll(name, "-", "_"), err)
		}
	}
	return nil
}

// loadConfigFor loads the config file and applies it to cmd.
func (c *CLI) loadConfigFor(cmd *cobra.Command) error {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	return cfg.applyTo(cmd)
}
