package main

import (
	"flag"
	"fmt"

	"github.com/samber/lo"

	"github.com/grafana/elfscope/pkg/cfg"
	"github.com/grafana/elfscope/pkg/elf32"
	"github.com/grafana/elfscope/pkg/readelf"
)

// config is the content of the --config.file yaml file.
type config struct {
	Decoder elf32.Config `yaml:"decoder"`
	Output  string       `yaml:"output"`
}

func (c *config) RegisterFlags(f *flag.FlagSet) {
	c.Decoder.RegisterFlags(f)
	f.StringVar(&c.Output, "output", string(readelf.FormatText), "Output format.")
}

func (c *config) Validate() error {
	if !lo.Contains(readelf.Formats, c.Output) {
		return fmt.Errorf("unsupported output format %q, expected one of %v", c.Output, readelf.Formats)
	}
	return c.Decoder.Validate()
}

// loadConfig layers flag defaults, the config file and the command line.
func loadConfig(p *params) (*config, error) {
	var c config
	if err := cfg.Unmarshal(&c,
		cfg.Defaults(nil),
		cfg.YAML(p.configFile, p.configExpandEnv),
		p.overrides(),
	); err != nil {
		return nil, err
	}
	return &c, nil
}

// overrides applies the command line flags that were set explicitly.
func (p *params) overrides() cfg.Source {
	return func(dst cfg.Registerer) error {
		c := dst.(*config)
		if p.parallelismSet {
			c.Decoder.Parallelism = p.parallelism
		}
		if p.noMmap {
			c.Decoder.Mmap = false
		}
		if p.decompress {
			c.Decoder.Decompress = true
		}
		if p.output != "" {
			c.Output = p.output
		}
		return nil
	}
}
