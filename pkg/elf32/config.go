package elf32

import (
	"flag"
	"fmt"

	"github.com/grafana/elfscope/pkg/source"
)

type Config struct {
	Parallelism    int  `yaml:"parallelism"`
	Mmap           bool `yaml:"mmap"`
	Decompress     bool `yaml:"decompress"`
	ReadBufferSize int  `yaml:"read_buffer_size"`
}

func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	f.IntVar(&cfg.Parallelism, "decoder.parallelism", 1, "Number of section and program bodies read concurrently.")
	f.BoolVar(&cfg.Mmap, "decoder.mmap", true, "Map files into memory instead of using buffered reads.")
	f.BoolVar(&cfg.Decompress, "decoder.decompress", false, "Transparently decompress gzip and zstd wrapped files.")
	f.IntVar(&cfg.ReadBufferSize, "decoder.read-buffer-size", source.DefaultReadBufferSize, "Buffer size used for buffered reads.")
}

func (cfg *Config) Validate() error {
	if cfg.Parallelism < 1 {
		return fmt.Errorf("decoder.parallelism must be at least 1, got %d", cfg.Parallelism)
	}
	if cfg.ReadBufferSize < 0 {
		return fmt.Errorf("decoder.read-buffer-size must not be negative, got %d", cfg.ReadBufferSize)
	}
	return nil
}

// DefaultConfig returns the flag defaults.
func DefaultConfig() Config {
	var cfg Config
	cfg.RegisterFlags(flag.NewFlagSet("", flag.ContinueOnError))
	return cfg
}
