package app

import (
	"errors"
	"fmt"

	"github.com/vk/apiconfig/internal/codec"
	"github.com/vk/apiconfig/internal/nodeid"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath string // definition document or directory of documents
	Format    string // output format; empty follows the input document
	Select    string // address of the sub-tree to print; empty prints all

	// LegacyChildrenLookup looks for children on the enclosing map while
	// parsing, as older fixture producers expect.
	LegacyChildrenLookup bool

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.Format != "" {
		if _, err := codec.ParseFormat(cfg.Format); err != nil {
			return nil, err
		}
	}
	if cfg.Select != "" {
		if _, err := nodeid.Parse(cfg.Select); err != nil {
			return nil, fmt.Errorf("invalid select address: %w", err)
		}
	}

	return &cfg, nil
}
