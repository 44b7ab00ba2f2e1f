package cmd

import (
	"fmt"
	"github.com/cottand/refine/internal/log"
	"github.com/spf13/cobra"
	"log/slog"
)

type commonFlags struct {
	config   *string
	reals    *[]string
	logLevel *int
	sections *[]string
}

func addCommonFlags(c *cobra.Command) *commonFlags {
	return &commonFlags{
		config:   c.Flags().StringP("config", "c", "", "YAML configuration file"),
		reals:    c.Flags().StringSliceP("real", "r", nil, "treat the named variables as real-valued"),
		logLevel: c.Flags().IntP("log-level", "l", int(slog.LevelError), "log level"),
		sections: c.Flags().StringSlice("log-sections", nil, "log sections to emit below warning level"),
	}
}

// setup loads the configuration, lets flags override it, and configures logging
func (f *commonFlags) setup(c *cobra.Command) (Config, error) {
	cfg, err := LoadConfig(*f.config)
	if err != nil {
		return cfg, err
	}
	cfg.Reals = append(cfg.Reals, *f.reals...)

	level, err := cfg.Level()
	if err != nil {
		return cfg, err
	}
	if c.Flags().Changed("log-level") {
		level = slog.Level(*f.logLevel)
	}
	log.SetLevel(level)

	if c.Flags().Changed("log-sections") {
		cfg.Sections = *f.sections
	}
	if len(cfg.Sections) != 0 {
		log.EnableSections(cfg.Sections...)
	}
	return cfg, nil
}

func verdict(holds bool, yes, no string) string {
	if holds {
		return yes
	}
	return no
}

func printLine(c *cobra.Command, a ...any) {
	_, _ = fmt.Fprintln(c.OutOrStdout(), a...)
}
