package main

import (
	"flag"
	"strings"

	"github.com/jsxray/jsxray/pkg/linter"
)

// commonOpts holds the flags shared by the lint, watch and serve
// commands.
type commonOpts struct {
	include  string
	exclude  string
	rules    string
	pragma   string
	reactVer string
	workers  int
	logLevel string
	logJSON  bool
}

func addCommonFlags(fs *flag.FlagSet) *commonOpts {
	opts := &commonOpts{}
	fs.StringVar(&opts.include, "include", "", "comma-separated include globs (defaults to JS/TS sources)")
	fs.StringVar(&opts.exclude, "exclude", "", "comma-separated exclude globs appended to the defaults")
	fs.StringVar(&opts.rules, "rules", "", "comma-separated rule names to run (default: all)")
	fs.StringVar(&opts.pragma, "pragma", "", "JSX factory identifier (default React)")
	fs.StringVar(&opts.reactVer, "react-version", "", "react version for gated rules, a semver string or \"detect\"")
	fs.IntVar(&opts.workers, "workers", 0, "worker count, 0 sizes from the host")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.BoolVar(&opts.logJSON, "log-json", false, "emit logs as JSON instead of text")
	return opts
}

func (o *commonOpts) toConfig() linter.Config {
	cfg := linter.DefaultConfig()
	if o.include != "" {
		cfg.Include = splitList(o.include)
	}
	if o.exclude != "" {
		cfg.Exclude = append(cfg.Exclude, splitList(o.exclude)...)
	}
	if o.rules != "" {
		cfg.Rules = splitList(o.rules)
	}
	if o.pragma != "" {
		cfg.Settings.Pragma = o.pragma
	}
	if o.reactVer != "" {
		cfg.Settings.Version = o.reactVer
	}
	cfg.Workers = o.workers
	return cfg
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
