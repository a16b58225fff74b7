// Package linter drives the lint pipeline: file discovery, parsing,
// per-rule engine runs, and diagnostic collection.
package linter

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jsxray/jsxray/pkg/engine"
	"github.com/jsxray/jsxray/pkg/parser"
	"github.com/jsxray/jsxray/pkg/pragma"
	"github.com/jsxray/jsxray/pkg/report"
	"github.com/jsxray/jsxray/pkg/rules"
	"github.com/jsxray/jsxray/pkg/util"
)

// Config configures a lint run.
type Config struct {
	// Include glob patterns for file matching.
	Include []string
	// Exclude glob patterns.
	Exclude []string
	// Rules names the rules to run; empty runs every built-in rule.
	Rules []string
	// Settings carries the pragma and wrapper configuration.
	Settings pragma.Settings
	// Workers overrides the worker count; 0 sizes from the host.
	Workers int
	// CacheSize bounds the mapped source cache; 0 uses the default.
	CacheSize int
}

// DefaultConfig returns the default lint configuration, excluding
// dependency, build and test artifacts.
func DefaultConfig() Config {
	return Config{
		Include: []string{
			"**/*.js",
			"**/*.jsx",
			"**/*.ts",
			"**/*.tsx",
		},
		Exclude: []string{
			"node_modules/**",
			".git/**",
			"dist/**",
			"build/**",
			".next/**",
			"coverage/**",
			"out/**",
			"**/*.d.ts",
		},
		Settings: pragma.DefaultSettings(),
	}
}

// Stats aggregates timing and volume counters for one run.
type Stats struct {
	FilesDiscovered int
	FilesLinted     int
	FilesFailed     int
	Issues          int
	DiscoveryTimeMs int64
	LintTimeMs      int64
	TotalTimeMs     int64
}

// Linter owns the parser pools, the source cache, and the resolved
// rule set for repeated runs over the same tree.
type Linter struct {
	pm    *parser.Manager
	cache *SourceCache
	rules []engine.Rule
	cfg   Config
	log   *slog.Logger
}

// New creates a linter. Unknown rule names in cfg.Rules are an error so
// typos surface before any file is touched.
func New(cfg Config, logger *slog.Logger) (*Linter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	selected, err := resolveRules(cfg.Rules)
	if err != nil {
		return nil, err
	}
	cache, err := NewSourceCache(cfg.CacheSize, logger)
	if err != nil {
		return nil, err
	}
	return &Linter{
		pm:    parser.NewManager(logger),
		cache: cache,
		rules: selected,
		cfg:   cfg,
		log:   logger,
	}, nil
}

func resolveRules(names []string) ([]engine.Rule, error) {
	if len(names) == 0 {
		return rules.All(), nil
	}
	out := make([]engine.Rule, 0, len(names))
	for _, name := range names {
		r, ok := rules.ByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown rule: %s", name)
		}
		out = append(out, r)
	}
	return out, nil
}

// Rules returns the resolved rule set for this linter.
func (l *Linter) Rules() []engine.Rule {
	return l.rules
}

// Run discovers files under rootDir and lints them, returning collected
// issues and run statistics.
func (l *Linter) Run(rootDir string) (*report.Collector, *Stats, error) {
	totalStart := time.Now()
	stats := &Stats{}

	discoveryStart := time.Now()
	files, err := DiscoverFiles(rootDir, l.cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("discovery failed: %w", err)
	}
	stats.FilesDiscovered = len(files)
	stats.DiscoveryTimeMs = time.Since(discoveryStart).Milliseconds()

	l.log.Info("discovery complete", "files", len(files), "ms", stats.DiscoveryTimeMs)

	collector := report.NewCollector()
	if len(files) == 0 {
		stats.TotalTimeMs = time.Since(totalStart).Milliseconds()
		return collector, stats, nil
	}

	lintStart := time.Now()
	l.LintFiles(files, collector, stats)
	stats.LintTimeMs = time.Since(lintStart).Milliseconds()
	stats.Issues = collector.Len()
	stats.TotalTimeMs = time.Since(totalStart).Milliseconds()

	l.log.Info("lint complete",
		"linted", stats.FilesLinted, "failed", stats.FilesFailed,
		"issues", stats.Issues, "ms", stats.LintTimeMs)

	return collector, stats, nil
}

// LintFiles lints the given files in parallel. Failures on individual
// files are logged and counted but don't stop the run.
func (l *Linter) LintFiles(files []string, collector *report.Collector, stats *Stats) {
	numWorkers := util.GetOptimalPoolSizeWithOverride(l.cfg.Workers)
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	paths := make(chan string, numWorkers*2)
	type outcome struct {
		file string
		err  error
	}
	outcomes := make(chan outcome, numWorkers)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				outcomes <- outcome{file: path, err: l.LintFile(path, collector)}
			}
		}()
	}

	go func() {
		for _, f := range files {
			paths <- f
		}
		close(paths)
		wg.Wait()
		close(outcomes)
	}()

	for o := range outcomes {
		if o.err != nil {
			l.log.Warn("lint failed", "file", o.file, "error", o.err)
			stats.FilesFailed++
			continue
		}
		stats.FilesLinted++
	}
}

// LintFile reads path through the source cache and lints it.
func (l *Linter) LintFile(path string, collector *report.Collector) error {
	source, err := l.cache.Get(path)
	if err != nil {
		return err
	}
	return l.LintSource(path, source, collector)
}

// LintSource parses source once and runs every configured rule over the
// tree. Each rule gets a fresh run context and registry; diagnostics
// accumulate in the shared collector.
func (l *Linter) LintSource(path string, source []byte, collector *report.Collector) error {
	tree, err := l.pm.ParseFile(source, path)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	for _, rule := range l.rules {
		ctx := engine.NewContext(root, source, path, l.cfg.Settings, l.log, collector)
		if err := runRule(ctx, rule); err != nil {
			return err
		}
	}
	return nil
}

// runRule isolates one rule run: a tracker contract violation panics,
// which fails this file's run without taking down the process.
func runRule(ctx *engine.Context, rule engine.Rule) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rule %s: %v", rule.Name(), r)
		}
	}()
	engine.Detect(ctx, rule)
	return nil
}

// Invalidate drops path from the source cache.
func (l *Linter) Invalidate(path string) {
	l.cache.Invalidate(path)
}

// Close releases parser pools and unmaps cached sources.
func (l *Linter) Close() error {
	l.cache.Close()
	return l.pm.Close()
}
