// Package parser manages tree-sitter parsers for JavaScript, TypeScript,
// JSX and TSX sources. It is the AST producer for the lint engine: every
// downstream package consumes the *ts.Node trees it returns and never
// touches source text directly.
package parser

import (
	"fmt"
	"log/slog"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/jsxray/jsxray/pkg/util"
)

// Manager manages one parser pool per grammar with lazy initialization
// and thread-safe concurrent access.
//
// Callers own returned Tree instances and must call tree.Close() after
// use; the Manager itself must be closed via Close().
type Manager struct {
	pools map[Language]*parserPool
	mutex sync.RWMutex

	logger *slog.Logger

	stats struct {
		parsesCalled int
	}
}

// NewManager creates a new parser Manager.
//
// The returned manager must be closed via Close() to free resources.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		pools:  make(map[Language]*parserPool),
		logger: logger,
	}
}

// Parse parses source code with the given grammar.
//
// Returns a Tree that MUST be closed by the caller. Trees with syntax
// errors are still returned; partial trees are useful for linting and
// the error is logged, not fatal.
func (m *Manager) Parse(source []byte, lang Language) (*ts.Tree, error) {
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("cannot parse unknown language")
	}

	m.mutex.Lock()
	m.stats.parsesCalled++
	m.mutex.Unlock()

	pool, err := m.getOrCreatePool(lang)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool for %s: %w", lang, err)
	}

	parser, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}

	tree := parser.Parse(source, nil)
	pool.release(parser)

	if tree == nil {
		return nil, fmt.Errorf("parser.Parse returned nil tree")
	}

	if tree.RootNode().HasError() {
		m.logger.Warn("parse tree contains errors",
			"language", lang.String(),
			"errors", true)
	}

	return tree, nil
}

// ParseFile parses a file by detecting its grammar from the file path.
//
// Returns a Tree that MUST be closed by the caller via tree.Close().
func (m *Manager) ParseFile(source []byte, filePath string) (*ts.Tree, error) {
	lang := DetectLanguage(filePath)
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}
	return m.Parse(source, lang)
}

// Close releases all parser pool resources. After Close(), the Manager
// cannot be used.
func (m *Manager) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.logger.Debug("closing parser manager",
		"parses_called", m.stats.parsesCalled)

	for lang, pool := range m.pools {
		if pool != nil {
			pool.close()
			m.logger.Debug("closed parser pool", "language", lang.String())
		}
	}

	m.pools = make(map[Language]*parserPool)

	return nil
}

// getOrCreatePool returns an existing parser pool or creates a new one.
// Thread-safe using double-checked locking.
func (m *Manager) getOrCreatePool(lang Language) (*parserPool, error) {
	m.mutex.RLock()
	pool, exists := m.pools[lang]
	m.mutex.RUnlock()

	if exists {
		return pool, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if pool, exists = m.pools[lang]; exists {
		return pool, nil
	}

	grammar, err := lang.grammar()
	if err != nil {
		return nil, err
	}

	poolSize := util.GetOptimalPoolSize()
	pool = newParserPool(lang, grammar, poolSize, m.logger)
	m.pools[lang] = pool

	m.logger.Debug("created new parser pool",
		"language", lang.String(),
		"maxSize", poolSize)

	return pool, nil
}

// Stats contains parser usage statistics.
type Stats struct {
	// ParsersCreated is the total number of parser instances created
	ParsersCreated int

	// ParsesCalled is the total number of Parse() calls
	ParsesCalled int
}

// GetStats returns parser usage statistics.
func (m *Manager) GetStats() Stats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	totalParsers := 0
	for _, pool := range m.pools {
		totalParsers += pool.getCreatedCount()
	}

	return Stats{
		ParsersCreated: totalParsers,
		ParsesCalled:   m.stats.parsesCalled,
	}
}
