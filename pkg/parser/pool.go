package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// parserPool recycles tree-sitter parsers for one grammar through a
// buffered channel. Parsers are built lazily until maxSize is reached;
// after that acquire blocks until a worker returns one.
type parserPool struct {
	idle    chan *ts.Parser
	grammar *ts.Language
	lang    Language
	logger  *slog.Logger

	mu      sync.Mutex
	built   int
	maxSize int
}

func newParserPool(lang Language, grammar unsafe.Pointer, maxSize int, logger *slog.Logger) *parserPool {
	return &parserPool{
		idle:    make(chan *ts.Parser, maxSize),
		grammar: ts.NewLanguage(grammar),
		lang:    lang,
		maxSize: maxSize,
		logger:  logger,
	}
}

func (p *parserPool) acquire() (*ts.Parser, error) {
	select {
	case parser := <-p.idle:
		return parser, nil
	default:
	}

	p.mu.Lock()
	if p.built >= p.maxSize {
		p.mu.Unlock()
		return <-p.idle, nil
	}
	p.built++
	built := p.built
	p.mu.Unlock()

	parser := ts.NewParser()
	if parser == nil {
		p.undoBuild()
		return nil, fmt.Errorf("tree-sitter parser allocation failed")
	}
	if err := parser.SetLanguage(p.grammar); err != nil {
		parser.Close()
		p.undoBuild()
		return nil, fmt.Errorf("grammar rejected for %s: %w", p.lang, err)
	}

	p.logger.Debug("parser built", "language", p.lang.String(), "count", built)
	return parser, nil
}

func (p *parserPool) undoBuild() {
	p.mu.Lock()
	p.built--
	p.mu.Unlock()
}

func (p *parserPool) release(parser *ts.Parser) {
	if parser == nil {
		return
	}
	select {
	case p.idle <- parser:
	default:
		parser.Close()
	}
}

// close frees every idle parser. Parsers still checked out leak; the
// Manager only closes pools after all lint workers have finished.
func (p *parserPool) close() {
	close(p.idle)
	for parser := range p.idle {
		parser.Close()
	}
}

func (p *parserPool) getCreatedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.built
}
