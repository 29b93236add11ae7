// Package engine wires the parser, variable classifier, PDG builder, and
// invariant extractor into the single pipeline spec'd by the library's
// core: parse, classify, build, extract, with no I/O of its own.
package engine

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/iec-st/pdganalyzer/internal/ast"
	"github.com/iec-st/pdganalyzer/internal/invariant"
	"github.com/iec-st/pdganalyzer/internal/parser"
	"github.com/iec-st/pdganalyzer/internal/pdg"
	"github.com/iec-st/pdganalyzer/internal/variable"
)

// Result is the complete output of one Analyze call.
type Result struct {
	Root      ast.Node
	Variables variable.Table
	StateVar  string
	PDGs      map[string]*pdg.PDG
	Templates []invariant.Template
}

// Option configures Analyze.
type Option func(*config)

type config struct {
	log        zerolog.Logger
	comment    parser.CommentSkipper
	concurrent bool
}

// WithLogger attaches a logger; the pipeline emits one Debug event per
// stage plus an Info event with final counts. Defaults to zerolog.Nop().
func WithLogger(log zerolog.Logger) Option {
	return func(c *config) { c.log = log }
}

// WithCommentPattern is forwarded to the parser unchanged.
func WithCommentPattern(skipper parser.CommentSkipper) Option {
	return func(c *config) { c.comment = skipper }
}

// WithConcurrentExtraction runs Pass A/B/C independently across PDGs using
// one goroutine per state, per §5's "implementations may parallelize...
// extraction across PDGs" allowance. Output ordering is unaffected: the
// per-state template slices are always recombined by sorted state id.
func WithConcurrentExtraction() Option {
	return func(c *config) { c.concurrent = true }
}

// Analyze runs the full pipeline over source and returns every artifact a
// caller's serializer needs. filename labels any returned *parser.SyntaxError.
func Analyze(source, filename string, opts ...Option) (*Result, error) {
	cfg := config{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	start := time.Now()

	root, err := parser.Parse(source, filename, parser.WithCommentPattern(cfg.comment), parser.WithLogger(cfg.log))
	if err != nil {
		cfg.log.Error().Err(err).Str("file", filename).Msg("parse failed")
		return nil, err
	}
	cfg.log.Debug().Dur("elapsed", time.Since(start)).Msg("parsed source")

	vars := variable.BuildTable(root)
	cfg.log.Debug().Int("variables", len(vars)).Msg("built variable table")

	pdgs, stateVar, err := pdg.BuildAll(root)
	if err != nil {
		cfg.log.Error().Err(err).Msg("PDG construction failed")
		return nil, err
	}
	cfg.log.Debug().Int("states", len(pdgs)).Str("state_variable", stateVar).Msg("built PDGs")

	var templates []invariant.Template
	if cfg.concurrent {
		templates = extractConcurrently(pdgs, vars)
	} else {
		templates = invariant.ExtractAll(pdgs, vars)
	}
	cfg.log.Info().
		Int("states", len(pdgs)).
		Int("templates", len(templates)).
		Dur("elapsed", time.Since(start)).
		Msg("analysis complete")

	return &Result{
		Root:      root,
		Variables: vars,
		StateVar:  stateVar,
		PDGs:      pdgs,
		Templates: templates,
	}, nil
}

// extractConcurrently runs invariant.ExtractAll against one single-entry
// PDG map per state, each on its own goroutine, then recombines the
// results in the same sorted-by-state-id order ExtractAll itself produces
// for the sequential path.
func extractConcurrently(pdgs map[string]*pdg.PDG, vars variable.Table) []invariant.Template {
	stateIDs := make([]string, 0, len(pdgs))
	for id := range pdgs {
		stateIDs = append(stateIDs, id)
	}
	sort.Strings(stateIDs)

	perState := make([][]invariant.Template, len(stateIDs))
	var wg sync.WaitGroup
	for i, id := range stateIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			perState[i] = invariant.ExtractAll(map[string]*pdg.PDG{id: pdgs[id]}, vars)
		}(i, id)
	}
	wg.Wait()

	var out []invariant.Template
	for _, ts := range perState {
		out = append(out, ts...)
	}

	// Each goroutine ran its own extractor with a fresh id counter, so ids
	// collide across states; renumber in the same "<kind>-<n>" scheme
	// ExtractAll uses, in the same state-sorted, pass-ordered sequence.
	counter := 0
	for i := range out {
		counter++
		out[i].ID = fmt.Sprintf("%s-%d", out[i].Kind, counter)
	}
	return out
}
