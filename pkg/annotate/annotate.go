// Package annotate decorates a parsed module with the metadata later compiler
// phases rely on.
//
// Annotate runs three passes over the tree, in order:
//
//  1. classify numbers every node in pre-order, attaches the shared source
//     text and the kind tag, tags declarations and sorts constants into
//     NameConstant, Num, Str and Bytes.
//  2. fold replaces -<number> by a single negated literal that starts at the
//     sign.
//  3. attachSpans copies exact source ranges from a token index built over
//     the folded tree.
//
// Numbering happens before folding, so the ids of folded-away operators are
// simply missing from the final tree.
package annotate

import (
	"log/slog"

	"github.com/leapstack-labs/vyast/pkg/ast"
	"github.com/leapstack-labs/vyast/pkg/asttokens"
)

// TokenIndex maps nodes to the token range that produced them.
type TokenIndex interface {
	Lookup(n ast.Node) (asttokens.Range, bool)
}

// Indexer builds a TokenIndex over a tree parsed from source.
type Indexer func(source string, root ast.Node) TokenIndex

// Option configures Annotate.
type Option func(*options)

type options struct {
	declKinds map[string]string
	sourceID  int
	logger    *slog.Logger
	indexer   Indexer
	stats     *Stats
}

// Stats counts what one Annotate call did.
type Stats struct {
	Numbered int // nodes that received an id
	Folded   int // negations folded into literals
	Spanned  int // nodes with a source range
	Missed   int // nodes the token index had no range for
}

// WithDeclKinds sets the table mapping declaration names to their kind
// ("contract", "struct", "interface", "event").
func WithDeclKinds(kinds map[string]string) Option {
	return func(o *options) { o.declKinds = kinds }
}

// WithSourceID sets the id embedded in every span, used to tell apart the
// files of one compilation unit.
func WithSourceID(id int) Option {
	return func(o *options) { o.sourceID = id }
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTokenIndexer replaces the default asttokens index.
func WithTokenIndexer(indexer Indexer) Option {
	return func(o *options) {
		if indexer != nil {
			o.indexer = indexer
		}
	}
}

// WithStats makes Annotate store its counters in s once it has finished,
// including when it fails.
func WithStats(s *Stats) Option {
	return func(o *options) { o.stats = s }
}

func defaultIndexer(source string, root ast.Node) TokenIndex {
	return asttokens.New(source, root)
}

// annotator holds the state of one Annotate call.
type annotator struct {
	source    *string
	sourceID  int
	declKinds map[string]string
	logger    *slog.Logger

	next    int // next node id
	folded  int
	spanned int
	missed  int
}

// Annotate decorates root in place. source must be the text root was parsed
// from. The only error is a *SyntaxError wrapping ErrUnsupportedLiteralKind,
// in which case the tree is left partially decorated and must not be used.
//
// Annotate is not meant to run twice on the same tree; ids are reassigned.
func Annotate(root ast.Node, source string, opts ...Option) error {
	o := options{
		logger:  slog.New(slog.DiscardHandler),
		indexer: defaultIndexer,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if root == nil {
		return nil
	}

	a := &annotator{
		source:    &source,
		sourceID:  o.sourceID,
		declKinds: o.declKinds,
		logger:    o.logger,
	}

	if o.stats != nil {
		defer func() {
			*o.stats = Stats{Numbered: a.next, Folded: a.folded, Spanned: a.spanned, Missed: a.missed}
		}()
	}

	if err := a.classify(root); err != nil {
		a.logger.Debug("classification failed", "source_id", a.sourceID, "error", err)
		return err
	}
	a.fold(root)
	a.attachSpans(root, o.indexer(source, root))

	a.logger.Debug("annotated tree",
		"source_id", a.sourceID,
		"numbered", a.next,
		"folded", a.folded,
		"spanned", a.spanned,
		"missed", a.missed,
	)
	return nil
}
