package resolve

import (
	"github.com/screenline/sdnscreen/pkg/reference"
)

// Engine bundles the resolution components built from one reference set: the
// name index, the matcher over it, a batch resolver wired to the address
// table, and a profile assembler. The index is built once at construction
// and is read-only for the lifetime of the engine.
type Engine struct {
	set      *reference.Set
	index    *NameIndex
	matcher  *Matcher
	batch    *BatchResolver
	profiles *ProfileAssembler
}

// NewEngine builds an engine from already-loaded reference tables. The
// options are applied to the embedded batch resolver; the address table is
// always wired for location lookups.
func NewEngine(set *reference.Set, opts ...BatchOption) *Engine {
	index := BuildNameIndex(set.Entities, set.Aliases)
	matcher := NewMatcher(index)
	opts = append([]BatchOption{WithAddresses(set.Addresses)}, opts...)
	return &Engine{
		set:      set,
		index:    index,
		matcher:  matcher,
		batch:    NewBatchResolver(matcher, opts...),
		profiles: NewProfileAssembler(set),
	}
}

// Set returns the reference tables the engine was built from.
func (e *Engine) Set() *reference.Set { return e.set }

// Index returns the name index.
func (e *Engine) Index() *NameIndex { return e.index }

// Matcher returns the exact/fuzzy matcher.
func (e *Engine) Matcher() *Matcher { return e.matcher }

// Batch returns the batch resolver.
func (e *Engine) Batch() *BatchResolver { return e.batch }

// Profiles returns the profile assembler.
func (e *Engine) Profiles() *ProfileAssembler { return e.profiles }
