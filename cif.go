// Package cifkit parses Crystallographic Information Files (CIF) into a
// tag-indexed document model and projects that model onto typed
// crystallographic structures (Phase, Cell, Atom) and symmetry operations.
package cifkit

import "sort"

// DataBlock is one `data_<name>` block of a CIF document: an unordered
// set of tags, each holding one or more values. A scalar assignment
// (`_tag value`) is stored as a single-element slice; a `loop_` column
// is stored as the full column of committed rows, in file order.
type DataBlock struct {
	name string
	tags map[string][]string
}

func newDataBlock(name string) *DataBlock {
	return &DataBlock{name: name, tags: make(map[string][]string)}
}

// Name returns the block's name, without the `data_` prefix.
func (b *DataBlock) Name() string { return b.name }

// Tags returns every tag present in the block, sorted, so that callers
// iterating the block never observe Go's randomized map order.
func (b *DataBlock) Tags() []string {
	out := make([]string, 0, len(b.tags))
	for tag := range b.tags {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Values returns the full committed column for tag, in file order.
func (b *DataBlock) Values(tag string) ([]string, bool) {
	v, ok := b.tags[tag]
	return v, ok
}

// First returns the first committed value for tag. For a scalar
// assignment this is the only value; for a loop column it is the first
// row's entry.
func (b *DataBlock) First(tag string) (string, bool) {
	v, ok := b.tags[tag]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

func (b *DataBlock) append(tag, value string) {
	b.tags[tag] = append(b.tags[tag], value)
}

// Cif is a parsed CIF document: a set of named data blocks, keyed by
// block name exactly as written after `data_`.
type Cif struct {
	blocks map[string]*DataBlock
}

func newCif() *Cif {
	return &Cif{blocks: make(map[string]*DataBlock)}
}

// BlockNames returns every block name in the document, sorted.
func (c *Cif) BlockNames() []string {
	out := make([]string, 0, len(c.blocks))
	for name := range c.blocks {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Block looks up a data block by name.
func (c *Cif) Block(name string) (*DataBlock, bool) {
	b, ok := c.blocks[name]
	return b, ok
}

// startBlock begins a fresh data block named name, replacing any prior
// block of the same name. Repeated `data_<same>` headers are last-wins:
// the earlier block's accumulated tags do not survive.
func (c *Cif) startBlock(name string) *DataBlock {
	b := newDataBlock(name)
	c.blocks[name] = b
	return b
}
