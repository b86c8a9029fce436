package cifkit

// config holds the settings Parse and PhaseFrom accumulate from an
// Option list, standing in for the config struct a process with a
// `main` would build from flags (the teacher's types.ServerConfig).
type config struct {
	debugTrace bool
	strictAniso bool
	lookup     SpaceGroupLookup
}

func newConfig(opts []Option) *config {
	c := &config{lookup: defaultSpaceGroupLookup}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures a single Parse or PhaseFrom call.
type Option func(*config)

// WithDebugTrace turns on the same log.Printf tracing SetDebug enables,
// for a single Parse call only, regardless of the package-level SetDebug
// setting.
func WithDebugTrace() Option {
	return func(c *config) { c.debugTrace = true }
}

// WithSpaceGroupLookup overrides the default built-in space-group
// symbol/number table used when projecting a Phase's Cell. Supply this
// to back space-group resolution with the full International Tables
// dictionary instead of this module's small embedded subset.
func WithSpaceGroupLookup(lookup SpaceGroupLookup) Option {
	return func(c *config) { c.lookup = lookup }
}

// WithStrictAniso makes PhaseFrom return a MissingKey error when an
// atom's _atom_site_adp_type is Uani but the block has no
// _atom_site_aniso row for its label, instead of leaving its U_ij
// components at zero. An aniso loop that lacks one of the six U_ij tags
// is an AlignmentMismatch error with or without this option.
func WithStrictAniso() Option {
	return func(c *config) { c.strictAniso = true }
}
