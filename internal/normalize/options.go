// Package normalize implements the core rewrite: the mutually-recursive
// expression/statement normalizers, fresh-name discipline, control-flow
// desugaring, and the per-entity finalization pass.
package normalize

// Options controls the normalizer's optional behaviors. Mirrors the
// teacher's functional-option Engine config: a plain struct resolved once
// up front, with functional-option sugar layered on top by the public
// wrapper package.
type Options struct {
	BackwardsCompatible bool
	ReferenceErrors     bool
	UnifyRet            bool
	UnfoldIfs           bool
}

// Resolve canonicalizes opts, applying the backwards_compatible overrides:
// forces ReferenceErrors=false, UnifyRet=false, UnfoldIfs=true.
func Resolve(opts Options) Options {
	if opts.BackwardsCompatible {
		opts.ReferenceErrors = false
		opts.UnifyRet = false
		opts.UnfoldIfs = true
	}
	return opts
}
