// Package transforms holds the concrete units of the theming migration and
// the default phase ordered registry.
package transforms

import (
	"github.com/yacobolo/uitheme/internal/pipeline"
	"github.com/yacobolo/uitheme/internal/prefix"
	"github.com/yacobolo/uitheme/internal/region"
	"github.com/yacobolo/uitheme/internal/semantic"
	"github.com/yacobolo/uitheme/internal/transform"
)

// Options configures the default registry
type Options struct {
	UtilsImport  string                   // Module exporting cn (default "@/lib/utils")
	Prefix       string                   // Component prefix (default "Catalyst")
	NocheckFiles []string                 // ts-nocheck allowlist (default DefaultNocheckFiles)
	Mappings     []transform.ColorMapping // Extra color-tokens mappings
	Header       string                   // File header comment (default DefaultHeader)
	ScanMode     region.ScanMode          // Protected region brace matching
	Exclude      []string                 // Unit names to leave out
}

// Default builds the registry used by the CLI. Unknown names in
// opts.Exclude are returned so callers can report them.
//
// Within the color phase the component scoped rules run before
// color-tokens, which would otherwise rewrite their palette classes first.
func Default(opts Options) (*pipeline.Registry, []string) {
	prefixName := opts.Prefix
	if prefixName == "" {
		prefixName = prefix.DefaultPrefix
	}
	nocheck := opts.NocheckFiles
	if nocheck == nil {
		nocheck = DefaultNocheckFiles
	}

	r := pipeline.NewRegistry().
		MustRegister(pipeline.PhaseImport,
			ClsxToCn(opts.UtilsImport),
		).
		MustRegister(pipeline.PhaseStructural,
			RemoveDuplicateProps(),
			TsNocheck(nocheck),
		).
		MustRegister(pipeline.PhaseColor,
			semantic.Unit(),
			DropdownColors(opts.ScanMode),
			ListboxColors(opts.ScanMode),
			NavbarColors(opts.ScanMode),
			ColorTokens(opts.Mappings, opts.ScanMode),
		).
		MustRegister(pipeline.PhaseEdgeCase,
			TextColorEdgeCases(opts.ScanMode),
		).
		MustRegister(pipeline.PhaseAST,
			prefix.Types(prefixName),
			prefix.Components(prefixName),
		).
		MustRegister(pipeline.PhaseFormat,
			FileHeader(opts.Header),
		)

	if len(opts.Exclude) == 0 {
		return r, nil
	}
	return r.Without(opts.Exclude...)
}

// Names lists the units of the default registry in execution order
func Names() []string {
	r, _ := Default(Options{})
	var names []string
	for _, s := range r.Stages() {
		names = append(names, s.Unit.Metadata().Name)
	}
	return names
}
