package transforms

import (
	"regexp"

	"github.com/yacobolo/uitheme/internal/region"
	"github.com/yacobolo/uitheme/internal/transform"
)

type classRule struct {
	from, to, desc string
}

func classMappings(rules []classRule) []transform.ColorMapping {
	out := make([]transform.ColorMapping, 0, len(rules))
	for _, r := range rules {
		desc := r.desc
		if desc == "" {
			desc = r.from + " -> " + r.to
		}
		out = append(out, transform.ClassMapping(r.from, r.to, desc))
	}
	return out
}

// Palette classes rewritten to semantic tokens. Opacity variants come
// before their base class so the generic rule cannot swallow them.
var paletteRules = []classRule{
	{from: "text-zinc-950", to: "text-foreground"},
	{from: "text-zinc-900", to: "text-foreground"},
	{from: "text-zinc-700", to: "text-foreground"},
	{from: "text-zinc-500", to: "text-muted-foreground"},
	{from: "text-zinc-400", to: "text-muted-foreground"},
	{from: "bg-zinc-950/5", to: "bg-muted"},
	{from: "bg-zinc-950/2.5", to: "bg-muted"},
	{from: "bg-zinc-950", to: "bg-primary"},
	{from: "bg-zinc-900", to: "bg-primary"},
	{from: "bg-zinc-100", to: "bg-muted"},
	{from: "bg-zinc-50", to: "bg-muted"},
	{from: "bg-white", to: "bg-background"},
	{from: "border-zinc-950/10", to: "border-border"},
	{from: "border-zinc-950/5", to: "border-border"},
	{from: "border-zinc-200", to: "border-border"},
	{from: "ring-zinc-950/10", to: "ring-border"},
	{from: "ring-zinc-950/5", to: "ring-border"},
	{from: "divide-zinc-950/5", to: "divide-border"},
	{from: "fill-zinc-500", to: "fill-muted-foreground"},
	{from: "stroke-zinc-500", to: "stroke-muted-foreground"},
	{from: "outline-blue-500", to: "outline-ring"},
}

// ColorTokens rewrites palette classes outside colors and styles objects.
// extra mappings run after the built-in ones.
func ColorTokens(extra []transform.ColorMapping, mode region.ScanMode) transform.Unit {
	mappings := classMappings(paletteRules)
	mappings = append(mappings, extra...)
	return transform.NewProtectedRegex(transform.RegexOptions{
		Name:        "color-tokens",
		Description: "Rewrite zinc and white palette classes to semantic tokens",
		Mappings:    mappings,
		ChangeType:  "color-token",
		ScanMode:    mode,
	})
}

func exportsComponent(prefix string) func(string) bool {
	re := regexp.MustCompile(`export\s+(?:default\s+)?(?:function|const)\s+` + prefix + `\w*\b`)
	return re.MatchString
}

// DropdownColors applies only to files exporting Dropdown components
func DropdownColors(mode region.ScanMode) transform.Unit {
	return transform.NewProtectedRegex(transform.RegexOptions{
		Name:        "dropdown-colors",
		Description: "Dropdown focus and separator colors",
		Mappings: classMappings([]classRule{
			{from: "data-focus:bg-blue-500", to: "data-focus:bg-accent"},
			{from: "data-focus:text-white", to: "data-focus:text-accent-foreground"},
			{from: "bg-zinc-950/5", to: "bg-border", desc: "dropdown divider"},
		}),
		ChangeType:    "color-token",
		ContentFilter: exportsComponent("Dropdown"),
		ScanMode:      mode,
	})
}

// ListboxColors applies only to files exporting Listbox components
func ListboxColors(mode region.ScanMode) transform.Unit {
	return transform.NewProtectedRegex(transform.RegexOptions{
		Name:        "listbox-colors",
		Description: "Listbox focus and selection colors",
		Mappings: classMappings([]classRule{
			{from: "data-focus:bg-blue-500", to: "data-focus:bg-accent"},
			{from: "data-focus:text-white", to: "data-focus:text-accent-foreground"},
			{from: "group-data-selected:text-zinc-950", to: "group-data-selected:text-foreground"},
		}),
		ChangeType:    "color-token",
		ContentFilter: exportsComponent("Listbox"),
		ScanMode:      mode,
	})
}

// NavbarColors applies only to files exporting Navbar components
func NavbarColors(mode region.ScanMode) transform.Unit {
	return transform.NewProtectedRegex(transform.RegexOptions{
		Name:        "navbar-colors",
		Description: "Navbar current item indicator colors",
		Mappings: classMappings([]classRule{
			{from: "bg-zinc-950", to: "bg-foreground", desc: "current item indicator"},
			{from: "data-hover:bg-zinc-950/5", to: "data-hover:bg-accent"},
		}),
		ChangeType:    "color-token",
		ContentFilter: exportsComponent("Navbar"),
		ScanMode:      mode,
	})
}

// TextColorEdgeCases fixes leftovers of the color phase. Only palette colors
// assigned to CSS variables inside colors objects are protected, so class
// strings in colors objects are rewritten too.
func TextColorEdgeCases(mode region.ScanMode) transform.Unit {
	return transform.NewProtectedRegex(transform.RegexOptions{
		Name:        "text-color-edge-cases",
		Description: "Clean up text colors made redundant by semantic tokens",
		Category:    transform.CategoryQuality,
		Mappings: []transform.ColorMapping{
			transform.MakeProtected(transform.ColorMapping{
				Pattern:     regexp.MustCompile(`(^|[\s"'` + "`" + `])text-foreground(\s+)dark:text-white\b`),
				Replacement: "${1}text-foreground",
				Description: "dark:text-white is redundant next to text-foreground",
			}),
			transform.MakeProtected(transform.ColorMapping{
				Pattern:     regexp.MustCompile(`(^|[\s"'` + "`" + `])bg-primary(\s+)text-white\b`),
				Replacement: "${1}bg-primary${2}text-primary-foreground",
				Description: "text on primary uses the primary foreground",
			}),
			transform.ClassMapping("data-focus:bg-blue-500", "data-focus:bg-primary", "remaining blue focus states"),
			transform.MakeProtected(transform.ColorMapping{
				Pattern:     regexp.MustCompile(`var\(--color-zinc-(?:500|400)\)`),
				Replacement: "var(--color-muted-foreground)",
				Description: "muted palette variables",
			}),
		},
		ChangeType: "edge-case",
		Guard:      transform.GuardCSSVariable,
		ScanMode:   mode,
	})
}

// PaletteSuggestions maps each palette class handled by color-tokens to its
// semantic token
func PaletteSuggestions() map[string]string {
	out := make(map[string]string, len(paletteRules))
	for _, r := range paletteRules {
		out[r.from] = r.to
	}
	return out
}
