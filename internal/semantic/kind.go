// Package semantic injects semantic color entries (primary, secondary,
// destructive, accent, muted) into the colors object of a recognized UI
// component.
package semantic

import (
	"regexp"
	"strings"
)

// Kind is a component the injector knows semantic colors for
type Kind int

// Known component kinds
const (
	KindBadge Kind = iota + 1
	KindAlert
	KindButton
	KindSwitch
	KindRadio
	KindCheckbox
)

// Priority is the order DetectKind evaluates kinds in, most specific first.
// Badge precedes Button: a badge file also exports BadgeButton.
var Priority = []Kind{KindBadge, KindAlert, KindButton, KindSwitch, KindRadio, KindCheckbox}

type detector struct {
	name   string
	export *regexp.Regexp
	// varPrefix is the CSS custom property namespace the component uses.
	// Empty means the export name alone identifies the kind.
	varPrefix string
}

func exportPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`export\s+(?:default\s+)?(?:function|const)\s+` + name + `\b`)
}

var detectors = map[Kind]detector{
	KindBadge:    {name: "Badge", export: exportPattern("Badge")},
	KindAlert:    {name: "Alert", export: exportPattern("Alert")},
	KindButton:   {name: "Button", export: exportPattern("Button"), varPrefix: "--btn-"},
	KindSwitch:   {name: "Switch", export: exportPattern("Switch"), varPrefix: "--switch-"},
	KindRadio:    {name: "Radio", export: exportPattern("Radio"), varPrefix: "--radio-"},
	KindCheckbox: {name: "Checkbox", export: exportPattern("Checkbox"), varPrefix: "--checkbox-"},
}

func (k Kind) String() string {
	if d, ok := detectors[k]; ok {
		return d.name
	}
	return "Unknown"
}

// VarPrefix returns the CSS custom property namespace of k, if any
func (k Kind) VarPrefix() string {
	return detectors[k].varPrefix
}

// Detect reports whether content carries the fingerprint of k
func (k Kind) Detect(content string) bool {
	d, ok := detectors[k]
	if !ok || !d.export.MatchString(content) {
		return false
	}
	if d.varPrefix == "" {
		return true
	}
	return strings.Contains(content, d.varPrefix)
}

// DetectKind walks Priority and returns the first kind that matches
func DetectKind(content string) (Kind, bool) {
	for _, k := range Priority {
		if k.Detect(content) {
			return k, true
		}
	}
	return 0, false
}
