package transforms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/yacobolo/uitheme/internal/region"
	"github.com/yacobolo/uitheme/internal/transform"
)

func apply(t *testing.T, u transform.Unit, content, filename string) transform.Result {
	t.Helper()
	res, err := transform.Apply(u, content, filename)
	require.NoError(t, err)
	return res
}

func TestClsxToCn(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		changed bool
	}{
		{
			name:    "default import",
			input:   "import clsx from 'clsx'\nimport React from 'react'\n\nconst c = clsx('a', b)\n",
			want:    "import { cn } from '@/lib/utils'\nimport React from 'react'\n\nconst c = cn('a', b)\n",
			changed: true,
		},
		{
			name:    "named import with semicolon",
			input:   "import { clsx } from \"clsx\";\nexport const x = clsx(y);\n",
			want:    "import { cn } from '@/lib/utils';\nexport const x = cn(y);\n",
			changed: true,
		},
		{
			name:    "cn already imported",
			input:   "import { cn } from '@/lib/utils'\nimport clsx from 'clsx'\nconst c = clsx(a)\n",
			want:    "import { cn } from '@/lib/utils'\nconst c = cn(a)\n",
			changed: true,
		},
		{
			name:    "member call untouched",
			input:   "import clsx from 'clsx'\nconst c = lib.clsx(a) + myclsx(b)\n",
			want:    "import { cn } from '@/lib/utils'\nconst c = lib.clsx(a) + myclsx(b)\n",
			changed: true,
		},
		{
			name:  "no clsx import",
			input: "const c = clsx(a)\n",
			want:  "const c = clsx(a)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := apply(t, ClsxToCn(""), tt.input, "")
			assert.Equal(t, tt.changed, res.Changed)
			assert.Equal(t, tt.want, res.Content)
		})
	}
}

func TestClsxToCnCustomPath(t *testing.T) {
	res := apply(t, ClsxToCn("~/utils/cn"), "import clsx from 'clsx'\n", "")
	assert.Equal(t, "import { cn } from '~/utils/cn'\n", res.Content)
}

func TestRemoveDuplicateProps(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "string attribute",
			input: `<span className="a" id="x" className="b" />`,
			want:  `<span id="x" className="b" />`,
		},
		{
			name:  "expression attribute",
			input: "<Button\n  onClick={() => { go() }}\n  type=\"button\"\n  onClick={handle}\n>\n  Save\n</Button>",
			want:  "<Button\n  type=\"button\"\n  onClick={handle}\n>\n  Save\n</Button>",
		},
		{
			name:  "boolean attribute",
			input: `<input disabled value={v} disabled />`,
			want:  `<input value={v} disabled />`,
		},
		{
			name:  "spreads are kept",
			input: `<div {...a} {...b} />`,
			want:  `<div {...a} {...b} />`,
		},
		{
			name:  "type arguments ignored",
			input: "const x = useState<string>('')\nif (a < b && c) {}\n",
			want:  "const x = useState<string>('')\nif (a < b && c) {}\n",
		},
		{
			name:  "nested tags",
			input: `<Field label={<Label id="a" id="b" />} hint="x" />`,
			want:  `<Field label={<Label id="b" />} hint="x" />`,
		},
		{
			name:  "nested inside a removed value",
			input: `<Field label={<Label id="a" id="b" />} label="x" />`,
			want:  `<Field label="x" />`,
		},
		{
			name:  "namespaced attribute",
			input: `<svg xlink:href="#a" xlink:href="#b" />`,
			want:  `<svg xlink:href="#b" />`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := apply(t, RemoveDuplicateProps(), tt.input, "")
			assert.Equal(t, tt.want, res.Content)
			assert.Equal(t, tt.input != tt.want, res.Changed)
		})
	}
}

func TestRemoveDuplicatePropsKeepsUnbalancedValues(t *testing.T) {
	input := `<div className="[--x:1" className="b" />`
	res := apply(t, RemoveDuplicateProps(), input, "")
	assert.False(t, res.Changed)
	assert.Equal(t, input, res.Content)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "className")
}

func TestRemoveDuplicatePropsUnparsable(t *testing.T) {
	input := "<div className=\"a\" className=\"b\">\n"
	res := apply(t, RemoveDuplicateProps(), input, "")
	assert.False(t, res.Changed)
	assert.Equal(t, input, res.Content)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "syntax error")
}

func TestRemoveDuplicatePropsTypeScriptFile(t *testing.T) {
	input := "export const asText = (v: unknown) => <string>v\n"
	res := apply(t, RemoveDuplicateProps(), input, "lib/text.ts")
	assert.False(t, res.Changed)
	assert.Empty(t, res.Warnings)
}

func TestTsNocheck(t *testing.T) {
	unit := TsNocheck([]string{"listbox.tsx", "src/legacy/table.tsx"})

	tests := []struct {
		name     string
		filename string
		input    string
		changed  bool
	}{
		{name: "base name", filename: "components/listbox.tsx", input: "x", changed: true},
		{name: "path suffix", filename: "app/src/legacy/table.tsx", input: "x", changed: true},
		{name: "partial name", filename: "components/mylistbox.tsx", input: "x"},
		{name: "not listed", filename: "button.tsx", input: "x"},
		{name: "already present", filename: "listbox.tsx", input: "// @ts-nocheck\nx"},
		{name: "no filename", filename: "", input: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := apply(t, unit, tt.input, tt.filename)
			assert.Equal(t, tt.changed, res.Changed)
			if tt.changed {
				assert.Equal(t, "// @ts-nocheck\n"+tt.input, res.Content)
			}
		})
	}
}

func TestFileHeader(t *testing.T) {
	unit := FileHeader("")

	res := apply(t, unit, "'use client'\n\nexport function A() {}\n", "")
	assert.Equal(t, "'use client'\n"+DefaultHeader+"\n\nexport function A() {}\n", res.Content)

	res = apply(t, unit, "// @ts-nocheck\n\"use client\";\nx\n", "")
	assert.Equal(t, "// @ts-nocheck\n\"use client\";\n"+DefaultHeader+"\nx\n", res.Content)

	res = apply(t, unit, "x\n", "")
	assert.Equal(t, DefaultHeader+"\nx\n", res.Content)

	again := apply(t, unit, res.Content, "")
	assert.False(t, again.Changed)
}

func TestColorTokens(t *testing.T) {
	input := `const colors = {
  zinc: 'bg-zinc-950/5 text-zinc-900',
}

export function Card() {
  return <div className="bg-zinc-950/5 bg-zinc-950 text-zinc-900 hover:bg-white dark:bg-zinc-900" />
}
`
	res := apply(t, ColorTokens(nil, region.ScanNaive), input, "card.tsx")
	require.True(t, res.Changed)
	assert.Contains(t, res.Content, "zinc: 'bg-zinc-950/5 text-zinc-900',")
	assert.Contains(t, res.Content, `className="bg-muted bg-primary text-foreground hover:bg-background dark:bg-primary"`)
	for _, c := range res.Changes {
		assert.Equal(t, "color-token", c.Type)
	}
}

func TestColorTokensExtraMappings(t *testing.T) {
	extra, err := transform.CompileMappings([]transform.MappingSpec{
		{Pattern: `(^|\s)bg-indigo-600\b`, Replacement: "${1}bg-primary", Protected: true},
	})
	require.NoError(t, err)

	res := apply(t, ColorTokens(extra, region.ScanNaive), `<a className="p-2 bg-indigo-600" />`, "")
	assert.Equal(t, `<a className="p-2 bg-primary" />`, res.Content)
}

func TestComponentScopedColors(t *testing.T) {
	dropdown := "export function DropdownItem() {\n  return <a className=\"data-focus:bg-blue-500 data-focus:text-white\" />\n}\n"
	listbox := "export function ListboxOption() {\n  return <a className=\"data-focus:bg-blue-500\" />\n}\n"

	res := apply(t, DropdownColors(region.ScanNaive), dropdown, "")
	assert.Contains(t, res.Content, "data-focus:bg-accent data-focus:text-accent-foreground")

	res = apply(t, DropdownColors(region.ScanNaive), listbox, "")
	assert.False(t, res.Changed, "dropdown rules only apply to dropdown files")

	res = apply(t, ListboxColors(region.ScanNaive), listbox, "")
	assert.Contains(t, res.Content, "data-focus:bg-accent")

	navbar := "export function NavbarItem() {\n  return <span className=\"bg-zinc-950 data-hover:bg-zinc-950/5\" />\n}\n"
	res = apply(t, NavbarColors(region.ScanNaive), navbar, "")
	assert.Contains(t, res.Content, `"bg-foreground data-hover:bg-accent"`)
}

func TestTextColorEdgeCases(t *testing.T) {
	input := `const colors = {
  'dark/zinc': [
    'text-foreground dark:text-white [--btn-icon:var(--color-zinc-500)]',
  ],
}

export function Button() {
  return <b className="text-foreground dark:text-white bg-primary text-white [--x:var(--color-zinc-400)]" />
}
`
	res := apply(t, TextColorEdgeCases(region.ScanNaive), input, "")
	require.True(t, res.Changed)

	assert.Contains(t, res.Content, "'text-foreground [--btn-icon:var(--color-zinc-500)]',",
		"class strings in colors objects are cleaned, CSS variables are protected")
	assert.Contains(t, res.Content, `className="text-foreground bg-primary text-primary-foreground [--x:var(--color-muted-foreground)]"`)
}

func TestDefaultRegistry(t *testing.T) {
	assert.Equal(t, []string{
		"clsx-to-cn",
		"remove-duplicate-props",
		"ts-nocheck",
		"semantic-colors",
		"dropdown-colors",
		"listbox-colors",
		"navbar-colors",
		"color-tokens",
		"text-color-edge-cases",
		"catalyst-prefix-types",
		"catalyst-prefix-components",
		"file-header",
	}, Names())

	r, unknown := Default(Options{Exclude: []string{"file-header", "nope"}})
	assert.Equal(t, []string{"nope"}, unknown)
	assert.Equal(t, len(Names())-1, r.Len())
}

func TestDefaultPipelineOnBadge(t *testing.T) {
	input := `import clsx from 'clsx'

const colors = {
  zinc: 'bg-zinc-600/10 text-zinc-700',
}

type BadgeProps = { color?: keyof typeof colors }

export function Badge({ color = 'zinc', className }: BadgeProps & { className?: string }) {
  return <span className={clsx(className, 'text-zinc-900', colors[color])} />
}
`
	r, _ := Default(Options{})
	res, err := r.Process(input, "badge.tsx")
	require.NoError(t, err)

	out := res.Content
	assert.True(t, strings.HasPrefix(out, DefaultHeader+"\nimport { cn } from '@/lib/utils'\n"))
	assert.Contains(t, out, "zinc: 'bg-zinc-600/10 text-zinc-700',\n  primary: ")
	assert.Contains(t, out, "export type CatalystBadgeProps")
	assert.Contains(t, out, "export function CatalystBadge(")
	assert.Contains(t, out, "cn(className, 'text-foreground', colors[color])")

	var applied []string
	for _, a := range res.Applied {
		applied = append(applied, a.Meta.Name)
	}
	assert.Equal(t, []string{"clsx-to-cn", "semantic-colors", "color-tokens", "catalyst-prefix-types", "catalyst-prefix-components", "file-header"}, applied)
}

// Every unit keeps brace, paren and bracket deltas of arbitrary class soup.
func TestUnitsPreserveBalance(t *testing.T) {
	r, _ := Default(Options{Exclude: []string{"catalyst-prefix-types", "catalyst-prefix-components"}})
	classes := []string{
		"text-zinc-900", "bg-zinc-950/5", "bg-white", "dark:text-white", "text-foreground",
		"bg-primary", "text-white", "data-focus:bg-blue-500", "[--btn-bg:var(--color-zinc-900)]",
		"[--x:var(--color-zinc-500)]", "{", "}", "(", ")", "[", "]",
	}

	rapid.Check(t, func(t *rapid.T) {
		var b strings.Builder
		parts := rapid.SliceOfN(rapid.SampledFrom(classes), 0, 30).Draw(t, "classes")
		open := rapid.SampledFrom([]string{"const colors = {\n  zinc: '", "export function Badge() {\n  return '", "<div className=\""}).Draw(t, "wrapper")
		b.WriteString(open)
		b.WriteString(strings.Join(parts, " "))
		b.WriteString("'\n}\n")
		input := b.String()

		for _, s := range r.Stages() {
			res, err := transform.Apply(s.Unit, input, "badge.tsx")
			if err != nil {
				continue
			}
			if transform.MeasureBalance(res.Content) != transform.MeasureBalance(input) {
				t.Fatalf("%s changed balance:\n%s\n=>\n%s", s.Unit.Metadata().Name, input, res.Content)
			}
		}
	})
}
