package syntax

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseByExtension(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		src      string
		wantErr  bool
	}{
		{name: "ts cast", filename: "lib/classes.ts", src: "export function asString(v: unknown) { return <string>v }\n"},
		{name: "mts cast", filename: "lib/classes.mts", src: "const s = <string>v\n"},
		{name: "tsx element", filename: "button.tsx", src: "export const B = () => <div className=\"a\" />\n"},
		{name: "jsx element", filename: "button.jsx", src: "export const B = () => <div />\n"},
		{name: "no filename is tsx", filename: "", src: "const b = <div />\n"},
		{name: "jsx in ts is an error", filename: "button.ts", src: "const b = <div></div>\n", wantErr: true},
		{name: "broken source", filename: "button.tsx", src: "export function B( {\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(context.Background(), []byte(tt.src), tt.filename)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "syntax error")
				return
			}
			require.NoError(t, err)
			defer tree.Close()
			assert.Equal(t, "program", tree.RootNode().Type())
		})
	}
}

func TestText(t *testing.T) {
	src := []byte("const answer = 42\n")
	tree, err := Parse(context.Background(), src, "a.ts")
	require.NoError(t, err)
	defer tree.Close()

	decl := tree.RootNode().NamedChild(0)
	assert.Equal(t, "const answer = 42", Text(decl, src))
}
