package transforms

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yacobolo/uitheme/internal/transform"
)

// DefaultUtilsImport is where the cn helper lives in a themed project
const DefaultUtilsImport = "@/lib/utils"

var (
	clsxImport = regexp.MustCompile(`(?m)^import\s+(?:clsx|\{\s*clsx\s*\})\s+from\s+['"]clsx['"](;?)[ \t]*\r?\n?`)
	clsxCall   = regexp.MustCompile(`(^|[^\w$.])clsx\(`)
)

// ClsxToCn replaces the clsx import with the project's cn helper and renames
// every clsx( call to cn(.
func ClsxToCn(utilsImport string) transform.Unit {
	if utilsImport == "" {
		utilsImport = DefaultUtilsImport
	}
	cnImport := regexp.MustCompile(`import\s*\{[^}]*\bcn\b[^}]*\}\s*from\s*['"]` + regexp.QuoteMeta(utilsImport) + `['"]`)

	return transform.Func{
		Meta: transform.Metadata{
			Name:        "clsx-to-cn",
			Description: fmt.Sprintf("Replace clsx with cn from %s", utilsImport),
			Category:    transform.CategoryImport,
		},
		Fn: func(content, _ string) (transform.Result, error) {
			loc := clsxImport.FindStringSubmatchIndex(content)
			if loc == nil {
				return transform.Unchanged(content, "No clsx import found"), nil
			}

			oldImport := content[loc[0]:loc[1]]
			semi := content[loc[2]:loc[3]]
			newImport := fmt.Sprintf("import { cn } from '%s'%s\n", utilsImport, semi)
			if !strings.HasSuffix(oldImport, "\n") {
				newImport = strings.TrimSuffix(newImport, "\n")
			}
			if cnImport.MatchString(content) {
				newImport = ""
			}

			changes := []transform.ChangeSpan{{
				From:    strings.TrimSpace(oldImport),
				To:      strings.TrimSpace(newImport),
				Type:    "import",
				Context: "clsx import",
			}}

			rest := clsxCall.ReplaceAllStringFunc(content[loc[1]:], func(m string) string {
				changes = append(changes, transform.ChangeSpan{From: "clsx(", To: "cn(", Type: "call", Context: "clsx call"})
				return strings.TrimSuffix(m, "clsx(") + "cn("
			})
			head := clsxCall.ReplaceAllStringFunc(content[:loc[0]], func(m string) string {
				changes = append(changes, transform.ChangeSpan{From: "clsx(", To: "cn(", Type: "call", Context: "clsx call"})
				return strings.TrimSuffix(m, "clsx(") + "cn("
			})

			return transform.Result{
				Content: head + newImport + rest,
				Changed: true,
				Changes: changes,
			}, nil
		},
	}
}
