package normalize

import "strings"

var headerReplacer = strings.NewReplacer(
	"[", "_",
	"]", "",
	" ", "_",
	"#", "number",
	"-", "_",
	"/", "_",
	".", "_",
)

// SnakeCase normalizes a column header, e.g. "Free Stock [WH-1]" -> "free_stock_wh_1".
func SnakeCase(header string) string {
	s := headerReplacer.Replace(strings.ToLower(strings.TrimSpace(header)))
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}
