package viewer

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlight renders Solidity code as terminal-colored lines, one per source
// line. Unknown styles fall back to chroma's default; on lexer failure the
// plain lines are returned.
func Highlight(code, styleName string) []string {
	plain := strings.Split(code, "\n")

	lexer := lexers.Get("solidity")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return plain
	}

	tokenLines := chroma.SplitTokensIntoLines(iterator.Tokens())
	out := make([]string, len(plain))
	for i := range out {
		if i >= len(tokenLines) {
			out[i] = plain[i]
			continue
		}
		var b strings.Builder
		if err := formatter.Format(&b, style, chroma.Literator(tokenLines[i]...)); err != nil {
			out[i] = plain[i]
			continue
		}
		out[i] = strings.ReplaceAll(b.String(), "\n", "")
	}
	return out
}
