package stackexchange

import (
	"strings"

	"golang.org/x/net/html"
)

// FlattenHTML turns an answer body into Discord flavoured plain text:
// <pre> blocks become fenced code, inline <code> becomes backticks, list
// items get a dash and block elements are separated by blank lines.
func FlattenHTML(body string) string {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return body
	}

	var sb strings.Builder
	var traverse func(*html.Node, bool)

	traverse = func(n *html.Node, inPre bool) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.Data {
			case "pre":
				sb.WriteString("\n```\n")
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					traverse(c, true)
				}
				if !strings.HasSuffix(sb.String(), "\n") {
					sb.WriteString("\n")
				}
				sb.WriteString("```\n")
				return
			case "code":
				if inPre {
					break
				}
				sb.WriteString("`")
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					traverse(c, inPre)
				}
				sb.WriteString("`")
				return
			case "li":
				sb.WriteString("\n- ")
			case "br":
				sb.WriteString("\n")
			case "strong", "b":
				sb.WriteString("**")
				defer sb.WriteString("**")
			case "em", "i":
				sb.WriteString("*")
				defer sb.WriteString("*")
			case "p", "blockquote", "h1", "h2", "h3", "h4", "ul", "ol":
				defer sb.WriteString("\n\n")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c, inPre)
		}
	}

	traverse(doc, false)
	return collapseBlankLines(sb.String())
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blank++
			if blank > 1 {
				continue
			}
			out = append(out, "")
			continue
		}
		blank = 0
		out = append(out, strings.TrimRight(line, " \t"))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
