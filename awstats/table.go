package awstats

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HostTable holds the rows of the bordered per-host table of one monthly
// report. Cells are flattened to trimmed text; no markup survives parsing.
type HostTable struct {
	Rows [][]string
}

// Purpose: Locate the per-host report table in a monthly page and flatten it
// to text rows.
// Key aspects: AWStats marks the report table with border="1"; everything
// else on the page is navigation chrome. Returns false when no such table
// exists, which happens for months the server never recorded.
// Upstream: Client.FetchMonthly.
// Downstream: golang.org/x/net/html parser.
func ParseHostTable(r io.Reader) (*HostTable, bool) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, false
	}
	node := findBorderedTable(doc)
	if node == nil {
		return nil, false
	}
	table := &HostTable{}
	for _, row := range descendantElements(node, "tr") {
		var cells []string
		for _, cell := range descendantElements(row, "td") {
			cells = append(cells, nodeText(cell))
		}
		table.Rows = append(table.Rows, cells)
	}
	return table, true
}

// findBorderedTable returns the first table element, in document order, whose
// border attribute is exactly "1".
func findBorderedTable(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "table" {
		for _, attr := range n.Attr {
			if attr.Key == "border" && attr.Val == "1" {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findBorderedTable(c); found != nil {
			return found
		}
	}
	return nil
}

// descendantElements collects the named elements below n in document order.
func descendantElements(n *html.Node, name string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == name {
			out = append(out, c)
		}
		out = append(out, descendantElements(c, name)...)
	}
	return out
}

// nodeText concatenates every text node below n and trims the result, so a
// cell like <td><a href="...">10.2.3.4</a></td> yields "10.2.3.4".
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
