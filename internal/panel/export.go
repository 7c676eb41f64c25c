package panel

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var ErrTableNotFound = errors.New("tabela nije pronađena")

// TableText возвращает видимый текст ячеек всех tr таблицы tableID,
// включая заголовок и ячейку действий.
func TableText(r io.Reader, tableID string) ([][]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	table := findByID(doc, tableID)
	if table == nil || table.DataAtom != atom.Table {
		return nil, fmt.Errorf("%w: #%s", ErrTableNotFound, tableID)
	}

	var rows [][]string
	walk(table, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		// вложенные таблицы не экспортируются
		if n.DataAtom == atom.Table && n != table {
			return false
		}
		if n.DataAtom != atom.Tr {
			return true
		}
		var cells []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
				cells = append(cells, visibleText(c))
			}
		}
		rows = append(rows, cells)
		return false
	})
	return rows, nil
}

// ExportCSV: каждое поле в двойных кавычках, кавычки внутри не удваиваются,
// строки через \n без завершающего перевода строки.
func ExportCSV(rows [][]string) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		fields := make([]string, 0, len(row))
		for _, cell := range row {
			fields = append(fields, `"`+cell+`"`)
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return strings.Join(lines, "\n")
}

func findByID(n *html.Node, id string) *html.Node {
	var found *html.Node
	walk(n, func(node *html.Node) bool {
		if found != nil {
			return false
		}
		if node.Type == html.ElementNode {
			for _, a := range node.Attr {
				if a.Key == "id" && a.Val == id {
					found = node
					return false
				}
			}
		}
		return true
	})
	return found
}

// walk обходит дерево в глубину; fn == false не спускается в потомков.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func visibleText(n *html.Node) string {
	var b strings.Builder
	walk(n, func(node *html.Node) bool {
		switch {
		case node.Type == html.TextNode:
			b.WriteString(node.Data)
		case node.Type == html.ElementNode && (node.DataAtom == atom.Script || node.DataAtom == atom.Style):
			return false
		}
		return true
	})
	return strings.Join(strings.Fields(b.String()), " ")
}
