// Package markup parses the small markdown subset that assistant answers
// use into a display tree.
//
// Supported: **bold**, "#", "##" and "###" headings, "*" / "-" bullets,
// "1." numbered items, and line breaks. Parsing runs in two passes. The
// first classifies each line by its prefix, the second finds emphasis
// inside the line's content, so markers inside headings and list items
// survive and a line starting with "**" is never taken for a bullet.
package markup

import (
	"strconv"
	"strings"
)

type Span struct {
	Strong bool
	Text   string
}

type Inline []Span

type BlockKind int

const (
	BlockLine BlockKind = iota
	BlockHeading
	BlockList
	BlockBreak
)

type Block struct {
	Kind    BlockKind
	Level   int      // heading level, 1-3
	Ordered bool     // list
	Content Inline   // line, heading
	Items   []Inline // list
	Numbers []int    // ordered list, the number each item was written with
}

type Document struct {
	Blocks []Block
}

func (d Document) Empty() bool {
	return len(d.Blocks) == 0
}

type lineKind int

const (
	lineText lineKind = iota
	lineHeading
	lineBullet
	lineNumbered
)

type classified struct {
	kind    lineKind
	level   int
	number  int
	content string
}

// Parse builds the display tree for text. It never fails; anything that is
// not recognised is kept as literal text.
func Parse(text string) Document {
	if text == "" {
		return Document{}
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	classes := make([]classified, len(lines))
	for i, line := range lines {
		classes[i] = classify(line)
	}

	var doc Document
	for i, c := range classes {
		if i > 0 {
			prev := classes[i-1]
			if isItem(c) && isItem(prev) && c.kind == prev.kind {
				last := &doc.Blocks[len(doc.Blocks)-1]
				last.Items = append(last.Items, parseInline(c.content))
				if last.Ordered {
					last.Numbers = append(last.Numbers, c.number)
				}
				continue
			}
			doc.Blocks = append(doc.Blocks, Block{Kind: BlockBreak})
		}
		switch c.kind {
		case lineHeading:
			doc.Blocks = append(doc.Blocks, Block{Kind: BlockHeading, Level: c.level, Content: parseInline(c.content)})
		case lineBullet:
			doc.Blocks = append(doc.Blocks, Block{Kind: BlockList, Items: []Inline{parseInline(c.content)}})
		case lineNumbered:
			doc.Blocks = append(doc.Blocks, Block{
				Kind:    BlockList,
				Ordered: true,
				Items:   []Inline{parseInline(c.content)},
				Numbers: []int{c.number},
			})
		default:
			if c.content != "" {
				doc.Blocks = append(doc.Blocks, Block{Kind: BlockLine, Content: parseInline(c.content)})
			}
		}
	}
	return doc
}

func isItem(c classified) bool {
	return c.kind == lineBullet || c.kind == lineNumbered
}

func classify(line string) classified {
	for level := 3; level >= 1; level-- {
		prefix := strings.Repeat("#", level) + " "
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			return classified{kind: lineHeading, level: level, content: rest}
		}
	}
	if rest, ok := strings.CutPrefix(line, "* "); ok {
		return classified{kind: lineBullet, content: rest}
	}
	if rest, ok := strings.CutPrefix(line, "- "); ok {
		return classified{kind: lineBullet, content: rest}
	}
	if n, rest, ok := cutNumber(line); ok {
		return classified{kind: lineNumbered, number: n, content: rest}
	}
	return classified{kind: lineText, content: line}
}

// cutNumber strips a leading "<digits>. " marker and returns its value.
func cutNumber(line string) (int, string, bool) {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, line, false
	}
	n, err := strconv.Atoi(line[:i])
	if err != nil {
		return 0, line, false
	}
	rest, ok := strings.CutPrefix(line[i:], ". ")
	return n, rest, ok
}

// parseInline pairs "**" markers left to right. An unpaired marker stays
// literal.
func parseInline(s string) Inline {
	var out Inline
	for {
		start := strings.Index(s, "**")
		if start < 0 {
			break
		}
		end := strings.Index(s[start+2:], "**")
		if end < 0 {
			break
		}
		if start > 0 {
			out = append(out, Span{Text: s[:start]})
		}
		out = append(out, Span{Strong: true, Text: s[start+2 : start+2+end]})
		s = s[start+2+end+2:]
	}
	if s != "" {
		out = append(out, Span{Text: s})
	}
	return out
}
