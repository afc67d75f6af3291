// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package flamegraph renders the stacks a Report holds as an SVG flame
// graph. spec.md §4.5 fixes the weight dimension to alloc_bytes and the
// palette to a memory theme; no rendering option is exposed. No example in
// the retrieval pack ships a Go SVG flame-graph renderer (the nearest
// relatives are Rust's `inferno`/`pprof` crates referenced by
// original_source), so this is built directly against the stdlib (fmt and
// html escaping), per the justification recorded in DESIGN.md.
package flamegraph

import (
	"fmt"
	"html"
	"io"
	"sort"

	"github.com/heapprof/heapprof/internal/symbolize"
)

// Stack is one aggregated call stack plus its alloc_bytes weight, in root
// to leaf order.
type Stack struct {
	Symbols []symbolize.Symbol
	Weight  int64
}

const (
	frameHeight  = 16
	charWidth    = 7
	minLabelCols = 3
)

type node struct {
	name     string
	weight   int64
	children map[string]*node
	order    []string
}

func newNode(name string) *node {
	return &node{name: name, children: make(map[string]*node)}
}

func (n *node) child(name string) *node {
	c, ok := n.children[name]
	if !ok {
		c = newNode(name)
		n.children[name] = c
		n.order = append(n.order, name)
	}
	return c
}

func (n *node) sortedChildren() []*node {
	names := append([]string(nil), n.order...)
	sort.Strings(names)
	out := make([]*node, 0, len(names))
	for _, name := range names {
		out = append(out, n.children[name])
	}
	return out
}

func depth(n *node) int {
	d := 0
	for _, c := range n.children {
		if cd := depth(c); cd > d {
			d = cd
		}
	}
	return d + 1
}

// Write renders stacks as an SVG flame graph to w. The document begins with
// an XML declaration and labels its unit as "bytes", matching spec.md
// scenario S5.
func Write(w io.Writer, stacks []Stack) error {
	root := newNode("root")
	for _, s := range stacks {
		cur := root
		cur.weight += s.Weight
		for _, sym := range s.Symbols {
			cur = cur.child(sym.Name)
			cur.weight += s.Weight
		}
	}

	width := 1200
	d := depth(root)
	if d < 1 {
		d = 1
	}
	height := (d + 2) * frameHeight

	var total int64
	for _, c := range root.children {
		total += c.weight
	}
	if total == 0 {
		total = 1
	}

	buf := &svgBuilder{total: total, width: width}
	buf.writeHeader(width, height)
	buf.writeFrame(root, 0, 0, float64(width), "memory profile (bytes)", true)
	x := 0.0
	for _, c := range root.sortedChildren() {
		w := float64(c.weight) / float64(total) * float64(width)
		buf.renderSubtree(c, 1, x, w)
		x += w
	}
	buf.writeFooter()

	_, err := w.Write(buf.b)
	return err
}

type svgBuilder struct {
	b     []byte
	total int64
	width int
}

func (s *svgBuilder) writeHeader(width, height int) {
	s.b = append(s.b, []byte(fmt.Sprintf(
		`<?xml version="1.0" standalone="no"?>`+"\n"+
			`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" `+
			`viewBox="0 0 %d %d" font-family="monospace" font-size="11">`+"\n"+
			`<rect x="0" y="0" width="%d" height="%d" fill="#1a0f0f"/>`+"\n"+
			`<text x="4" y="%d" fill="#e0c0a0">unit: bytes</text>`+"\n",
		width, height, width, height, width, height, height-4))...)
}

func (s *svgBuilder) writeFooter() {
	s.b = append(s.b, []byte("</svg>\n")...)
}

// memPalette is a small fixed gradient of warm tones, mirroring
// original_source's BasicPalette::Mem.
var memPalette = []string{"#d73027", "#fc8d59", "#fee08b", "#e6550d", "#a63603"}

func colorFor(name string, depth int) string {
	h := 0
	for _, r := range name {
		h = h*31 + int(r)
	}
	if h < 0 {
		h = -h
	}
	return memPalette[(h+depth)%len(memPalette)]
}

func (s *svgBuilder) renderSubtree(n *node, depth int, x, width float64) {
	s.writeFrame(n, depth, x, width, n.name, false)
	if width/float64(max(1, len(n.children))) < 1 {
		return
	}
	var childX = x
	for _, c := range n.sortedChildren() {
		cw := float64(c.weight) / float64(n.weight) * width
		s.renderSubtree(c, depth+1, childX, cw)
		childX += cw
	}
}

func (s *svgBuilder) writeFrame(n *node, depth int, x, width float64, label string, isRoot bool) {
	y := depth * frameHeight
	fill := "#444444"
	if !isRoot {
		fill = colorFor(n.name, depth)
	}
	escaped := html.EscapeString(label)
	title := fmt.Sprintf("%s (%d bytes)", escaped, n.weight)
	s.b = append(s.b, []byte(fmt.Sprintf(
		`<g><title>%s</title><rect x="%.2f" y="%d" width="%.2f" height="%d" `+
			`fill="%s" stroke="#1a0f0f" stroke-width="0.5"/>`,
		title, x, y, width, frameHeight, fill))...)
	if width/charWidth >= minLabelCols {
		s.b = append(s.b, []byte(fmt.Sprintf(
			`<text x="%.2f" y="%d" fill="#1a0f0f" clip-path="inset(0 0 0 0)">%s</text>`,
			x+2, y+frameHeight-4, escaped))...)
	}
	s.b = append(s.b, []byte("</g>\n")...)
}
