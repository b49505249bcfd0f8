package hbars

import "strings"

// applyWhitespaceControl runs once per compiled template, right after
// parsing, and resolves every "~" sigil into a concrete trim on the
// neighboring Text node's rendered content. It never touches node
// spans, so AsStr() round-trips keep working; only renderString()
// reflects the trim.
func applyWhitespaceControl(doc *Node) {
	trimSiblings(doc.children)
}

func trimSiblings(nodes []*Node) {
	for i, n := range nodes {
		switch n.kind {
		case KindText, KindDocument:
			continue
		}
		if n.trimBefore {
			trimRightNeighbor(nodes, i)
		}
		if n.trimAfter {
			trimLeftNeighbor(nodes, i)
		}
		if n.kind == KindBlock {
			trimBlockInterior(n)
			trimSiblings(n.children)
			if n.inverse != nil {
				trimSiblings(n.inverse)
			}
		}
	}
}

// trimBlockInterior resolves a block's own four interior sigils: the
// open tag's trailing "~" (first body node), the {{else}} tag's
// leading "~" (last body node) or the close tag's leading "~" when
// there is no else, the else tag's trailing "~" (first inverse node),
// and the close tag's leading "~" against the last inverse node.
func trimBlockInterior(n *Node) {
	if n.openTrimAfter {
		trimFirst(n.children)
	}
	if n.inverse != nil {
		if n.elseTrimBefore {
			trimLast(n.children)
		}
		if n.elseTrimAfter {
			trimFirst(n.inverse)
		}
		if n.closeTrimBefore {
			trimLast(n.inverse)
		}
	} else if n.closeTrimBefore {
		trimLast(n.children)
	}
}

func trimRightNeighbor(nodes []*Node, i int) {
	if i == 0 {
		return
	}
	if prev := nodes[i-1]; prev.kind == KindText {
		prev.renderOverride = strings.TrimRight(prev.renderString(), " \t\r\n")
		prev.hasOverride = true
	}
}

func trimLeftNeighbor(nodes []*Node, i int) {
	if i+1 >= len(nodes) {
		return
	}
	if next := nodes[i+1]; next.kind == KindText {
		next.renderOverride = strings.TrimLeft(next.renderString(), " \t\r\n")
		next.hasOverride = true
	}
}

func trimFirst(nodes []*Node) {
	if len(nodes) == 0 || nodes[0].kind != KindText {
		return
	}
	nodes[0].renderOverride = strings.TrimLeft(nodes[0].renderString(), " \t\r\n")
	nodes[0].hasOverride = true
}

func trimLast(nodes []*Node) {
	if len(nodes) == 0 || nodes[len(nodes)-1].kind != KindText {
		return
	}
	last := nodes[len(nodes)-1]
	last.renderOverride = strings.TrimRight(last.renderString(), " \t\r\n")
	last.hasOverride = true
}
