package ir

import (
	"slices"
	"strings"
)

// AppendField adds f as the last field of the object n, setting f.Lead so
// that f starts on a new line.
//
// indent is the indentation for f when n gives no example to follow and
// closeIndent that of the closing brace of n.
func (n *Node) AppendField(f *Field, eol, indent, closeIndent string) {
	switch {
	case len(n.Fields) > 0:
		last := n.Fields[len(n.Fields)-1]
		if HasBreak(last.Lead) {
			f.Lead = eol + IndentOf(last.Lead)
			break
		}
		f.Lead = eol + indent
		if n.Braces && !HasBreak(n.Tail) {
			n.Tail = eol + closeIndent
		}
	case !n.Braces:
		f.Lead = n.Tail
		if f.Lead != "" && !strings.HasSuffix(f.Lead, "\n") {
			f.Lead += eol
		}
		n.Tail = eol
	default:
		f.Lead = eol + indent
		if strings.TrimSpace(n.Tail) != "" {
			f.Lead = strings.TrimRight(n.Tail, " \t")
			if !strings.HasSuffix(f.Lead, "\n") {
				f.Lead += eol
			}
			f.Lead += indent
		}
		n.Tail = eol + closeIndent
	}
	n.Fields = append(n.Fields, f)
}

// RemoveField removes the field at index i of the object n together with
// its line, leaving the surrounding text in place.
func (n *Node) RemoveField(i int) {
	var prevTrail, nextLead *string
	if i > 0 {
		prevTrail = &n.Fields[i-1].Trail
	}
	if i+1 < len(n.Fields) {
		nextLead = &n.Fields[i+1].Lead
	}
	detach(n.Fields[i].Lead, prevTrail, nextLead, &n.Tail)
	n.Fields = slices.Delete(n.Fields, i, i+1)
}

// AppendElem adds e as the last element of the array n, following the
// layout of the existing elements.
func (n *Node) AppendElem(e *Elem, eol string) {
	if len(n.Elems) == 0 {
		e.Lead = ""
		n.Elems = append(n.Elems, e)
		return
	}
	last := n.Elems[len(n.Elems)-1]
	commas := HasComma(last.Trail)
	if len(n.Elems) > 1 {
		commas = commas || HasComma(n.Elems[len(n.Elems)-2].Trail)
	}
	switch {
	case HasBreak(last.Lead):
		e.Lead = eol + IndentOf(last.Lead)
		if commas {
			last.Trail = addComma(last.Trail)
		}
	case hasComment(last.Trail):
		e.Lead = eol
		last.Trail = addComma(last.Trail)
	default:
		e.Lead = " "
		last.Trail = addComma(last.Trail)
	}
	n.Elems = append(n.Elems, e)
}

// RemoveElem removes the element at index i of the array n.
func (n *Node) RemoveElem(i int) {
	var prevTrail, nextLead *string
	if i > 0 {
		prevTrail = &n.Elems[i-1].Trail
	}
	if i+1 < len(n.Elems) {
		nextLead = &n.Elems[i+1].Lead
	}
	detach(n.Elems[i].Lead, prevTrail, nextLead, &n.Tail)
	n.Elems = slices.Delete(n.Elems, i, i+1)
}

// detach rewrites the text around an entry with the given lead so that
// removing the entry removes its line but keeps the entries before and
// after it well separated.
func detach(lead string, prevTrail, nextLead, tail *string) {
	sameLine := prevTrail != nil && !HasBreak(lead)
	switch {
	case nextLead != nil && sameLine:
		if HasBreak(*nextLead) {
			*prevTrail = dropComma(*prevTrail)
		}
	case nextLead != nil:
		*nextLead = joinBreak(lead, *nextLead, prevTrail == nil)
	default:
		if prevTrail != nil {
			*prevTrail = dropComma(*prevTrail)
		}
		if !sameLine {
			*tail = joinBreak(lead, *tail, false)
		}
	}
}

// joinBreak returns the text replacing a removed entry's lead and the
// text following the entry. The first line of lead, which belongs to the
// previous line, is kept; the first line of follow, which ended the
// removed entry's line, is dropped. When the removed entry was the first,
// blank lines separating it from the next are dropped too.
func joinBreak(lead, follow string, first bool) string {
	j := strings.IndexByte(follow, '\n')
	if j == -1 {
		if follow == "" || HasBreak(lead) {
			return follow
		}
		return lead
	}
	keep := ""
	if k := strings.IndexByte(lead, '\n'); k != -1 {
		keep = lead[:k+1]
	}
	rest := follow[j+1:]
	if first {
		rest = dropBlankLines(rest)
	}
	return keep + rest
}

// dropBlankLines removes the empty lines at the start of s.
func dropBlankLines(s string) string {
	for {
		i := strings.IndexByte(s, '\n')
		if i == -1 || strings.Trim(s[:i], " \t\r") != "" {
			return s
		}
		s = s[i+1:]
	}
}

// HasComma reports whether the trail of an entry holds the comma
// separating it from the next one.
func HasComma(trail string) bool {
	return commaIndex(trail) != -1
}

func commaIndex(trail string) int {
	i := strings.IndexFunc(trail, func(r rune) bool {
		return r != ' ' && r != '\t'
	})
	if i == -1 || trail[i] != ',' {
		return -1
	}
	return i
}

func dropComma(trail string) string {
	i := commaIndex(trail)
	if i == -1 {
		return trail
	}
	res := trail[:i] + trail[i+1:]
	if strings.TrimSpace(res) == "" {
		return ""
	}
	return res
}

func addComma(trail string) string {
	if HasComma(trail) {
		return trail
	}
	return "," + trail
}

func hasComment(s string) bool {
	return strings.IndexByte(s, '#') != -1 || strings.Contains(s, "//")
}
