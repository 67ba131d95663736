package token

import (
	"fmt"
	"sort"
	"strconv"
)

// PosDoc maps byte offsets of one tokenized document to lines and columns.
type PosDoc struct {
	Name string
	d    []byte
	n    []int
}

func NewPosDoc(name string, d []byte) *PosDoc {
	return &PosDoc{Name: name, d: d}
}

func (p *PosDoc) nl(i int) {
	if len(p.n) > 0 && p.n[len(p.n)-1] == i {
		return
	}
	if i >= len(p.d) || p.d[i] != '\n' {
		panic(fmt.Sprintf("no newline at offset %d", i))
	}
	p.n = append(p.n, i)
}

// LineCol returns the zero based line and column of off.
func (p *PosDoc) LineCol(off int) (int, int) {
	N := len(p.n)
	di := sort.Search(N, func(i int) bool {
		return p.n[i] >= off
	})
	switch di {
	case 0:
		return 0, off
	default:
		return di, off - p.n[di-1] - 1
	}
}

func (p *PosDoc) Pos(i int) *Pos {
	return &Pos{
		I: i,
		D: p,
	}
}

type Pos struct {
	I int
	D *PosDoc
}

func (p *Pos) LineCol() (int, int) {
	if p.D == nil {
		return 0, p.I
	}
	return p.D.LineCol(p.I)
}

// Line returns the one based line number.
func (p *Pos) Line() int {
	l, _ := p.LineCol()
	return l + 1
}

// Col returns the one based column number.
func (p *Pos) Col() int {
	_, c := p.LineCol()
	return c + 1
}

// Short returns name:line:col, omitting the name if there is none.
func (p *Pos) Short() string {
	if p.D != nil && p.D.Name != "" {
		return fmt.Sprintf("%s:%d:%d", p.D.Name, p.Line(), p.Col())
	}
	return fmt.Sprintf("%d:%d", p.Line(), p.Col())
}

func (p Pos) String() string {
	sample := "?"
	if p.D != nil && len(p.D.d) > 0 {
		sample = string(p.D.d[max(0, p.I-5):min(p.I+5, len(p.D.d))])
	}
	sample = strconv.Quote(sample)
	sample = sample[1 : len(sample)-1]
	return fmt.Sprintf("`...%s...` at %s", sample, p.Short())
}
