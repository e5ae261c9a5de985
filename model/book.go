package model

import "strings"

// Chapter is one scraped installment. Identity is the page URL: two
// chapters are the same chapter exactly when their URLs are equal.
type Chapter struct {
	URL     string
	Name    string
	Arc     string
	PrevURL string
	NextURL string

	ContentHTML string
	Text        string
	Images      []string
}

func (c *Chapter) WordCount() int {
	return len(strings.Fields(c.Text))
}

// Arc holds chapters in insertion order with O(1) lookup by name.
type Arc struct {
	Name string

	chapters []*Chapter
	index    map[string]int
}

func NewArc(name string) *Arc {
	return &Arc{
		Name:  name,
		index: make(map[string]int),
	}
}

// Add appends the chapter. A chapter with an already-present name
// replaces the old one without moving its position.
func (a *Arc) Add(ch *Chapter) {
	if i, ok := a.index[ch.Name]; ok {
		a.chapters[i] = ch
		return
	}
	a.index[ch.Name] = len(a.chapters)
	a.chapters = append(a.chapters, ch)
}

func (a *Arc) Get(name string) (*Chapter, bool) {
	i, ok := a.index[name]
	if !ok {
		return nil, false
	}
	return a.chapters[i], true
}

func (a *Arc) Chapters() []*Chapter {
	return a.chapters
}

func (a *Arc) Len() int {
	return len(a.chapters)
}

func (a *Arc) WordCount() int {
	total := 0
	for _, ch := range a.chapters {
		total += ch.WordCount()
	}
	return total
}

// Book groups arcs in the order chapters first reported them.
type Book struct {
	arcs  []*Arc
	index map[string]int
}

func NewBook() *Book {
	return &Book{index: make(map[string]int)}
}

// Add files the chapter under its arc, creating the arc the first
// time a chapter reports that label.
func (b *Book) Add(ch *Chapter) {
	i, ok := b.index[ch.Arc]
	if !ok {
		i = len(b.arcs)
		b.index[ch.Arc] = i
		b.arcs = append(b.arcs, NewArc(ch.Arc))
	}
	b.arcs[i].Add(ch)
}

func (b *Book) Arc(name string) (*Arc, bool) {
	i, ok := b.index[name]
	if !ok {
		return nil, false
	}
	return b.arcs[i], true
}

func (b *Book) Arcs() []*Arc {
	return b.arcs
}

// ChapterCount counts chapters across every arc.
func (b *Book) ChapterCount() int {
	total := 0
	for _, arc := range b.arcs {
		total += arc.Len()
	}
	return total
}

func (b *Book) WordCount() int {
	total := 0
	for _, arc := range b.arcs {
		total += arc.WordCount()
	}
	return total
}
