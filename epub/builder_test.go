package epub

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Atsmon/seek-scraper/config"
	"github.com/Atsmon/seek-scraper/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBuilder() *Builder {
	return NewBuilder(zap.NewNop().Sugar(), config.Default().Book)
}

func testBook(chapters ...*model.Chapter) *model.Book {
	book := model.NewBook()
	for _, ch := range chapters {
		book.Add(ch)
	}
	return book
}

func buildToTemp(t *testing.T, book *model.Book) *zip.ReadCloser {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.epub")
	require.NoError(t, newTestBuilder().Build(book, path))
	reader, err := zip.OpenReader(path)
	require.NoError(t, err)
	t.Cleanup(func() { reader.Close() })
	return reader
}

func archiveFile(t *testing.T, reader *zip.ReadCloser, name string) string {
	t.Helper()
	for _, f := range reader.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatalf("archive has no file %s", name)
	return ""
}

func archiveNames(reader *zip.ReadCloser) []string {
	names := make([]string, 0, len(reader.File))
	for _, f := range reader.File {
		names = append(names, f.Name)
	}
	return names
}

func plainChapters() []*model.Chapter {
	return []*model.Chapter{
		{URL: "https://example.com/1", Name: "0.1.O", Arc: "Hack", ContentHTML: `<div class="chapter-content"><p>First paragraph.</p></div>`, Text: "First paragraph."},
		{URL: "https://example.com/2", Name: "0.2.O", Arc: "Hack", ContentHTML: `<div class="chapter-content"><p>Second.</p></div>`, Text: "Second."},
		{URL: "https://example.com/3", Name: "1.1", Arc: "Trace", ContentHTML: `<div class="chapter-content"><p>Third.</p></div>`, Text: "Third."},
	}
}

func TestBuildArchiveLayout(t *testing.T) {
	reader := buildToTemp(t, testBook(plainChapters()...))

	require.NotEmpty(t, reader.File)
	mimetype := reader.File[0]
	assert.Equal(t, "mimetype", mimetype.Name)
	assert.Equal(t, zip.Store, mimetype.Method)
	assert.Equal(t, "application/epub+zip", archiveFile(t, reader, "mimetype"))

	container := archiveFile(t, reader, "META-INF/container.xml")
	assert.Contains(t, container, `full-path="OEBPS/content.opf"`)

	names := archiveNames(reader)
	for _, expected := range []string{
		"OEBPS/title.xhtml",
		"OEBPS/Hack.xhtml",
		"OEBPS/0.1.O.xhtml",
		"OEBPS/0.2.O.xhtml",
		"OEBPS/Trace.xhtml",
		"OEBPS/1.1.xhtml",
		"OEBPS/nav.xhtml",
		"OEBPS/toc.ncx",
		"OEBPS/style.css",
		"OEBPS/content.opf",
	} {
		assert.Contains(t, names, expected)
	}
}

func TestBuildRendersPages(t *testing.T) {
	reader := buildToTemp(t, testBook(plainChapters()...))

	title := archiveFile(t, reader, "OEBPS/title.xhtml")
	assert.Contains(t, title, `<h1 style="text-align:center !important; margin-top:40vh;">SEEK</h1>`)

	arc := archiveFile(t, reader, "OEBPS/Hack.xhtml")
	assert.Contains(t, arc, "<h1>Arc 1: Hack</h1>")
	assert.Contains(t, archiveFile(t, reader, "OEBPS/Trace.xhtml"), "<h1>Arc 2: Trace</h1>")

	chapter := archiveFile(t, reader, "OEBPS/0.1.O.xhtml")
	assert.Contains(t, chapter, "<h1>0.1.O</h1>")
	assert.Contains(t, chapter, "First paragraph.")
	assert.Contains(t, chapter, `href="style.css"`)
}

func TestBuildContentOPF(t *testing.T) {
	reader := buildToTemp(t, testBook(plainChapters()...))
	opf := archiveFile(t, reader, "OEBPS/content.opf")

	assert.Contains(t, opf, `unique-identifier="book-id"`)
	assert.Contains(t, opf, "<dc:title>SEEK</dc:title>")
	assert.Contains(t, opf, `<dc:identifier id="book-id">seek-webserial</dc:identifier>`)
	assert.Contains(t, opf, "urn:uuid:")
	assert.Contains(t, opf, "<dc:language>en</dc:language>")
	assert.Contains(t, opf, `opf:role="aut"`)
	assert.Contains(t, opf, "John C. McCrae (Wildbow)")
	assert.Contains(t, opf, "SEEK webserial by John C. McCrae (Wildbow)")
	assert.Contains(t, opf, `property="dcterms:modified"`)
	assert.Contains(t, opf, `properties="nav"`)
	assert.Contains(t, opf, `<spine toc="ncx">`)

	order := []string{
		`idref="title"`,
		`idref="arc-1"`,
		`idref="chapter-001"`,
		`idref="chapter-002"`,
		`idref="arc-2"`,
		`idref="chapter-003"`,
	}
	last := -1
	for _, ref := range order {
		pos := strings.Index(opf, ref)
		require.GreaterOrEqual(t, pos, 0, "spine is missing %s", ref)
		assert.Greater(t, pos, last, "%s is out of reading order", ref)
		last = pos
	}
}

func TestBuildTableOfContents(t *testing.T) {
	reader := buildToTemp(t, testBook(plainChapters()...))

	ncx := archiveFile(t, reader, "OEBPS/toc.ncx")
	assert.Contains(t, ncx, `name="dtb:uid"`)
	assert.Contains(t, ncx, "<docTitle><text>SEEK</text></docTitle>")
	arcPos := strings.Index(ncx, `<navPoint id="arc-1" playOrder="1">`)
	chapterPos := strings.Index(ncx, `<navPoint id="chapter-001" playOrder="2">`)
	arcClose := strings.Index(ncx, `<navPoint id="arc-2"`)
	require.GreaterOrEqual(t, arcPos, 0)
	require.GreaterOrEqual(t, chapterPos, 0)
	require.GreaterOrEqual(t, arcClose, 0)
	assert.Greater(t, chapterPos, arcPos, "chapter point should nest under its arc")
	assert.Greater(t, arcClose, chapterPos)
	assert.Contains(t, ncx, `<content src="0.1.O.xhtml">`)

	nav := archiveFile(t, reader, "OEBPS/nav.xhtml")
	assert.Contains(t, nav, `<nav epub:type="toc" id="toc">`)
	assert.Contains(t, nav, `<li><a href="Hack.xhtml">Hack</a>`)
	assert.Contains(t, nav, `<li><a href="0.1.O.xhtml">0.1.O</a></li>`)
}

func TestBuildLocalizesImages(t *testing.T) {
	server, hits := serveImages(t, "/media/cover.jpg")
	chapters := plainChapters()
	chapters[0].ContentHTML = `<div class="chapter-content"><p>First paragraph.</p><img class="size-large" src="` + server.URL + `/media/cover.jpg?w=300" style="opacity:0.9"/></div>`

	reader := buildToTemp(t, testBook(chapters...))

	chapter := archiveFile(t, reader, "OEBPS/0.1.O.xhtml")
	assert.Contains(t, chapter, `src="images/cover.jpg"`)
	assert.Contains(t, chapter, centeringStyle)
	assert.NotContains(t, chapter, server.URL)
	assert.NotContains(t, chapter, "size-large")

	assert.Equal(t, "image-bytes:/media/cover.jpg", archiveFile(t, reader, "OEBPS/images/cover.jpg"))
	assert.Equal(t, 1, hits("/media/cover.jpg"))

	opf := archiveFile(t, reader, "OEBPS/content.opf")
	assert.Contains(t, opf, `id="images-cover.jpg"`)
	assert.Contains(t, opf, `href="images/cover.jpg"`)
	assert.Contains(t, opf, `media-type="image/jpeg"`)
}

func TestBuildDeduplicatesImagesAcrossChapters(t *testing.T) {
	server, hits := serveImages(t, "/media/cover.jpg")
	chapters := plainChapters()
	chapters[0].ContentHTML = `<div class="chapter-content"><img src="` + server.URL + `/media/cover.jpg?w=300"/></div>`
	chapters[1].ContentHTML = `<div class="chapter-content"><img src="` + server.URL + `/media/cover.jpg?w=1024"/></div>`

	reader := buildToTemp(t, testBook(chapters...))

	assert.Equal(t, 1, hits("/media/cover.jpg"))
	count := 0
	for _, name := range archiveNames(reader) {
		if strings.HasPrefix(name, "OEBPS/images/") {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Contains(t, archiveFile(t, reader, "OEBPS/0.2.O.xhtml"), `src="images/cover.jpg"`)
}

func TestBuildDropsUnfetchableImages(t *testing.T) {
	server, _ := serveImages(t)
	chapters := plainChapters()
	chapters[0].ContentHTML = `<div class="chapter-content"><p>First paragraph.</p><img src="` + server.URL + `/gone.jpg"/></div>`

	reader := buildToTemp(t, testBook(chapters...))

	chapter := archiveFile(t, reader, "OEBPS/0.1.O.xhtml")
	assert.NotContains(t, chapter, "<img")
	assert.Contains(t, chapter, "First paragraph.")
	for _, name := range archiveNames(reader) {
		assert.False(t, strings.HasPrefix(name, "OEBPS/images/"), "unexpected image %s", name)
	}
}

func TestBuildEmptyChapterContent(t *testing.T) {
	reader := buildToTemp(t, testBook(&model.Chapter{
		URL: "https://example.com/1", Name: "0.1.O", Arc: "Hack",
	}))
	chapter := archiveFile(t, reader, "OEBPS/0.1.O.xhtml")
	assert.Contains(t, chapter, "<h1>0.1.O</h1>")
}
