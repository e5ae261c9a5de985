// Package epub assembles the scraped book into a single EPUB 3
// archive with an EPUB 2 NCX for older readers.
package epub

import (
	"archive/zip"
	"fmt"
	"strings"
	"time"

	"github.com/Atsmon/seek-scraper/config"
	"github.com/Atsmon/seek-scraper/model"
	"github.com/Atsmon/seek-scraper/template"
	"github.com/Atsmon/seek-scraper/utils"
	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// centeringStyle replaces whatever inline styling an image carried on
// the site, so covers and illustrations render centered and scaled on
// small screens.
const centeringStyle = "display:block;margin-left:auto;margin-right:auto;max-width:100%;height:auto;"

type Builder struct {
	log    *zap.SugaredLogger
	meta   config.Book
	images *ImageCache
}

func NewBuilder(log *zap.SugaredLogger, meta config.Book) *Builder {
	return &Builder{
		log:    log,
		meta:   meta,
		images: NewImageCache(log),
	}
}

// Build writes the book to outputPath. Reading order is the title
// page, then each arc divider followed by its chapters.
func (b *Builder) Build(book *model.Book, outputPath string) error {
	b.log.Infof("Creating EPUB: %s", outputPath)

	w, err := newArchiveWriter(outputPath)
	if err != nil {
		return err
	}
	buildErr := b.writeBook(w, book)
	closeErr := w.Close()
	if buildErr != nil {
		return buildErr
	}
	return closeErr
}

func (b *Builder) writeBook(w *archiveWriter, book *model.Book) error {
	if err := w.addComponent("META-INF/container.xml", template.ContainerXML()); err != nil {
		return err
	}

	manifest := &model.Manifest{Items: []model.ManifestItem{
		{ID: "ncx", Link: "toc.ncx", Media: "application/x-dtbncx+xml"},
		{ID: "nav", Link: "nav.xhtml", Media: "application/xhtml+xml", Properties: "nav"},
		{ID: "style", Link: "style.css", Media: "text/css"},
		{ID: "title", Link: "title.xhtml", Media: "application/xhtml+xml"},
	}}
	spine := &model.Spine{Toc: "ncx", Items: []model.SpineItem{{IDref: "title"}}}
	navMap := &model.NavMap{}
	playOrder := 0

	var nav strings.Builder
	nav.WriteString("<nav epub:type=\"toc\" id=\"toc\">\n<ol>\n")

	if err := w.addComponent("OEBPS/title.xhtml", template.TitleXHTML(b.meta.Title)); err != nil {
		return err
	}

	chapterNum := 0
	for i, arc := range book.Arcs() {
		arcFile := utils.CleanName(arc.Name) + ".xhtml"
		arcID := fmt.Sprintf("arc-%d", i+1)
		if err := w.addComponent("OEBPS/"+arcFile, template.ArcXHTML(i+1, arc.Name)); err != nil {
			return err
		}
		manifest.Items = append(manifest.Items, model.ManifestItem{ID: arcID, Link: arcFile, Media: "application/xhtml+xml"})
		spine.Items = append(spine.Items, model.SpineItem{IDref: arcID})

		playOrder++
		arcPoint := &model.NavPoint{
			Id:        arcID,
			PlayOrder: playOrder,
			Label:     arc.Name,
			Content:   model.NavPointContent{Src: arcFile},
		}
		navMap.Points = append(navMap.Points, arcPoint)
		fmt.Fprintf(&nav, "<li><a href=\"%s\">%s</a>\n<ol>\n", arcFile, templ.EscapeString(arc.Name))

		for _, chapter := range arc.Chapters() {
			chapterNum++
			chapterFile := utils.CleanName(chapter.Name) + ".xhtml"
			chapterID := fmt.Sprintf("chapter-%03d", chapterNum)

			content, err := b.localizeImages(chapter)
			if err != nil {
				return err
			}
			if err := w.addComponent("OEBPS/"+chapterFile, template.ContentXHTML(chapter.Name, content)); err != nil {
				return err
			}

			manifest.Items = append(manifest.Items, model.ManifestItem{ID: chapterID, Link: chapterFile, Media: "application/xhtml+xml"})
			spine.Items = append(spine.Items, model.SpineItem{IDref: chapterID})

			playOrder++
			arcPoint.NavPoints = append(arcPoint.NavPoints, &model.NavPoint{
				Id:        chapterID,
				PlayOrder: playOrder,
				Label:     chapter.Name,
				Content:   model.NavPointContent{Src: chapterFile},
			})
			fmt.Fprintf(&nav, "<li><a href=\"%s\">%s</a></li>\n", chapterFile, templ.EscapeString(chapter.Name))
		}
		nav.WriteString("</ol>\n</li>\n")
	}
	nav.WriteString("</ol>\n</nav>")

	for _, entry := range b.images.Entries() {
		if err := w.addBytes("OEBPS/"+entry.Name, entry.Data, zip.Deflate); err != nil {
			return err
		}
		manifest.Items = append(manifest.Items, model.ManifestItem{
			ID:    imageID(entry.Name),
			Link:  entry.Name,
			Media: entry.Media,
		})
	}

	if err := w.addComponent("OEBPS/nav.xhtml", template.ContentXHTML("Contents", nav.String())); err != nil {
		return err
	}

	bookUUID := fmt.Sprintf("urn:uuid:%s", uuid.New().String())
	head := &model.TocNCXHead{Meta: []model.TocNCXHeadMeta{
		{Name: "dtb:uid", Content: bookUUID},
	}}
	if err := w.addComponent("OEBPS/toc.ncx", template.TocNCX(b.meta.Title, head, navMap)); err != nil {
		return err
	}

	if err := w.addString("OEBPS/style.css", template.StyleCSS, zip.Deflate); err != nil {
		return err
	}

	now := time.Now()
	dc := &model.DublinCoreMetadata{
		Titles: []model.DCTitle{{Value: b.meta.Title}},
		Identifiers: []model.DCIdentifier{
			{Value: b.meta.Identifier, ID: "book-id"},
			{Value: bookUUID},
		},
		Languages:    []model.DCLanguage{{Value: b.meta.Language}},
		Creators:     []model.DCCreator{{Value: b.meta.Author, Role: "aut"}},
		Descriptions: []model.DCDescription{{Value: b.meta.Description}},
		Dates:        []model.DCDate{{Value: now.Format("2006-01-02")}},
		Metas: []model.DublinCoreMeta{
			{Property: "dcterms:modified", Value: now.UTC().Format("2006-01-02T15:04:05Z")},
		},
	}
	guide := &model.Guide{Items: []model.GuideItem{
		{Title: "Title Page", Type: "title-page", Link: "title.xhtml"},
		{Title: "Table of Contents", Type: "toc", Link: "nav.xhtml"},
	}}
	return w.addComponent("OEBPS/content.opf", template.ContentOPF("book-id", dc, manifest, spine, guide))
}

// localizeImages rewrites every <img> in the chapter fragment to point
// at an archive-local copy. References that cannot be fetched are
// dropped from the page rather than left dangling.
func (b *Builder) localizeImages(chapter *model.Chapter) (string, error) {
	if chapter.ContentHTML == "" {
		return "", nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(chapter.ContentHTML))
	if err != nil {
		return "", fmt.Errorf("failed to parse content of %s: %v", chapter.Name, err)
	}
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := utils.StripQuery(img.AttrOr("src", ""))
		if src == "" {
			return
		}
		entry, err := b.images.Resolve(src)
		if err != nil {
			img.Remove()
			return
		}
		img.Get(0).Attr = nil
		img.SetAttr("src", entry.Name)
		img.SetAttr("style", centeringStyle)
	})
	return doc.Find("body").Html()
}

func imageID(name string) string {
	return strings.Join(strings.Split(strings.ToLower(name), "/"), "-")
}
