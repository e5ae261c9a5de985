package epub

import (
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/Atsmon/seek-scraper/utils"
	"go.uber.org/zap"
)

// ImageEntry is one fetched image, named for the archive.
type ImageEntry struct {
	Name  string
	Media string
	Data  []byte
}

// ImageCache fetches each distinct image once per build. URLs are
// compared with their query strings stripped, and the first
// resolution of a URL fixes its archive name. Failed fetches are not
// cached, so a later reference to the same URL tries again.
type ImageCache struct {
	log     *zap.SugaredLogger
	entries map[string]ImageEntry
	order   []string
}

func NewImageCache(log *zap.SugaredLogger) *ImageCache {
	return &ImageCache{
		log:     log,
		entries: make(map[string]ImageEntry),
	}
}

// Resolve returns the cached entry for the URL, fetching and naming
// it on first sight.
func (c *ImageCache) Resolve(rawURL string) (ImageEntry, error) {
	normalized := utils.StripQuery(rawURL)
	if entry, ok := c.entries[normalized]; ok {
		return entry, nil
	}

	c.log.Infof("Downloading image: %s", normalized)
	resp, err := utils.Request().Get(normalized)
	if err != nil {
		c.log.Warnf("Failed to download image %s: %v", normalized, err)
		return ImageEntry{}, fmt.Errorf("failed to download image: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		c.log.Warnf("Failed to download image %s: %v", normalized, resp.Status())
		return ImageEntry{}, fmt.Errorf("failed to download image: %v", resp.Status())
	}

	entry := ImageEntry{
		Name: c.uniqueName(normalized),
		Data: resp.Body(),
	}
	entry.Media = mediaType(entry.Name)

	c.entries[normalized] = entry
	c.order = append(c.order, normalized)
	return entry, nil
}

// Entries lists cached images in resolution order.
func (c *ImageCache) Entries() []ImageEntry {
	entries := make([]ImageEntry, 0, len(c.order))
	for _, u := range c.order {
		entries = append(entries, c.entries[u])
	}
	return entries
}

// uniqueName derives the archive path for an image: the base name of
// the URL path under images/, spaces replaced, with a numeric suffix
// when another URL already claimed the name.
func (c *ImageCache) uniqueName(normalized string) string {
	base := ""
	if parsed, err := url.Parse(normalized); err == nil && !strings.HasSuffix(parsed.Path, "/") {
		base = path.Base(parsed.Path)
		if base == "." {
			base = ""
		}
	}
	if base == "" {
		base = fmt.Sprintf("img_%d", len(c.entries))
	}
	base = strings.ReplaceAll(base, " ", "_")

	name := "images/" + base
	counter := 1
	for c.nameTaken(name) {
		ext := path.Ext(base)
		name = fmt.Sprintf("images/%s_%d%s", strings.TrimSuffix(base, ext), counter, ext)
		counter++
	}
	return name
}

func (c *ImageCache) nameTaken(name string) bool {
	for _, entry := range c.entries {
		if entry.Name == name {
			return true
		}
	}
	return false
}

func mediaType(name string) string {
	mt := mime.TypeByExtension(path.Ext(name))
	if mt == "" || !strings.HasPrefix(mt, "image") {
		return "image/jpeg"
	}
	return mt
}
