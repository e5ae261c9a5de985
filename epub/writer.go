package epub

import (
	"archive/zip"
	"context"
	"fmt"
	"os"

	"github.com/a-h/templ"
)

// archiveWriter wraps the output zip. The mimetype entry must be the
// first file in the archive and must be stored uncompressed.
type archiveWriter struct {
	file *os.File
	zip  *zip.Writer
}

func newArchiveWriter(path string) (*archiveWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create epub file: %v", err)
	}
	w := &archiveWriter{file: file, zip: zip.NewWriter(file)}
	if err := w.addString("mimetype", "application/epub+zip", zip.Store); err != nil {
		file.Close()
		return nil, err
	}
	return w, nil
}

func (w *archiveWriter) addString(name, content string, method uint16) error {
	return w.addBytes(name, []byte(content), method)
}

func (w *archiveWriter) addBytes(name string, data []byte, method uint16) error {
	header := &zip.FileHeader{Name: name, Method: method}
	writer, err := w.zip.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to add %s to epub: %v", name, err)
	}
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to add %s to epub: %v", name, err)
	}
	return nil
}

func (w *archiveWriter) addComponent(name string, component templ.Component) error {
	header := &zip.FileHeader{Name: name, Method: zip.Deflate}
	writer, err := w.zip.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to add %s to epub: %v", name, err)
	}
	if err := component.Render(context.Background(), writer); err != nil {
		return fmt.Errorf("failed to render %s: %v", name, err)
	}
	return nil
}

func (w *archiveWriter) Close() error {
	if err := w.zip.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to finalize epub: %v", err)
	}
	return w.file.Close()
}
