// Package notes persists research and store reports as markdown files.
package notes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	contractx "github.com/tanpawarit/research-commerce-assistant/agent/contract"
)

const (
	DefaultDir      = "notes"
	filenameLayout  = "20060102_150405"
	createdAtLayout = time.RFC3339
)

type Config struct {
	Dir string `envconfig:"NOTES_DIR" default:"notes"`
}

// Note is one immutable report artifact. Sources is optional; BusinessData
// is any JSON-encodable value and is written even when empty.
type Note struct {
	Title        string
	Summary      string
	Sources      contractx.Sources
	BusinessData any
}

type Option func(*Writer)

func WithFs(fs afero.Fs) Option {
	return func(w *Writer) {
		if fs != nil {
			w.fs = fs
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

type Writer struct {
	dir string
	fs  afero.Fs
	now func() time.Time
}

func NewWriter(cfg Config, opts ...Option) *Writer {
	dir := strings.TrimSpace(cfg.Dir)
	if dir == "" {
		dir = DefaultDir
	}
	w := &Writer{
		dir: dir,
		fs:  afero.NewOsFs(),
		now: time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// Path returns where a note with title created at ts is stored. Two notes
// with the same title in the same second share a path.
func (w *Writer) Path(title string, ts time.Time) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s_%s.md", fileStem(title), ts.Format(filenameLayout)))
}

// Write renders n and stores it, returning the file path.
func (w *Writer) Write(n Note) (string, error) {
	ts := w.now()
	path := w.Path(n.Title, ts)

	doc, err := Render(n, ts)
	if err != nil {
		return "", err
	}

	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create notes dir %s: %v", contractx.ErrIO, w.dir, err)
	}
	if err := afero.WriteFile(w.fs, path, doc, 0o644); err != nil {
		return "", fmt.Errorf("%w: write note %s: %v", contractx.ErrIO, path, err)
	}
	return path, nil
}

// Render builds the markdown document for n.
func Render(n Note, createdAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", n.Title)
	fmt.Fprintf(&buf, "Created: %s\n\n", createdAt.Format(createdAtLayout))

	buf.WriteString("## Research Summary\n\n")
	buf.WriteString(n.Summary)
	buf.WriteString("\n\n")

	if n.Sources != nil {
		block, err := prettyJSON(n.Sources)
		if err != nil {
			return nil, fmt.Errorf("%w: encode sources: %v", contractx.ErrIO, err)
		}
		buf.WriteString("## Sources\n\n```json\n")
		buf.Write(block)
		buf.WriteString("\n```\n\n")
	}

	data := n.BusinessData
	if data == nil {
		data = map[string]any{}
	}
	block, err := prettyJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: encode business data: %v", contractx.ErrIO, err)
	}
	buf.WriteString("## Business Data\n\n```json\n")
	buf.Write(block)
	buf.WriteString("\n```\n")

	return buf.Bytes(), nil
}

func prettyJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

var stemReplacer = strings.NewReplacer(" ", "_", "/", "_", "\\", "_")

func fileStem(title string) string {
	return stemReplacer.Replace(title)
}

// Read returns the stored content of a note written by w.
func (w *Writer) Read(path string) ([]byte, error) {
	doc, err := afero.ReadFile(w.fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: read note %s: %v", contractx.ErrIO, path, err)
	}
	return doc, nil
}
