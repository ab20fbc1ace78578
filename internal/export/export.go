// Package export writes a loaded content tree out as a directory
// projection: internal nodes become directories and leaves become files
// holding their content.
package export

import (
	"fmt"
	"path"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"

	"github.com/agentic-research/folio/internal/tree"
)

const (
	defaultExt = ".html"
	linkExt    = ".link"
)

// Options controls Write.
type Options struct {
	// Ext is appended to leaf file names. Defaults to ".html".
	Ext    string
	Logger *zap.Logger
}

// Write projects r onto fs, rooted at fs's root directory. It returns the
// number of files written (content plus link files).
func Write(r tree.Reader, fs billy.Filesystem, opts Options) (int, error) {
	if opts.Ext == "" {
		opts.Ext = defaultExt
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	w := &writer{r: r, fs: fs, opts: opts}
	root := r.Root()
	if root.IsLeaf() {
		// A single-leaf tree has no directory to project into.
		p := "/" + SanitizeName(root.Title()) + opts.Ext
		if err := util.WriteFile(fs, p, []byte(root.Content()), 0o644); err != nil {
			return 0, fmt.Errorf("write %s: %w", p, err)
		}
		return 1, nil
	}
	if err := w.dir(root, "/"); err != nil {
		return w.files, err
	}
	opts.Logger.Debug("tree exported", zap.Int("files", w.files), zap.String("root", fs.Root()))
	return w.files, nil
}

type writer struct {
	r     tree.Reader
	fs    billy.Filesystem
	opts  Options
	files int
}

func (w *writer) dir(n *tree.Node, dirPath string) error {
	if err := w.fs.MkdirAll(dirPath, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dirPath, err)
	}

	used := make(map[string]bool)
	for _, c := range w.r.Children(n.ID()) {
		name, link := w.claim(used, c)
		p := path.Join(dirPath, name)

		if !c.IsLeaf() {
			if err := w.dir(c, p); err != nil {
				return err
			}
			continue
		}
		if err := util.WriteFile(w.fs, p, []byte(c.Content()), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", p, err)
		}
		w.files++
		if link != "" {
			lp := path.Join(dirPath, link)
			if err := util.WriteFile(w.fs, lp, []byte(c.Link()+"\n"), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", lp, err)
			}
			w.files++
		}
	}
	return nil
}

// claim picks the names c occupies in its directory: the entry itself and,
// for a leaf with a link, the link file. Both must be free among the
// siblings already claimed. Collisions fall back to "<title>~<id>", then
// to a numbered variant of that.
func (w *writer) claim(used map[string]bool, c *tree.Node) (name, link string) {
	title := SanitizeName(c.Title())
	byID := title + "~" + SanitizeName(c.ID())
	for attempt := 0; ; attempt++ {
		stem := title
		switch {
		case attempt == 1:
			stem = byID
		case attempt > 1:
			stem = fmt.Sprintf("%s~%d", byID, attempt)
		}

		name, link = stem, ""
		if c.IsLeaf() {
			name += w.opts.Ext
			if c.Link() != "" {
				link = stem + linkExt
			}
		}
		if used[name] || (link != "" && used[link]) {
			continue
		}
		used[name] = true
		if link != "" {
			used[link] = true
		}
		return name, link
	}
}

// SanitizeName makes a title usable as a single path element.
func SanitizeName(title string) string {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == 0 {
			return '-'
		}
		return r
	}, title)
	switch name {
	case "", ".", "..":
		return "_" + name
	}
	return name
}
