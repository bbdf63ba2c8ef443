package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/event-roster/internal/page"
)

// PageFile is the name of the stored page inside the data directory.
const PageFile = "page.html"

// ErrNoPage is returned by Load when no page has been initialized yet.
var ErrNoPage = errors.New("no page found (run 'event-roster init' first)")

// Storage handles persistence of the sign-up page
type Storage struct {
	dataDir string
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// New creates a Storage rooted at dataDir, creating the directory if needed.
func New(dataDir string) (*Storage, error) {
	dataDir, err := ExpandHome(dataDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Dir returns the resolved data directory.
func (s *Storage) Dir() string {
	return s.dataDir
}

// PagePath returns the path to the stored page
func (s *Storage) PagePath() string {
	return filepath.Join(s.dataDir, PageFile)
}

// Exists reports whether a page has been stored.
func (s *Storage) Exists() bool {
	_, err := os.Stat(s.PagePath())
	return err == nil
}

// Load reads and parses the stored page.
func (s *Storage) Load() (*page.Document, error) {
	data, err := os.ReadFile(s.PagePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoPage
		}
		return nil, fmt.Errorf("reading page: %w", err)
	}

	doc, err := page.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	return doc, nil
}

// Save renders doc and replaces the stored page.
func (s *Storage) Save(doc *page.Document) error {
	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return fmt.Errorf("encoding page: %w", err)
	}
	return s.write(buf.Bytes())
}

// Init writes the default page for events. An existing page is kept unless
// force is set.
func (s *Storage) Init(title string, events []string, force bool) error {
	if s.Exists() && !force {
		return fmt.Errorf("page already exists at %s (use --force to overwrite)", s.PagePath())
	}

	markup, err := page.Template(title, events)
	if err != nil {
		return err
	}
	return s.write([]byte(markup))
}

func (s *Storage) write(data []byte) error {
	tmp, err := os.CreateTemp(s.dataDir, ".page-*.html")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() // nolint:errcheck
		return fmt.Errorf("writing page: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing page: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("writing page: %w", err)
	}
	if err := os.Rename(tmpName, s.PagePath()); err != nil {
		return fmt.Errorf("replacing page: %w", err)
	}
	return nil
}
