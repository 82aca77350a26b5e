package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/catalog"
)

// maxDocumentSize caps how much of a remote catalog document is read.
const maxDocumentSize = 64 << 20

// JSONSource reads the article array from a URL or a local file.
type JSONSource struct {
	name   string
	url    string
	path   string
	client *http.Client
}

func NewJSONURL(name, url string, client *http.Client) *JSONSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &JSONSource{name: name, url: url, client: client}
}

func NewJSONFile(name, path string) *JSONSource {
	return &JSONSource{name: name, path: path}
}

func (s *JSONSource) Name() string { return s.name }

func (s *JSONSource) Fetch(ctx context.Context) ([]catalog.Article, error) {
	var (
		data []byte
		err  error
	)
	if s.url != "" {
		data, err = s.get(ctx)
	} else {
		data, err = os.ReadFile(s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.name, err)
	}
	return decodeArticles(data)
}

func (s *JSONSource) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	client := s.client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
}

// decodeArticles parses the catalog document. Any "id" in the document is
// ignored; IDs are assigned by the loader.
func decodeArticles(data []byte) ([]catalog.Article, error) {
	var articles []catalog.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("parsing articles: %w", err)
	}
	return articles, nil
}
