// Package opinions ingests published court opinions straight from their
// public URL: download the HTML, strip it to text, register a document
// and index it in one go.
package opinions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"lexindex/extract"
	"lexindex/index"
	"lexindex/store"
	"lexindex/types"

	"github.com/google/uuid"
)

// minTextLength guards against pages that resolved but carry no opinion
// body (error pages, redirects rendered as HTML).
const minTextLength = 100

const previewChars = 1000

var (
	ErrFetch  = errors.New("could not fetch opinion")
	ErrNoText = errors.New("no meaningful text extracted from opinion")
)

// Result summarizes one processed opinion.
type Result struct {
	DocumentID  uuid.UUID             `json:"document_id"`
	Filename    string                `json:"filename"`
	URL         string                `json:"url"`
	OriginalURL string                `json:"original_url"`
	TextLength  int                   `json:"text_length"`
	TextPreview string                `json:"text_preview"`
	Indexing    *types.IndexingResult `json:"indexing_result"`
	Metadata    map[string]string     `json:"metadata"`
}

type Processor struct {
	logger  *slog.Logger
	store   store.DBStorer
	files   store.FileStorer
	indexer *index.Service
	client  *http.Client
}

func NewProcessor(storer store.DBStorer, files store.FileStorer, indexer *index.Service) *Processor {
	return &Processor{
		logger:  slog.Default(),
		store:   storer,
		files:   files,
		indexer: indexer,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// ProcessFromURL downloads an opinion page, extracts its text, stores it
// as a document and indexes it. Metadata is passed through untouched.
func (p *Processor) ProcessFromURL(ctx context.Context, opinionURL string, metadata map[string]string) (*Result, error) {
	log := p.logger.With("url", opinionURL)
	log.Info("processing opinion")

	htmlBody, err := p.download(ctx, opinionURL)
	if err != nil {
		return nil, err
	}

	text, err := extract.HTMLText(htmlBody)
	if err != nil {
		return nil, fmt.Errorf("extract opinion text: %w", err)
	}
	if len(strings.TrimSpace(text)) < minTextLength {
		return nil, ErrNoText
	}

	filename := filenameFromURL(opinionURL)

	// Store the extracted text as a retrievable file so the document's
	// URL always points at something servable.
	fileURL, err := p.files.Save(filename+".txt", []byte(text))
	if err != nil {
		return nil, fmt.Errorf("store opinion text: %w", err)
	}

	doc := types.Document{
		ID:          uuid.New(),
		Filename:    filename,
		URL:         fileURL,
		ContentType: extract.MimeHTML,
		TextPreview: extract.Preview(text, previewChars),
		FullText:    text,
		CreatedAt:   time.Now().UTC(),
	}
	if err := p.store.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	indexing, err := p.indexer.IndexDocument(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("index opinion document: %w", err)
	}

	log.Info("opinion processed", "document_id", doc.ID, "chunks_indexed", indexing.ChunksIndexed)

	if metadata == nil {
		metadata = map[string]string{}
	}
	return &Result{
		DocumentID:  doc.ID,
		Filename:    filename,
		URL:         fileURL,
		OriginalURL: opinionURL,
		TextLength:  indexing.TextLength,
		TextPreview: extract.Preview(text, 500),
		Indexing:    indexing,
		Metadata:    metadata,
	}, nil
}

func (p *Processor) download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d from %s", ErrFetch, resp.StatusCode, rawURL)
	}
	return io.ReadAll(resp.Body)
}

// filenameFromURL derives a stable filename from the opinion's URL path,
// e.g. .../relatoria/2025/T-040-25.htm -> opinion_T-040-25.
func filenameFromURL(rawURL string) string {
	base := "opinion"
	if u, err := url.Parse(rawURL); err == nil {
		name := path.Base(u.Path)
		name = strings.TrimSuffix(name, path.Ext(name))
		if name != "" && name != "." && name != "/" {
			base = name
		}
	}
	return "opinion_" + base
}
