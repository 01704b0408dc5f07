package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Converter is the client for the external document conversion service
// that renders PDF and DOCX binaries to plain markdown/text.
type Converter struct {
	url    string
	client *http.Client
}

type converterResponse struct {
	Document struct {
		MdContent string `json:"md_content"`
	} `json:"document"`
}

func NewConverter(url string) *Converter {
	return &Converter{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Minute},
	}
}

// Convert uploads file bytes to the converter and returns the extracted
// text content.
func (c *Converter) Convert(ctx context.Context, filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("files", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("converter request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("converter error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var d converterResponse
	if err := json.Unmarshal(body, &d); err != nil {
		return "", fmt.Errorf("decode converter response: %w", err)
	}
	return d.Document.MdContent, nil
}
