package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/changwulf/dxf-viewer/pkg/dxf"
)

// Progress phases besides dxf.PhaseParse
const (
	PhaseFetch   = "fetch"
	PhasePrepare = "prepare"
)

// IsURL reports whether the source is fetched over http(s)
func IsURL(source string) bool {
	s := strings.ToLower(source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// progressReporter turns byte counts into "<phase>: NN%" updates,
// emitting only when the percentage changes
type progressReporter struct {
	update func(string)
	phase  string
	last   int
}

func newProgressReporter(update func(string)) *progressReporter {
	return &progressReporter{update: update, last: -1}
}

func (p *progressReporter) report(phase string, processed, total int64) {
	if total <= 0 {
		return
	}
	percent := int(processed * 100 / total)
	if percent > 100 {
		percent = 100
	}
	if phase == p.phase && percent == p.last {
		return
	}
	p.phase = phase
	p.last = percent
	p.update(ProgressText(phase, percent))
}

// ProgressText formats a loading progress line
func ProgressText(phase string, percent int) string {
	return fmt.Sprintf("%s: %d%%", phase, percent)
}

// loadDocument reads a drawing from a local path or an http(s) URL
func loadDocument(ctx context.Context, client *http.Client, source string, progress dxf.ProgressFunc) (*dxf.Document, error) {
	if IsURL(source) {
		return fetchDocument(ctx, client, source, progress)
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := dxf.ParseReaderWithProgress(file, info.Size(), progress)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DXF: %w", err)
	}
	return doc, nil
}

func fetchDocument(ctx context.Context, client *http.Client, url string, progress dxf.ProgressFunc) (*dxf.Document, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", url, resp.Status)
	}

	body := &fetchReader{
		reader:   resp.Body,
		total:    resp.ContentLength,
		progress: progress,
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if progress != nil {
		progress(PhaseFetch, int64(len(data)), int64(len(data)))
	}

	doc, err := dxf.ParseReaderWithProgress(bytes.NewReader(data), int64(len(data)), progress)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DXF: %w", err)
	}
	return doc, nil
}

type fetchReader struct {
	reader   io.Reader
	read     int64
	total    int64
	progress dxf.ProgressFunc
}

func (f *fetchReader) Read(p []byte) (int, error) {
	n, err := f.reader.Read(p)
	f.read += int64(n)
	if f.progress != nil && f.total > 0 {
		f.progress(PhaseFetch, f.read, f.total)
	}
	return n, err
}
