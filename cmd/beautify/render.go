package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/tidwall/gjson"

	"pkt.systems/beautify"
)

// document is one decoded JSON value and where it came from.
type document struct {
	source string
	index  int
	value  beautify.Value
}

// readDocuments decodes every document of every path in order. "-" reads
// stdin. On error it stops and returns the documents decoded so far,
// including those of the failing path that precede the error.
func readDocuments(paths []string, stdin io.Reader, logger *slog.Logger) ([]document, error) {
	var docs []document
	for _, path := range paths {
		values, err := readPath(path, stdin)
		for i, v := range values {
			docs = append(docs, document{source: displayName(path), index: i, value: v})
		}
		if err != nil {
			return docs, fmt.Errorf("%s: %w", displayName(path), err)
		}
		logger.Debug("decoded input", slog.String("source", displayName(path)), slog.Int("documents", len(values)))
	}
	return docs, nil
}

func readPath(path string, stdin io.Reader) ([]beautify.Value, error) {
	if path == "-" {
		return beautify.DecodeAll(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return beautify.DecodeAll(f)
}

func compactPath(path string, stdin io.Reader, stdout io.Writer) error {
	if path == "-" {
		return beautify.CompactTo(stdout, stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return beautify.CompactTo(stdout, f)
}

func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}

// selectDocuments replaces every document with the value at path. Documents
// where path matches nothing are dropped.
func selectDocuments(docs []document, path string, logger *slog.Logger) ([]document, error) {
	selected := docs[:0]
	for _, doc := range docs {
		res := gjson.Get(beautify.Render(doc.value, &beautify.Options{}), path)
		if !res.Exists() {
			logger.Debug("no match", slog.String("source", doc.source), slog.Int("document", doc.index+1), slog.String("path", path))
			continue
		}
		v, err := beautify.Decode(strings.NewReader(res.Raw))
		if err != nil {
			return nil, fmt.Errorf("%s: document %d: select %q: %w", doc.source, doc.index+1, path, err)
		}
		doc.value = v
		selected = append(selected, doc)
	}
	return selected, nil
}

// renderAll renders docs on a pool of jobs workers. Outputs keep the input
// order regardless of completion order.
func renderAll(docs []document, opts *beautify.Options, jobs int, logger *slog.Logger) ([][]byte, error) {
	outputs := make([][]byte, len(docs))
	if len(docs) == 0 {
		return outputs, nil
	}
	if jobs <= 1 || len(docs) == 1 {
		for i := range docs {
			out, err := renderDocument(docs[i], opts)
			if err != nil {
				return nil, err
			}
			outputs[i] = out
		}
		return outputs, nil
	}

	if jobs > len(docs) {
		jobs = len(docs)
	}
	pool, err := ants.NewPool(jobs)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := pool.ReleaseTimeout(time.Second); err != nil {
			logger.Warn("worker pool release", slog.Any("error", err))
		}
	}()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i := range docs {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			out, err := renderDocument(docs[i], opts)
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return
			}
			outputs[i] = out
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, submitErr)
			mu.Unlock()
		}
	}
	wg.Wait()
	logger.Debug("rendered documents", slog.Int("documents", len(docs)), slog.Int("workers", jobs))
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return outputs, nil
}

func renderDocument(doc document, opts *beautify.Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := beautify.RenderTo(&buf, doc.value, opts); err != nil {
		return nil, fmt.Errorf("%s: document %d: %w", doc.source, doc.index+1, err)
	}
	return buf.Bytes(), nil
}
