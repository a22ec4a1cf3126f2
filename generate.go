package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"broomicon/badge"
	"broomicon/encoder"
	"broomicon/log"
)

type iconResult struct {
	Size       int
	Path       string
	RawBytes   int
	PNGBytes   int
	EncodeTime time.Duration
}

// generateIcons renders, encodes and writes icon<size>.png into dir for
// every size, overwriting existing files. It stops at the first error.
func generateIcons(dir string, sizes []int, onCreated func(iconResult)) ([]iconResult, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating icons directory: %w", err)
	}

	results := make([]iconResult, 0, len(sizes))
	for _, size := range sizes {
		pix := badge.Generate(size)

		enc := encoder.NewPNG()
		if err := enc.Encode(size, size, pix); err != nil {
			return results, fmt.Errorf("encoding %dpx icon: %w", size, err)
		}

		path := filepath.Join(dir, fmt.Sprintf("icon%d.png", size))
		if err := writeFile(path, enc.Bytes()); err != nil {
			return results, err
		}

		r := iconResult{
			Size:       size,
			Path:       path,
			RawBytes:   enc.RawSize(),
			PNGBytes:   len(enc.Bytes()),
			EncodeTime: enc.EncodeTime(),
		}
		log.IconWritten(r.metrics())
		results = append(results, r)
		if onCreated != nil {
			onCreated(r)
		}
	}
	return results, nil
}

func (r iconResult) metrics() log.IconMetrics {
	m := log.IconMetrics{
		Size:         r.Size,
		Path:         r.Path,
		RawSizeKB:    float64(r.RawBytes) / 1024,
		PNGSizeKB:    float64(r.PNGBytes) / 1024,
		EncodeTimeMs: float64(r.EncodeTime.Microseconds()) / 1000,
	}
	if r.RawBytes > 0 {
		m.CompressionPct = (1 - float64(r.PNGBytes)/float64(r.RawBytes)) * 100
	}
	return m
}

func writeFile(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
