package doctor

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"broomicon/badge"
	"broomicon/encoder"
	"broomicon/log"
)

// IconPath returns the file name the generator uses for an icon size.
func IconPath(dir string, size int) string {
	return filepath.Join(dir, fmt.Sprintf("icon%d.png", size))
}

// Run verifies every icon in dir and returns an exit code (0=all pass, 1=any fail).
func Run(w io.Writer, dir string, sizes []int) int {
	fmt.Fprintln(w, "broomicon doctor - icon diagnostics")
	fmt.Fprintln(w, "===================================")

	allPass := true
	for i, size := range sizes {
		path := IconPath(dir, size)
		fmt.Fprintln(w)
		fmt.Fprintf(w, "[%d/%d] %s\n", i+1, len(sizes), path)
		if err := Check(path, size); err != nil {
			fmt.Fprintf(w, "  FAIL: %v\n", err)
			log.Warnf("doctor: %s failed: %v", path, err)
			allPass = false
			continue
		}
		fmt.Fprintf(w, "  PASS: %dx%d RGBA, chunks and pixels verified\n", size, size)
		log.Info("doctor: " + path + " passed")
	}

	fmt.Fprintln(w)
	if allPass {
		fmt.Fprintln(w, "All checks passed!")
		log.Info("doctor: all checks passed")
		return 0
	}
	fmt.Fprintln(w, "Some checks failed. Rerun broomicon to regenerate the icons.")
	log.Warn("doctor: some checks failed")
	return 1
}

// Check reads one icon file and confirms it is exactly what the
// generator produces for size.
func Check(path string, size int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	chunks, err := encoder.ReadChunks(data)
	if err != nil {
		return err
	}
	if err := checkLayout(chunks); err != nil {
		return err
	}

	hdr, err := encoder.ParseHeader(chunks[0])
	if err != nil {
		return err
	}
	if hdr.Width != size || hdr.Height != size {
		return fmt.Errorf("header is %dx%d, want %dx%d", hdr.Width, hdr.Height, size, size)
	}
	if hdr.BitDepth != encoder.BitDepth || hdr.ColorType != encoder.ColorTypeRGBA || hdr.Interlace != 0 {
		return fmt.Errorf("header depth=%d color=%d interlace=%d, want 8-bit RGBA non-interlaced",
			hdr.BitDepth, hdr.ColorType, hdr.Interlace)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		return fmt.Errorf("decoded as %T, want *image.NRGBA", img)
	}

	last := size - 1
	for _, p := range []image.Point{{0, 0}, {last, 0}, {0, last}, {last, last}} {
		if a := nrgba.NRGBAAt(p.X, p.Y).A; a != 0 {
			return fmt.Errorf("corner %v alpha is %d, want 0", p, a)
		}
	}

	if !bytes.Equal(nrgba.Pix, badge.Generate(size)) {
		return fmt.Errorf("pixels differ from the current badge")
	}
	return nil
}

func checkLayout(chunks []encoder.Chunk) error {
	want := []string{encoder.TypeIHDR, encoder.TypeIDAT, encoder.TypeIEND}
	if len(chunks) != len(want) {
		return fmt.Errorf("found %d chunks, want IHDR, IDAT, IEND", len(chunks))
	}
	for i, c := range chunks {
		if c.Type != want[i] {
			return fmt.Errorf("chunk %d is %s, want %s", i, c.Type, want[i])
		}
	}
	return nil
}
