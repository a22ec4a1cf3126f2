// Package encoder writes RGBA pixel buffers as PNG streams: 8-bit depth,
// color type 6, no interlacing, one IDAT chunk compressed at the highest
// zlib level.
package encoder

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/klauspost/compress/zlib"
)

const (
	BitDepth         = 8
	ColorTypeRGBA    = 6
	BytesPerPixel    = 4
	CompressionLevel = zlib.BestCompression
)

// Signature is the fixed 8-byte PNG file header.
var Signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// MaxDimension is the largest width or height a PNG header can carry.
const MaxDimension = 1<<31 - 1

var (
	ErrDimensions = errors.New("encoder: width and height must be in 1..2^31-1")
	ErrBufferSize = errors.New("encoder: pixel buffer length does not match dimensions")
)

type PNGEncoder struct {
	buf        bytes.Buffer
	rawSize    int
	encodeTime time.Duration
}

func NewPNG() *PNGEncoder {
	return &PNGEncoder{}
}

// Encode replaces the encoder's output with the PNG for a width×height
// RGBA buffer. On error the output is left empty.
func (e *PNGEncoder) Encode(width, height int, pix []byte) error {
	start := time.Now()
	defer func() { e.encodeTime += time.Since(start) }()

	e.buf.Reset()
	e.rawSize = 0

	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	if want := width * height * BytesPerPixel; len(pix) != want {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrBufferSize, len(pix), want)
	}

	idat, raw, err := compressScanlines(width, height, pix)
	if err != nil {
		return err
	}

	e.rawSize = raw
	e.buf.Write(Signature)
	for _, c := range []Chunk{
		{Type: TypeIHDR, Data: headerPayload(width, height)},
		{Type: TypeIDAT, Data: idat},
		{Type: TypeIEND},
	} {
		if err := WriteChunk(&e.buf, c.Type, c.Data); err != nil {
			return err
		}
	}
	return nil
}

func (e *PNGEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// RawSize is the length of the unfiltered scanline data before compression.
func (e *PNGEncoder) RawSize() int {
	return e.rawSize
}

// EncodeTime is the total time spent in Encode across all calls.
func (e *PNGEncoder) EncodeTime() time.Duration {
	return e.encodeTime
}

// EncodePNG is a one-shot Encode that returns the PNG bytes.
func EncodePNG(width, height int, pix []byte) ([]byte, error) {
	e := NewPNG()
	if err := e.Encode(width, height, pix); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

func headerPayload(width, height int) []byte {
	p := make([]byte, 13)
	binary.BigEndian.PutUint32(p[0:4], uint32(width))
	binary.BigEndian.PutUint32(p[4:8], uint32(height))
	p[8] = BitDepth
	p[9] = ColorTypeRGBA
	p[10] = 0 // compression
	p[11] = 0 // filter
	p[12] = 0 // interlace
	return p
}

// compressScanlines prefixes every row with filter type 0 and deflates
// the result. It returns the compressed stream and the raw length.
func compressScanlines(width, height int, pix []byte) ([]byte, int, error) {
	stride := width * BytesPerPixel
	raw := make([]byte, 0, height*(stride+1))
	for y := 0; y < height; y++ {
		raw = append(raw, 0)
		raw = append(raw, pix[y*stride:(y+1)*stride]...)
	}

	var out bytes.Buffer
	zw, err := zlib.NewWriterLevel(&out, CompressionLevel)
	if err != nil {
		return nil, 0, fmt.Errorf("creating zlib writer: %w", err)
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, 0, fmt.Errorf("compressing scanlines: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, 0, fmt.Errorf("closing zlib writer: %w", err)
	}
	return out.Bytes(), len(raw), nil
}
