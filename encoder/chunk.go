package encoder

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

const (
	TypeIHDR = "IHDR"
	TypeIDAT = "IDAT"
	TypeIEND = "IEND"
)

var (
	ErrChunkType = errors.New("encoder: chunk type must be 4 bytes")
	ErrSignature = errors.New("encoder: missing PNG signature")
	ErrTruncated = errors.New("encoder: truncated chunk")
	ErrCRC       = errors.New("encoder: chunk CRC mismatch")
)

// Chunk is one PNG chunk without its length and CRC framing.
type Chunk struct {
	Type string
	Data []byte
}

// Header holds the IHDR fields.
type Header struct {
	Width, Height int
	BitDepth      uint8
	ColorType     uint8
	Compression   uint8
	Filter        uint8
	Interlace     uint8
}

// MakeChunk frames payload as length ∥ tag ∥ payload ∥ CRC-32(tag ∥ payload).
func MakeChunk(tag string, payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteChunk(&buf, tag, payload); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func WriteChunk(w io.Writer, tag string, payload []byte) error {
	if len(tag) != 4 {
		return fmt.Errorf("%w: %q", ErrChunkType, tag)
	}
	frame := make([]byte, 0, 12+len(payload))
	frame = binary.BigEndian.AppendUint32(frame, uint32(len(payload)))
	frame = append(frame, tag...)
	frame = append(frame, payload...)
	frame = binary.BigEndian.AppendUint32(frame, crc32.ChecksumIEEE(frame[4:]))
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("writing %s chunk: %w", tag, err)
	}
	return nil
}

// ReadChunks splits a PNG stream into chunks, checking the signature,
// the length framing and every CRC. It stops after IEND.
func ReadChunks(data []byte) ([]Chunk, error) {
	if !bytes.HasPrefix(data, Signature) {
		return nil, ErrSignature
	}
	rest := data[len(Signature):]

	var chunks []Chunk
	for len(rest) > 0 {
		if len(rest) < 12 {
			return chunks, fmt.Errorf("%w: %d trailing bytes", ErrTruncated, len(rest))
		}
		n := binary.BigEndian.Uint32(rest[:4])
		if uint64(n)+12 > uint64(len(rest)) {
			return chunks, fmt.Errorf("%w: %q declares %d bytes", ErrTruncated, rest[4:8], n)
		}
		body := rest[4 : 8+n]
		want := binary.BigEndian.Uint32(rest[8+n : 12+n])
		if got := crc32.ChecksumIEEE(body); got != want {
			return chunks, fmt.Errorf("%w: %q has %08x, computed %08x", ErrCRC, body[:4], want, got)
		}
		c := Chunk{Type: string(body[:4]), Data: body[4:]}
		chunks = append(chunks, c)
		rest = rest[12+n:]
		if c.Type == TypeIEND {
			break
		}
	}
	return chunks, nil
}

func ParseHeader(c Chunk) (Header, error) {
	if c.Type != TypeIHDR {
		return Header{}, fmt.Errorf("encoder: expected IHDR, got %q", c.Type)
	}
	if len(c.Data) != 13 {
		return Header{}, fmt.Errorf("%w: IHDR payload is %d bytes", ErrTruncated, len(c.Data))
	}
	return Header{
		Width:       int(binary.BigEndian.Uint32(c.Data[0:4])),
		Height:      int(binary.BigEndian.Uint32(c.Data[4:8])),
		BitDepth:    c.Data[8],
		ColorType:   c.Data[9],
		Compression: c.Data[10],
		Filter:      c.Data[11],
		Interlace:   c.Data[12],
	}, nil
}
