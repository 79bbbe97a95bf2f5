package checksum

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Digest accumulates the raw and normalized SHA-256 of a byte stream.
type Digest struct {
	raw  hash.Hash
	norm hash.Hash

	// head holds the first bytes until it is known whether they are a BOM.
	head     []byte
	headDone bool
}

// NewDigest creates an empty Digest.
func NewDigest() *Digest {
	return &Digest{raw: sha256.New(), norm: sha256.New()}
}

// Write adds p to both checksums. It never returns an error.
func (d *Digest) Write(p []byte) (int, error) {
	d.raw.Write(p)
	if d.headDone {
		d.writeNormalized(p)
		return len(p), nil
	}

	d.head = append(d.head, p...)
	if len(d.head) < len(utf8BOM) && bytes.HasPrefix(utf8BOM, d.head) {
		return len(p), nil
	}
	d.flushHead()
	return len(p), nil
}

// Reader returns a reader that feeds everything read from r into d.
func (d *Digest) Reader(r io.Reader) io.Reader {
	return io.TeeReader(r, d)
}

// Raw returns the hex SHA-256 of the bytes written so far.
func (d *Digest) Raw() string {
	return hex.EncodeToString(d.raw.Sum(nil))
}

// Normalized returns the hex SHA-256 of the bytes written so far without a
// leading BOM and without carriage returns.
func (d *Digest) Normalized() string {
	if !d.headDone {
		// A stream shorter than a BOM that looks like its start is content.
		d.writeNormalized(d.head)
		d.head = nil
		d.headDone = true
	}
	return hex.EncodeToString(d.norm.Sum(nil))
}

func (d *Digest) flushHead() {
	d.writeNormalized(bytes.TrimPrefix(d.head, utf8BOM))
	d.head = nil
	d.headDone = true
}

func (d *Digest) writeNormalized(p []byte) {
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\r')
		if i < 0 {
			d.norm.Write(p)
			return
		}
		d.norm.Write(p[:i])
		p = p[i+1:]
	}
}

// Sum returns the raw and normalized checksums of content.
func Sum(content []byte) (raw, normalized string) {
	d := NewDigest()
	d.Write(content)
	return d.Raw(), d.Normalized()
}
