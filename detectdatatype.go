package ekgbeat

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ // Unix compress (LZW); recognized but not decompressed
	DataTypeBZip2
	DataTypeZlib
)

var byteCodeSigs = map[DataType][][]byte{
	DataTypeGzip:  {{0x1f, 0x8b, 0x08}},
	DataTypeZip:   {{0x50, 0x4b, 0x03, 0x04}},
	DataTypeXZ:    {{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	DataTypeZ:     {{0x1f, 0x9d}},
	DataTypeBZip2: {{0x42, 0x5a, 0x68}},
	DataTypeZlib:  {{0x78, 0x01}, {0x78, 0x5e}, {0x78, 0x9c}, {0x78, 0xda}},
}

// sniffLen is how much of a stream's head is examined.
const sniffLen = 512

var (
	bzip2BlockMagic = []byte{0x31, 0x41, 0x59, 0x26, 0x53, 0x59}
	bzip2EndMagic   = []byte{0x17, 0x72, 0x45, 0x38, 0x50, 0x90}
)

// DetectDataType attempts to detect the data type of a stream by checking
// against a set of known data types. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(r io.Reader) (DataType, error) {
	buff := make([]byte, sniffLen)
	n, err := io.ReadFull(r, buff)
	if n == 0 && err != nil {
		return DataTypeInvalid, err
	}
	buff = buff[:n]

	for dt, sigs := range byteCodeSigs {
		for _, sig := range sigs {
			if bytes.HasPrefix(buff, sig) && plausible(dt, buff) {
				return dt, nil
			}
		}
	}

	return DataTypeNoCompression, nil
}

// plausible checks more than the signature for the formats whose signatures
// are printable text, so that a text file starting with "BZh" or "x^" is not
// taken for compressed data.
func plausible(dt DataType, head []byte) bool {
	switch dt {
	case DataTypeBZip2:
		// BZh, a block size digit, then a block or end-of-stream magic
		if len(head) < 10 || head[3] < '1' || head[3] > '9' {
			return false
		}
		return bytes.Equal(head[4:10], bzip2BlockMagic) || bytes.Equal(head[4:10], bzip2EndMagic)
	case DataTypeZlib:
		cmf, flg := head[0], head[1]
		if cmf&0x0f != 8 || cmf>>4 > 7 || flg&0x20 != 0 || (uint16(cmf)<<8|uint16(flg))%31 != 0 {
			return false
		}

		// The head must decode cleanly, short of being cut off
		zr, err := zlib.NewReader(bytes.NewReader(head))
		if err != nil {
			return false
		}
		_, err = io.Copy(ioutil.Discard, zr)
		return err == nil || err == io.ErrUnexpectedEOF
	}

	return true
}

// MaybeDecompressReadCloser peeks at the head of rc and, if it carries a known
// compression signature, returns a reader over the decompressed stream. Closing
// the returned reader closes rc. An empty stream is returned as-is.
func MaybeDecompressReadCloser(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)

	head, _ := br.Peek(sniffLen)
	dt, err := DetectDataType(bytes.NewReader(head))
	if err == io.EOF {
		return &readCloser{br, rc}, nil
	} else if err != nil {
		return nil, err
	}

	switch dt {
	case DataTypeGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &readCloser{gz, rc}, nil
	case DataTypeZip:
		zr := zipstream.NewReader(br)

		// Position the stream at the first file in the archive
		if _, err := zr.Next(); err != nil {
			return nil, err
		}
		return &readCloser{zr, rc}, nil
	case DataTypeBZip2:
		return &readCloser{bzip2.NewReader(br), rc}, nil
	case DataTypeXZ:
		reader, err := xz.NewReader(br, 0)
		if err != nil {
			return nil, err
		}
		return &readCloser{reader, rc}, nil
	case DataTypeZ:
		return nil, fmt.Errorf("Unix compress (.Z) input is not supported")
	case DataTypeZlib:
		zr, err := zlib.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &readCloser{zr, rc}, nil
	}

	// No data type detected. For now, we assume this is uncompressed.
	return &readCloser{br, rc}, nil
}

// readCloser reads from a decoding reader but closes the underlying source.
type readCloser struct {
	io.Reader
	source io.Closer
}

func (c *readCloser) Close() error {
	return c.source.Close()
}
