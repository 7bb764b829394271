package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// MaxDecodedBodySize caps how far a compressed body may expand.
const MaxDecodedBodySize = 32 * 1024 * 1024

var (
	ErrUnsupportedEncoding = errors.New("unsupported content-encoding")
	ErrDecodedBodyTooLarge = errors.New("decoded body exceeds size limit")
)

// DecodeBody undoes the Content-Encoding chain of a body. Encodings are listed in
// the order they were applied, so they are removed last to first. The returned
// bool reports whether any decoding happened.
func DecodeBody(contentEncoding string, body []byte) ([]byte, bool, error) {
	if strings.TrimSpace(contentEncoding) == "" {
		return body, false, nil
	}
	encodings := strings.Split(contentEncoding, ",")
	changed := false
	for i := len(encodings) - 1; i >= 0; i-- {
		enc := strings.TrimSpace(strings.ToLower(encodings[i]))
		var (
			out []byte
			err error
		)
		switch enc {
		case "", "identity":
			continue
		case "br":
			out, err = readAllLimited(brotli.NewReader(bytes.NewReader(body)))
		case "gzip", "x-gzip":
			out, err = decodeGzip(body)
		case "zstd":
			out, err = decodeZstd(body)
		case "deflate":
			out, err = decodeDeflate(body)
		default:
			return nil, false, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encodings[i])
		}
		if err != nil {
			return nil, false, fmt.Errorf("decode %s: %w", enc, err)
		}
		body = out
		changed = true
	}
	return body, changed, nil
}

func decodeGzip(body []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer gr.Close()
	return readAllLimited(gr)
}

func decodeZstd(body []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return readAllLimited(dec)
}

// decodeDeflate accepts the zlib-wrapped form the RFC asks for and the raw
// stream some servers send instead.
func decodeDeflate(body []byte) ([]byte, error) {
	if zr, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
		defer zr.Close()
		return readAllLimited(zr)
	}
	fr := flate.NewReader(bytes.NewReader(body))
	defer fr.Close()
	return readAllLimited(fr)
}

func readAllLimited(r io.Reader) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, MaxDecodedBodySize+1))
	if err != nil {
		return nil, err
	}
	if len(out) > MaxDecodedBodySize {
		return nil, ErrDecodedBodyTooLarge
	}
	return out, nil
}
