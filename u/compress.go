package u

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

func getErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// compressFile streams src through a compressor into dst.
// On error dst is removed.
func compressFile(dst string, src string, newWriter func(io.Writer) (io.WriteCloser, error)) error {
	fSrc, err := os.Open(src)
	if err != nil {
		return err
	}
	defer fSrc.Close()
	fDst, err := os.Create(dst)
	if err != nil {
		return err
	}
	w, err := newWriter(fDst)
	if err != nil {
		fDst.Close()
		os.Remove(dst)
		return err
	}
	_, err = io.Copy(w, fSrc)
	err2 := w.Close()
	err3 := fDst.Close()

	err = getErr(err, err2, err3)
	if err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}

func zstdNewWriter(dst io.Writer) (io.WriteCloser, error) {
	// SpeedBestCompression is much slower and not much better
	return zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func ZstdCompressFile(dst string, src string) error {
	return compressFile(dst, src, zstdNewWriter)
}

func BrCompressFile(dst string, src string) error {
	return compressFile(dst, src, func(w io.Writer) (io.WriteCloser, error) {
		return brotli.NewWriterLevel(w, brotli.BestCompression), nil
	})
}

func ZstdDecompressData(d []byte) ([]byte, error) {
	zr, err := zstd.NewReader(bytes.NewReader(d))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

func BrDecompressData(d []byte) ([]byte, error) {
	return io.ReadAll(brotli.NewReader(bytes.NewReader(d)))
}

// ReadFileMaybeCompressed reads a file that might be compressed with
// zstd, brotli or gzip. Compression is detected from file extension.
func ReadFileMaybeCompressed(path string) ([]byte, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".zst":
		return ZstdDecompressData(d)
	case ".br":
		return BrDecompressData(d)
	case ".gz":
		r, err := gzip.NewReader(bytes.NewReader(d))
		if err != nil {
			return nil, fmt.Errorf("gzip.NewReader('%s') failed with '%w'", path, err)
		}
		defer r.Close()
		return io.ReadAll(r)
	}
	return d, nil
}
