package qrcode

import (
	"encoding/base64"
	"errors"
	"strings"
	"sync"

	skipqrcode "github.com/skip2/go-qrcode"
)

var (
	ErrEmptyContent = errors.New("content cannot be empty")
	ErrGenerate     = errors.New("failed to generate QR code")
)

// DefaultSize is the image width and height in pixels.
const DefaultSize = 256

// Generate encodes content as a size x size PNG with medium error recovery.
// A non-positive size selects DefaultSize.
func Generate(content string, size int) ([]byte, error) {
	return encode(content, size, skipqrcode.Medium)
}

// DataURI returns the PNG for content as a data: URI suitable for an img src.
func DataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

func encode(content string, size int, level skipqrcode.RecoveryLevel) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = DefaultSize
	}
	png, err := skipqrcode.Encode(content, level, size)
	if err != nil {
		return nil, errors.Join(ErrGenerate, err)
	}
	return png, nil
}

// Option configures a Generator.
type Option func(*Generator)

// WithSize sets the image size in pixels.
func WithSize(size int) Option {
	return func(g *Generator) {
		if size > 0 {
			g.size = size
		}
	}
}

// WithHighRecovery encodes with the highest error recovery level, for codes
// that are printed or photographed from a screen.
func WithHighRecovery() Option {
	return func(g *Generator) { g.level = skipqrcode.Highest }
}

// Generator produces and memoizes QR images. It is safe for concurrent use.
type Generator struct {
	size  int
	level skipqrcode.RecoveryLevel

	mu    sync.Mutex
	cache map[string][]byte
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		size:  DefaultSize,
		level: skipqrcode.Medium,
		cache: make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// PNG returns the image for content, encoding it on first use.
func (g *Generator) PNG(content string) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if png, ok := g.cache[content]; ok {
		return png, nil
	}
	png, err := encode(content, g.size, g.level)
	if err != nil {
		return nil, err
	}
	g.cache[content] = png
	return png, nil
}
