// Package detector handles ROM format detection.
package detector

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// Format is the detected kind of a ROM file.
type Format string

// Detected formats.
const (
	CHIP8   Format = "chip8"
	NES     Format = "nes"
	Unknown Format = "unknown"
)

// nesMagic starts every iNES file.
var nesMagic = []byte{'N', 'E', 'S', 0x1a}

// Detector handles ROM format detection from file extensions and content.
type Detector struct {
	logger *log.Logger
}

// New creates a new format detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the format of a ROM. The content takes precedence over
// the file name extension, as raw CHIP-8 programs have no header.
func (d *Detector) Detect(fileName string, data []byte) Format {
	format := d.detectFromData(data)
	if format == Unknown {
		format = d.detectFromFile(fileName)
	}

	d.logger.Debug("Detected ROM format",
		log.String("format", string(format)),
		log.String("file", fileName))
	return format
}

func (d *Detector) detectFromData(data []byte) Format {
	if bytes.HasPrefix(data, nesMagic) {
		return NES
	}
	return Unknown
}

// detectFromFile determines the format based on file extension.
func (d *Detector) detectFromFile(fileName string) Format {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".ch8", ".c8", ".rom":
		return CHIP8
	case ".nes":
		return NES
	default:
		return Unknown
	}
}
