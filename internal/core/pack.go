// Package core provides report writing and encryption for asepscan results.
package core

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"filippo.io/age"
)

// ReportMetadata contains information about the written report file.
type ReportMetadata struct {
	Path         string `json:"report_path"`
	Encrypted    bool   `json:"encrypted"`
	BytesWritten int64  `json:"bytes_written"`
}

// WriteReport writes the rendered report to outDir, optionally encrypting
// it with the provided age public key. The extension reflects the rendered
// format ("txt" or "json"); encrypted reports get an additional .age
// suffix.
func WriteReport(outDir, hostname, extension string, timestamp time.Time, data []byte, agePublicKey string) (*ReportMetadata, error) {
	timeStr := timestamp.UTC().Format("20060102T150405Z")
	baseFilename := fmt.Sprintf("asepscan_%s_%s.%s", SanitizeName(hostname), timeStr, extension)

	encrypted := agePublicKey != ""
	outputPath := filepath.Join(outDir, baseFilename)
	if encrypted {
		outputPath += ".age"
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file %s: %w", outputPath, err)
	}
	defer outFile.Close()

	var w io.Writer = outFile
	var encWriter io.WriteCloser
	if encrypted {
		recipient, err := age.ParseX25519Recipient(agePublicKey)
		if err != nil {
			return nil, fmt.Errorf("failed to parse age public key: %w", err)
		}
		encWriter, err = age.Encrypt(outFile, recipient)
		if err != nil {
			return nil, fmt.Errorf("failed to create age encryption writer: %w", err)
		}
		w = encWriter
	}

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	if encrypted {
		if err := encWriter.Close(); err != nil {
			return nil, fmt.Errorf("failed to close age encryption writer: %w", err)
		}
	}

	bytesWritten := int64(len(data))
	if stat, err := outFile.Stat(); err == nil {
		bytesWritten = stat.Size()
	}

	return &ReportMetadata{
		Path:         outputPath,
		Encrypted:    encrypted,
		BytesWritten: bytesWritten,
	}, nil
}

// ValidateAgePublicKey validates that a string is a valid age public key.
func ValidateAgePublicKey(key string) error {
	if !strings.HasPrefix(key, "age1") {
		return fmt.Errorf("age public key must start with 'age1'")
	}

	_, err := age.ParseX25519Recipient(key)
	if err != nil {
		return fmt.Errorf("invalid age public key: %w", err)
	}

	return nil
}
