// =============================================================================
// Holded Stock Report - File Manager
// =============================================================================
//
// This package handles the filesystem side of a report run: output
// directory creation, output file naming from the configured format, and
// archival copies of generated workbooks.
//
// FILE NAMING:
//   Output names come from a format string with placeholders:
//     {doc}       - the document number (sanitized for the filesystem)
//     {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
//     {uuid}      - a random UUID
//   Names always end in .xlsx; the extension is appended when missing.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTORIES
// =============================================================================

// EnsureDir creates a directory (and parents) when it does not exist.
func EnsureDir(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// FILE NAMING
// =============================================================================

// BuildFileName expands a file name format for one document.
//
// PARAMETERS:
//   - format: The configured name format (e.g. "{doc}_stock.xlsx").
//   - docNumber: The document number for the {doc} placeholder.
//
// RETURNS:
//   - The expanded file name, guaranteed to end in .xlsx.
func BuildFileName(format, docNumber string) string {
	name := format
	name = strings.ReplaceAll(name, "{doc}", SanitizeFileName(docNumber))
	name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))
	name = strings.ReplaceAll(name, "{uuid}", uuid.New().String())

	if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
		name += ".xlsx"
	}
	return name
}

// SanitizeFileName replaces characters that are path separators or
// problematic on common filesystems with underscores. Document numbers
// like "PED/2024/0042" must not create subdirectories.
func SanitizeFileName(name string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_",
		"?", "_", "\"", "_", "<", "_", ">", "_", "|", "_",
	)
	sanitized := replacer.Replace(strings.TrimSpace(name))
	if sanitized == "" {
		return "document"
	}
	return sanitized
}

// =============================================================================
// ARCHIVAL
// =============================================================================

// ArchiveCopy copies a generated file into the archive directory, keeping
// the original in place. An empty archive directory disables archival.
func ArchiveCopy(srcPath, archiveDir string) error {
	if archiveDir == "" {
		return nil
	}
	if err := EnsureDir(archiveDir); err != nil {
		return err
	}

	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("failed to read file for archival: %w", err)
	}

	dst := filepath.Join(archiveDir, filepath.Base(srcPath))
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("failed to write archive copy: %w", err)
	}
	return nil
}
