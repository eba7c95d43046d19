package domain

import (
	"path/filepath"
	"strings"
)

// Format is the document family detected from a file extension
type Format int

const (
	FormatUnknown Format = iota
	FormatSpreadsheet
	FormatPDF
	FormatWordProcessor
)

func (f Format) String() string {
	switch f {
	case FormatSpreadsheet:
		return "spreadsheet"
	case FormatPDF:
		return "pdf"
	case FormatWordProcessor:
		return "word-processor"
	default:
		return "unknown"
	}
}

// HasExtractableText is true for the formats whose content can be searched.
func (f Format) HasExtractableText() bool {
	return f == FormatSpreadsheet || f == FormatPDF
}

var formatsByExt = map[string]Format{
	".xlsx": FormatSpreadsheet,
	".xls":  FormatSpreadsheet,
	".pdf":  FormatPDF,
	".docx": FormatWordProcessor,
	".doc":  FormatWordProcessor,
}

// DetectFormat maps a path to its Format by extension, ignoring case.
func DetectFormat(path string) Format {
	if f, ok := formatsByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return FormatUnknown
}

// IsSupportedDocument reports whether the sorter picks the file up at all.
func IsSupportedDocument(path string) bool {
	return DetectFormat(path) != FormatUnknown
}
