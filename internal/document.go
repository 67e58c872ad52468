package internal

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

// extractDocumentTimestamp dispatches on the document flavor: PDF info dict,
// OOXML core properties, or ODF meta. Unknown flavors yield unknown.
func extractDocumentTimestamp(path string) (time.Time, TimestampSource) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDFTimestamp(path)
	case ".docx", ".pptx", ".xlsx":
		return extractZipXMLTimestamp(path, "docProps/core.xml", []xmlField{
			{space: "http://purl.org/dc/terms/", local: "created"},
			{space: "http://purl.org/dc/terms/", local: "modified"},
		})
	case ".odt", ".ods", ".odp":
		return extractZipXMLTimestamp(path, "meta.xml", []xmlField{
			{space: "urn:oasis:names:tc:opendocument:xmlns:meta:1.0", local: "creation-date"},
			{space: "http://purl.org/dc/elements/1.1/", local: "date"},
		})
	default:
		return time.Time{}, SourceUnknown
	}
}

// extractPDFTimestamp reads CreationDate, then ModDate, from the trailer's
// info dictionary. The reader panics on some malformed files; those degrade
// to unknown like every other soft failure.
func extractPDFTimestamp(path string) (t time.Time, source TimestampSource) {
	t, source = time.Time{}, SourceUnknown
	defer func() {
		if recover() != nil {
			t, source = time.Time{}, SourceUnknown
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	info := reader.Trailer().Key("Info")
	if info.Kind() != pdf.Dict {
		return
	}
	for _, key := range []string{"CreationDate", "ModDate"} {
		value := info.Key(key)
		if value.Kind() != pdf.String {
			continue
		}
		if parsed, ok := parseFlexibleTime(pdfDateToISO(value.RawString())); ok {
			return parsed, SourceMetadata
		}
	}
	return
}

// pdfDateToISO rewrites a PDF date (D:YYYYMMDDHHMMSS with an optional
// Z / +HH'mm' offset) into an ISO-like string the flexible parser accepts.
func pdfDateToISO(raw string) string {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "D:")
	if len(s) < 4 {
		return raw
	}

	digits := s
	offset := ""
	if i := strings.IndexAny(s, "Zz+-"); i >= 0 {
		digits, offset = s[:i], s[i:]
	}

	// Pad missing trailing components down to seconds.
	full := digits + "0101000000"[max(0, len(digits)-4):]
	if len(full) < 14 {
		return raw
	}
	iso := full[0:4] + "-" + full[4:6] + "-" + full[6:8] +
		"T" + full[8:10] + ":" + full[10:12] + ":" + full[12:14]

	switch {
	case offset == "":
	case offset[0] == 'Z' || offset[0] == 'z':
		iso += "Z"
	default:
		clean := strings.ReplaceAll(offset, "'", ":")
		iso += strings.TrimSuffix(clean, ":")
	}
	return iso
}

type xmlField struct {
	space string
	local string
}

// extractZipXMLTimestamp opens the document as a zip archive, decodes the
// named XML member and returns the first field (in priority order) holding a
// parseable date.
func extractZipXMLTimestamp(path, member string, fields []xmlField) (time.Time, TimestampSource) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return time.Time{}, SourceUnknown
	}
	defer archive.Close()

	var entry *zip.File
	for _, f := range archive.File {
		if f.Name == member {
			entry = f
			break
		}
	}
	if entry == nil {
		return time.Time{}, SourceUnknown
	}

	rc, err := entry.Open()
	if err != nil {
		return time.Time{}, SourceUnknown
	}
	defer rc.Close()

	values, err := collectXMLFields(rc, fields)
	if err != nil {
		return time.Time{}, SourceUnknown
	}
	for _, field := range fields {
		if raw, ok := values[field]; ok {
			if t, ok := parseFlexibleTime(raw); ok {
				return t, SourceMetadata
			}
		}
	}
	return time.Time{}, SourceUnknown
}

func collectXMLFields(r io.Reader, fields []xmlField) (map[xmlField]string, error) {
	wanted := make(map[xmlField]bool, len(fields))
	for _, f := range fields {
		wanted[f] = true
	}

	values := make(map[xmlField]string)
	decoder := xml.NewDecoder(r)
	var current xmlField
	var inWanted bool

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return values, nil
		}
		if err != nil {
			return nil, err
		}
		switch tok := token.(type) {
		case xml.StartElement:
			current = xmlField{space: tok.Name.Space, local: tok.Name.Local}
			inWanted = wanted[current]
		case xml.CharData:
			if inWanted {
				values[current] += string(tok)
			}
		case xml.EndElement:
			inWanted = false
		}
	}
}
