// Package frontmatter splits metadata headers from content bodies.
//
// Two header formats are supported: YAML delimited by `---` lines and TOML
// delimited by `+++` lines. Detection is based on the opening delimiter.
package frontmatter

import (
	"bytes"
	"errors"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies the header format detected by Split.
type Format string

const (
	FormatNone Format = "none"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrMissingClosingDelimiter indicates the document started with a
// frontmatter delimiter but did not contain a matching closing delimiter.
var ErrMissingClosingDelimiter = errors.New("frontmatter start delimiter found but closing delimiter is missing")

// Style captures newline shape needed for stable splitting.
type Style struct {
	Newline string
}

// Split separates the metadata header from the body.
//
// If the content does not start with a recognized delimiter, format is
// FormatNone and body is the full input.
func Split(content []byte) (header []byte, body []byte, format Format, err error) {
	style := detectStyle(content)

	for _, candidate := range []struct {
		delim  string
		format Format
	}{
		{"---", FormatYAML},
		{"+++", FormatTOML},
	} {
		h, b, ok, splitErr := splitDelimited(content, candidate.delim, style)
		if splitErr != nil {
			return nil, nil, candidate.format, splitErr
		}
		if ok {
			return h, b, candidate.format, nil
		}
	}

	return nil, content, FormatNone, nil
}

// Decode unmarshals raw header bytes into v according to the detected format.
// A FormatNone header decodes to nothing.
func Decode(header []byte, format Format, v any) error {
	switch format {
	case FormatYAML:
		return yaml.Unmarshal(header, v)
	case FormatTOML:
		return toml.Unmarshal(header, v)
	case FormatNone:
		return nil
	default:
		return errors.New("unknown frontmatter format " + string(format))
	}
}

func splitDelimited(content []byte, delim string, style Style) (header, body []byte, ok bool, err error) {
	nl := style.Newline
	open := []byte(delim + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, nil, false, nil
	}

	headerStart := len(open)
	closeLine := []byte(delim + nl)
	if bytes.HasPrefix(content[headerStart:], closeLine) {
		bodyStart := headerStart + len(closeLine)
		return []byte{}, content[bodyStart:], true, nil
	}

	closeSeq := []byte(nl + delim + nl)
	idx := bytes.Index(content[headerStart:], closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	headerEnd := headerStart + idx + len(nl)
	bodyStart := headerStart + idx + len(closeSeq)
	return content[headerStart:headerEnd], content[bodyStart:], true, nil
}

func detectStyle(content []byte) Style {
	newline := "\n"
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			newline = "\r\n"
			break
		}
		if content[i] == '\n' {
			newline = "\n"
			break
		}
	}
	return Style{Newline: newline}
}
