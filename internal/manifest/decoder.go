// Package manifest implements the incremental decoder that turns a
// SymbolReference.json stream into typed Symbol Objects without ever
// holding a whole top-level array in memory at once.
package manifest

import (
	"encoding/json"
	"io"
	"time"

	"github.com/balsymbols/symbolindex/internal/engineerr"
	"github.com/balsymbols/symbolindex/internal/symbols"
)

// SkipNote records one object that could not be decoded, without
// failing the whole package.
type SkipNote struct {
	Key    string
	Offset int64
	Reason string
}

// Report summarizes one decode pass, exposed so load summaries can
// report counts the way any real toolchain diagnostic does.
type Report struct {
	ObjectsByType map[symbols.ObjectType]int
	UnknownKeys   map[string]int
	// UnknownFieldsByType is allocated but never incremented: fields
	// inside an object that rawObject does not declare are dropped by
	// encoding/json without being counted.
	UnknownFieldsByType map[symbols.ObjectType]int
	Skipped             []SkipNote
	DurationMs          float64
}

func newReport() *Report {
	return &Report{
		ObjectsByType:       make(map[symbols.ObjectType]int),
		UnknownKeys:         make(map[string]int),
		UnknownFieldsByType: make(map[symbols.ObjectType]int),
	}
}

// Decode streams r, a raw SymbolReference.json document, emitting one
// Symbol Object at a time to emit. It never buffers a whole top-level
// array: each array element is decoded, converted, and handed off
// before the next is read.
func Decode(r io.Reader, packageName string, in *symbols.Interner, emit func(*symbols.Object)) (*Report, error) {
	start := time.Now()
	dec := json.NewDecoder(r)
	report := newReport()

	tok, err := dec.Token()
	if err != nil {
		return nil, engineerr.Wrap(engineerr.DecodeError, err, "read manifest root token")
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return nil, engineerr.New(engineerr.DecodeError, "manifest root is not a JSON object")
	}

	if err := decodeObjectBody(dec, packageName, in, report, emit); err != nil {
		return nil, err
	}

	report.DurationMs = float64(time.Since(start).Microseconds()) / 1000
	return report, nil
}

// decodeObjectBody consumes the key/value pairs of a JSON object whose
// opening '{' has already been read, through its closing '}'. It
// recurses into nested unrecognized objects to support both the
// root-level and namespace-wrapped manifest layouts without knowing in
// advance which one a given package uses.
func decodeObjectBody(dec *json.Decoder, packageName string, in *symbols.Interner, report *Report, emit func(*symbols.Object)) error {
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return engineerr.Wrap(engineerr.DecodeError, err, "read manifest key")
		}
		key, ok := keyTok.(string)
		if !ok {
			return engineerr.New(engineerr.DecodeError, "manifest object key is not a string")
		}

		info, recognized := recognizedKeys[key]
		if recognized {
			if err := decodeArray(dec, info, packageName, in, report, emit); err != nil {
				return err
			}
			continue
		}

		valueTok, err := dec.Token()
		if err != nil {
			return engineerr.Wrap(engineerr.DecodeError, err, "read value for unknown manifest key")
		}
		if d, ok := valueTok.(json.Delim); ok && d == '{' {
			if err := decodeObjectBody(dec, packageName, in, report, emit); err != nil {
				return err
			}
		} else {
			if err := skipValue(dec, valueTok); err != nil {
				return err
			}
		}
		report.UnknownKeys[key]++
	}

	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return engineerr.Wrap(engineerr.DecodeError, err, "read manifest object close")
	}
	return nil
}

// decodeArray consumes a recognized top-level key's array value,
// decoding and emitting one element at a time.
func decodeArray(dec *json.Decoder, info keyInfo, packageName string, in *symbols.Interner, report *Report, emit func(*symbols.Object)) error {
	tok, err := dec.Token()
	if err != nil {
		return engineerr.Wrap(engineerr.DecodeError, err, "read array open for recognized key")
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '[' {
		// A recognized key with a non-array value is malformed for this
		// vendor schema version; skip it without failing the package.
		return skipValue(dec, tok)
	}

	offset := dec.InputOffset()
	for dec.More() {
		var raw rawObject
		if err := dec.Decode(&raw); err != nil {
			// An individual unreadable object is skipped and reported,
			// not treated as fatal for the whole package.
			report.Skipped = append(report.Skipped, SkipNote{
				Key:    info.Type.String(),
				Offset: offset,
				Reason: err.Error(),
			})
			offset = dec.InputOffset()
			continue
		}
		emit(toObject(raw, info, packageName, in))
		report.ObjectsByType[info.Type]++
		offset = dec.InputOffset()
	}

	if _, err := dec.Token(); err != nil {
		return engineerr.Wrap(engineerr.DecodeError, err, "read array close")
	}
	return nil
}

// skipValue consumes an already-opened JSON value (first is the token
// already read for it) without decoding it into anything, correctly
// tracking nested object/array depth.
func skipValue(dec *json.Decoder, first json.Token) error {
	delim, ok := first.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return engineerr.Wrap(engineerr.DecodeError, err, "skip unrecognized manifest value")
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}
