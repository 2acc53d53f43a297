// Package sceneio serialises neutral scenes for consumers other than the
// bundled HTML page.
package sceneio

import (
	"encoding/json"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/turtacn/qsphere/internal/domain/scene"
	"github.com/turtacn/qsphere/pkg/errors"
)

type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// Encoder writes a scene in one format.
type Encoder interface {
	Encode(w io.Writer, s *scene.Scene) error
	Format() Format
	ContentType() string
	Extension() string
}

type jsonEncoder struct{ indent bool }

func (e jsonEncoder) Encode(w io.Writer, s *scene.Scene) error {
	enc := json.NewEncoder(w)
	if e.indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(err, errors.ErrCodeSceneEncodeFailed, "json encode failed")
	}
	return nil
}

func (jsonEncoder) Format() Format      { return FormatJSON }
func (jsonEncoder) ContentType() string { return "application/json" }
func (jsonEncoder) Extension() string   { return ".json" }

type msgpackEncoder struct{}

func (msgpackEncoder) Encode(w io.Writer, s *scene.Scene) error {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(err, errors.ErrCodeSceneEncodeFailed, "msgpack encode failed")
	}
	return nil
}

func (msgpackEncoder) Format() Format      { return FormatMsgpack }
func (msgpackEncoder) ContentType() string { return "application/msgpack" }
func (msgpackEncoder) Extension() string   { return ".msgpack" }

var aliases = map[string]Format{
	"json":    FormatJSON,
	"msgpack": FormatMsgpack,
	"mpk":     FormatMsgpack,
}

// ParseFormat resolves a format name or alias, case-insensitively.
func ParseFormat(name string) (Format, error) {
	if f, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f, nil
	}
	return "", errors.Newf(errors.ErrCodeSceneFormatInvalid, "unknown scene format %q", name).
		WithDetail("supported=" + strings.Join(Formats(), ","))
}

// Formats lists the accepted format names.
func Formats() []string {
	out := make([]string, 0, len(aliases))
	for name := range aliases {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	return f, err == nil
}

// NewEncoder returns the encoder for name.  JSON output is indented.
func NewEncoder(name string) (Encoder, error) {
	f, err := ParseFormat(name)
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatMsgpack:
		return msgpackEncoder{}, nil
	default:
		return jsonEncoder{indent: true}, nil
	}
}

// Decode reads a scene written by an Encoder of the given format.
func Decode(r io.Reader, format Format) (*scene.Scene, error) {
	var s scene.Scene
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&s)
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(&s)
	default:
		return nil, errors.Newf(errors.ErrCodeSceneFormatInvalid, "unknown scene format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "scene decode failed")
	}
	return &s, nil
}

//Personal.AI order the ending
