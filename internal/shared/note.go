package shared

import (
	"bytes"
	"encoding/json"
	"io"
	"sort"

	"github.com/pkg/errors"
)

var ErrNoteNotObject = errors.New("note is not a JSON object")

// Note is a server-assigned id plus whatever fields the client sent.
// Fields never holds the "id" key while ID is set.
type Note struct {
	ID     string
	Fields map[string]any
}

// NewNote builds a note from client fields. The given id always wins over
// a client supplied "id" field.
func NewNote(id string, fields map[string]any) Note {
	f := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "id" {
			continue
		}
		f[k] = v
	}
	return Note{ID: id, Fields: f}
}

func (n Note) Get(key string) (any, bool) {
	if key == "id" && n.ID != "" {
		return n.ID, true
	}
	v, ok := n.Fields[key]
	return v, ok
}

// MarshalJSON writes the client fields (sorted) followed by "id".
func (n Note) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(n.Fields))
	for k := range n.Fields {
		if k == "id" && n.ID != "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, k, n.Fields[k]); err != nil {
			return nil, err
		}
	}
	if n.ID != "" {
		if len(keys) > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, "id", n.ID); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (n *Note) UnmarshalJSON(b []byte) error {
	note, err := DecodeNote(b)
	if err != nil {
		return err
	}
	*n = note
	return nil
}

// DecodeNote parses one stored or submitted note object.
// A non-empty string "id" becomes the note ID; anything else stays a field.
func DecodeNote(b []byte) (Note, error) {
	fields, err := DecodeFields(b)
	if err != nil {
		return Note{}, err
	}
	n := Note{Fields: fields}
	if id, ok := fields["id"].(string); ok && id != "" {
		n.ID = id
		delete(fields, "id")
	}
	return n, nil
}

// DecodeFields parses a single JSON object. Numbers are kept as json.Number
// so they are written back exactly as received.
func DecodeFields(b []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrNoteNotObject
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, errors.Wrap(err, "decode note")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("decode note: trailing data after object")
	}
	return fields, nil
}

// MarshalCompact encodes v without HTML escaping, matching what browsers
// and the notes page send.
func MarshalCompact(v any) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(b.Bytes(), "\n"), nil
}

func writeMember(buf *bytes.Buffer, key string, v any) error {
	kb, err := MarshalCompact(key)
	if err != nil {
		return err
	}
	vb, err := MarshalCompact(v)
	if err != nil {
		return errors.Wrapf(err, "encode field %q", key)
	}
	buf.Write(kb)
	buf.WriteByte(':')
	buf.Write(vb)
	return nil
}
