package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

func decodeJSON(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after the top-level value")
	}

	v, err := normalize(raw, levelNames)
	if err != nil {
		return nil, err
	}
	return asNested(v)
}

func encodeJSON(nested map[string]any) ([]byte, error) {
	literal := func(lit string) any { return json.Number(lit) }
	out, err := json.MarshalIndent(keepFloats(nested, literal), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
