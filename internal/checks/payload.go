package checks

import (
	"bytes"
	"encoding/gob"

	"go.trai.ch/zerr"
)

// payloadVersion is the compatibility tag prefixed to every cached payload.
// The cache itself treats payloads as opaque bytes; each check owns its own
// (de)serialization and bumps this tag when its record shape changes.
const payloadVersion byte = 1

func encodePayload(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(payloadVersion)
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, zerr.Wrap(err, "failed to encode cache payload")
	}
	return buf.Bytes(), nil
}

func decodePayload(data []byte, v any) error {
	if len(data) == 0 || data[0] != payloadVersion {
		return zerr.New("incompatible cache payload version")
	}
	if err := gob.NewDecoder(bytes.NewReader(data[1:])).Decode(v); err != nil {
		return zerr.Wrap(err, "failed to decode cache payload")
	}
	return nil
}
