package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadRoundTrip(t *testing.T) {
	in := clocRecord{Lines: 42, IsTest: true}
	data, err := encodePayload(in)
	require.NoError(t, err)

	var out clocRecord
	require.NoError(t, decodePayload(data, &out))
	assert.Equal(t, in, out)
}

func TestDecodePayload_RejectsForeignVersion(t *testing.T) {
	data, err := encodePayload(clocRecord{Lines: 1})
	require.NoError(t, err)
	data[0] = 99

	var out clocRecord
	assert.Error(t, decodePayload(data, &out))
}

func TestDecodePayload_RejectsEmpty(t *testing.T) {
	var out clocRecord
	assert.Error(t, decodePayload(nil, &out))
}
