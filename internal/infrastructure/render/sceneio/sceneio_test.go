package sceneio

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/qsphere/internal/domain/encoding"
	"github.com/turtacn/qsphere/internal/domain/scene"
	"github.com/turtacn/qsphere/pkg/errors"
)

func bellScene(t *testing.T) *scene.Scene {
	t.Helper()
	h := complex(1/math.Sqrt2, 0)
	enc, err := encoding.Encode([]complex128{h, 0, 0, h})
	require.NoError(t, err)
	return scene.Build(enc, scene.Options{ID: "bell"})
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("mpk")
	require.NoError(t, err)
	assert.Equal(t, FormatMsgpack, f)

	_, err = ParseFormat("yaml")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSceneFormatInvalid))
	assert.Contains(t, err.Error(), "supported=json,mpk,msgpack")
}

func TestFormatFromPath(t *testing.T) {
	f, ok := FormatFromPath("out/scene.msgpack")
	assert.True(t, ok)
	assert.Equal(t, FormatMsgpack, f)

	_, ok = FormatFromPath("scene.bin")
	assert.False(t, ok)
}

func TestEncoders_Metadata(t *testing.T) {
	j, err := NewEncoder("json")
	require.NoError(t, err)
	assert.Equal(t, "application/json", j.ContentType())
	assert.Equal(t, ".json", j.Extension())

	m, err := NewEncoder("msgpack")
	require.NoError(t, err)
	assert.Equal(t, FormatMsgpack, m.Format())
	assert.Equal(t, ".msgpack", m.Extension())

	_, err = NewEncoder("xml")
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	original := bellScene(t)
	for _, name := range []string{"json", "msgpack"} {
		t.Run(name, func(t *testing.T) {
			enc, err := NewEncoder(name)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, enc.Encode(&buf, original))
			require.NotZero(t, buf.Len())

			got, err := Decode(&buf, enc.Format())
			require.NoError(t, err)
			assert.Equal(t, original.ID, got.ID)
			assert.Equal(t, original.Qubits, got.Qubits)
			assert.Len(t, got.Primitives, len(original.Primitives))
			assert.Equal(t, original.Summarize().Arrows, got.Summarize().Arrows)
			assert.Equal(t, original.Layout, got.Layout)
			require.Len(t, got.States, 4)
			assert.InDelta(t, original.States[3].Real, got.States[3].Real, 1e-12)
			assert.Equal(t, original.States[3].Position, got.States[3].Position)
		})
	}
}

func TestMsgpackIsSmallerThanJSON(t *testing.T) {
	s := bellScene(t)
	var j, m bytes.Buffer
	require.NoError(t, jsonEncoder{}.Encode(&j, s))
	require.NoError(t, msgpackEncoder{}.Encode(&m, s))
	assert.Less(t, m.Len(), j.Len())
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(bytes.NewBufferString("{"), FormatJSON)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSerialization))

	_, err = Decode(bytes.NewBufferString("{}"), Format("xml"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeSceneFormatInvalid))
}

//Personal.AI order the ending
