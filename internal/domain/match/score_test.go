package match

import (
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_UnmarshalJSON(t *testing.T) {
	var payload struct {
		Number  Score `json:"number"`
		Text    Score `json:"text"`
		Null    Score `json:"null"`
		Blank   Score `json:"blank"`
		Garbage Score `json:"garbage"`
		Missing Score `json:"missing"`
	}
	err := sonic.Unmarshal([]byte(`{"number":25,"text":"23","null":null,"blank":"  ","garbage":"abc"}`), &payload)
	require.NoError(t, err)

	n, ok := payload.Number.Int()
	assert.True(t, ok)
	assert.Equal(t, 25, n)

	n, ok = payload.Text.Int()
	assert.True(t, ok)
	assert.Equal(t, 23, n)

	assert.False(t, payload.Null.Present())
	assert.False(t, payload.Missing.Present())

	assert.True(t, payload.Blank.Present())
	_, ok = payload.Blank.Int()
	assert.False(t, ok)

	assert.True(t, payload.Garbage.Present())
	_, ok = payload.Garbage.Int()
	assert.False(t, ok)
}

func TestScore_MarshalJSON(t *testing.T) {
	out, err := sonic.Marshal([]Score{Points(25), RawScore("x1"), {}})
	require.NoError(t, err)
	assert.JSONEq(t, `[25,"x1",null]`, string(out))
}
