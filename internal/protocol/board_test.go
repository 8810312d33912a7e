package protocol

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"Alice", "Alice"},
		{"ABCDEFGHIJKLMNO", "ABCDEFGHIJKLMNO"},
		{"ABCDEFGHIJKLMNOP", "ABCDEFGHIJKLMNO"},
		{"日本語の名前はとても長いですね本当に", "日本語の名前はとても長いですね"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TruncateName(tt.in), "TruncateName(%q)", tt.in)
	}
}

func TestBoard_InsertSortsAndCaps(t *testing.T) {
	var b Board
	for i := 1; i <= 20; i++ {
		b = b.Insert(Entry{Name: strings.Repeat("A", 20)[:15], Score: i})
	}

	require.Len(t, b, MaxEntries)
	for i, e := range b {
		assert.Equal(t, 20-i, e.Score)
		assert.Equal(t, "AAAAAAAAAAAAAAA", e.Name)
	}
}

func TestBoard_InsertIsStable(t *testing.T) {
	b := Board{{Name: "first", Score: 5}}
	b = b.Insert(Entry{Name: "second", Score: 5})
	b = b.Insert(Entry{Name: "top", Score: 9})

	assert.Equal(t, Board{
		{Name: "top", Score: 9},
		{Name: "first", Score: 5},
		{Name: "second", Score: 5},
	}, b)
}

func TestBoard_InsertDoesNotMutate(t *testing.T) {
	b := Board{{Name: "a", Score: 1}}
	_ = b.Insert(Entry{Name: "b", Score: 2})

	assert.Equal(t, Board{{Name: "a", Score: 1}}, b)
}

func TestIsTopScore(t *testing.T) {
	full := make(Board, MaxEntries)
	for i := range full {
		full[i] = Entry{Name: "p", Score: 100 - i*10}
	}
	// last place holds 10

	tests := []struct {
		name  string
		board Board
		score int
		want  bool
	}{
		{"empty board", nil, 1, true},
		{"zero never qualifies", nil, 0, false},
		{"short board", full[:3], 1, true},
		{"beats last", full, 11, true},
		{"ties last", full, 10, false},
		{"below last", full, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTopScore(tt.board, tt.score))
		})
	}
}

func TestEncodeDecodeBoard(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeBoard(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, EncodeBoard(&buf, Board{{Name: "A", Score: 3}}))
	assert.Contains(t, buf.String(), "\n  {\n    \"name\": \"A\",")

	b, err := DecodeBoard(&buf)
	require.NoError(t, err)
	assert.Equal(t, Board{{Name: "A", Score: 3}}, b)
}

func TestDecodeBoard_Errors(t *testing.T) {
	_, err := DecodeBoard(strings.NewReader("{not json"))
	assert.Error(t, err)

	b, err := DecodeBoard(strings.NewReader("null"))
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestEncodeMessage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeMessage(&buf, MsgInvalid))
	assert.JSONEq(t, `{"message":"invalid data"}`, buf.String())
}
