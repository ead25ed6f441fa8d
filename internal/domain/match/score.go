package match

import (
	"bytes"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// Score is one side of one set. The zero value is an absent score.
// Present scores keep their raw text and are parsed when the match is classified.
type Score struct {
	raw     string
	present bool
}

// Points builds a present score from an integer.
func Points(n int) Score {
	return Score{raw: strconv.Itoa(n), present: true}
}

// RawScore builds a present score from feed text. Only JSON null is absent,
// so blank text stays present and fails to parse.
func RawScore(raw string) Score {
	return Score{raw: strings.TrimSpace(raw), present: true}
}

func (s Score) Present() bool {
	return s.present
}

func (s Score) Raw() string {
	return s.raw
}

// Int parses the score as a non-negative integer.
func (s Score) Int() (int, bool) {
	if !s.present {
		return 0, false
	}
	n, err := strconv.Atoi(s.raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (s Score) String() string {
	if !s.present {
		return "-"
	}
	return s.raw
}

// UnmarshalJSON accepts null, a JSON number or a JSON string.
func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = Score{}
		return nil
	}
	if data[0] == '"' {
		var text string
		if err := sonic.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = RawScore(text)
		return nil
	}
	*s = RawScore(string(data))
	return nil
}

// MarshalJSON writes absent scores as null, valid scores as numbers and malformed scores as their raw string.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.present {
		return []byte("null"), nil
	}
	if n, ok := s.Int(); ok {
		return []byte(strconv.Itoa(n)), nil
	}
	return sonic.Marshal(s.raw)
}
