package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase latin", "john smith", "JOHN SMITH"},
		{"already upper", "JOHN SMITH", "JOHN SMITH"},
		{"accents stripped", "José García", "JOSE GARCIA"},
		{"apostrophe deleted", "O'Hearn", "OHEARN"},
		{"hyphen becomes space", "Jean-Pierre", "JEAN PIERRE"},
		{"digits become spaces", "abc123", "ABC"},
		{"trailing punctuation trimmed", "a-", "A"},
		{"surrounding space trimmed", "  anna  ", "ANNA"},
		{"empty", "", ""},
		{"only punctuation", "...", ""},
		{"cjk preserved", "山田太郎", "山田太郎"},
		{"kana preserved", "やよい", "やよい"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"José García", "O'Hearn", "山田 太郎", "Jean-Pierre d'Arc", "ＡＢＣ", "a-", "abc123"}
	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "input %q", s)
	}
}

func TestIsolateCJK(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"latin untouched", "JOHN", "JOHN"},
		{"each ideograph isolated", "山田", " 山  田 "},
		{"mixed", "山田TARO", " 山  田 TARO"},
		{"extension a isolated", "㐀", " 㐀 "},
		{"kana not isolated", "やよい", "やよい"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsolateCJK(tt.input))
		})
	}
}

func TestNewQuery(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantWords []string
	}{
		{"latin words", "John Smith", []string{"JOHN", "SMITH"}},
		{"cjk splits per ideograph", "山田太郎", []string{"山", "田", "太", "郎"}},
		{"kana stays whole", "やよい", []string{"やよい"}},
		{"mixed scripts", "山田 hanako", []string{"山", "田", "HANAKO"}},
		{"empty input", "", nil},
		{"punctuation only", "?!", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuery(tt.input)
			assert.Equal(t, tt.wantWords, q.Words)
			assert.Equal(t, tt.input, q.Raw)
			assert.Equal(t, len(tt.wantWords) == 0, q.IsEmpty())
		})
	}
}

func TestNewQuery_Deterministic(t *testing.T) {
	a := NewQuery("山田 Hanako")
	b := NewQuery("山田 Hanako")
	assert.Equal(t, a, b)
}
