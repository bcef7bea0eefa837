package kana

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"hiragana", "やよい", true},
		{"katakana", "ヤヨイ", true},
		{"halfwidth katakana", "ﾔﾖｲ", true},
		{"fullwidth latin", "ＡＢＣ", true},
		{"ascii", "yayoi", false},
		{"kanji only", "山田", false},
		{"mixed kanji and kana", "三浦あずさ", true},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldNormalize(tt.input))
		})
	}
}

func TestNormalizeJapanese(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"katakana folds to hiragana", "ヤヨイ", "やよい"},
		{"halfwidth katakana folds", "ﾔﾖｲ", "やよい"},
		{"fullwidth latin folds to ascii", "ｙａｙｏｉ", "YAYOI"},
		{"hiragana unchanged", "やよい", "やよい"},
		{"punctuation becomes space", "やよい・はなこ", "やよい はなこ"},
		{"kanji untouched", "山田はなこ", "山田はなこ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeJapanese(tt.input))
		})
	}
}

func TestKatakanaToHiragana(t *testing.T) {
	assert.Equal(t, "やよい", KatakanaToHiragana("ヤヨイ"))
	assert.Equal(t, "えいが", KatakanaToHiragana("エイガ"))
	assert.Equal(t, "latin山", KatakanaToHiragana("latin山"))
}

func TestIsHiragana(t *testing.T) {
	assert.True(t, IsHiragana("やよい"))
	assert.False(t, IsHiragana("ヤヨイ"))
	assert.False(t, IsHiragana("やよいY"))
	assert.False(t, IsHiragana(""))
}

func TestHiraganaToRomaji(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain syllables", "ひらがな", "HIRAGANA"},
		{"name", "やよい", "YAYOI"},
		{"sokuon doubles consonant", "きっと", "KITTO"},
		{"digraph", "きょこ", "KYOKO"},
		{"long o collapses", "おおた", "OTA"},
		{"long u collapses", "ゆうき", "YUKI"},
		{"ou collapses", "とうきょう", "TOKYO"},
		{"non-kana passes through", "山だ", "山DA"},
		{"ascii passes through", "abc", "abc"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HiraganaToRomaji(tt.input))
		})
	}
}

func TestAdditionalTokens(t *testing.T) {
	t.Run("two hiragana tokens get romaji and concatenations", func(t *testing.T) {
		got := AdditionalTokens([]string{"やまだ", "はなこ"})
		assert.Equal(t, []string{"YAMADA", "HANAKO", "やまだはなこ", "はなこやまだ"}, got)
	})

	t.Run("non-hiragana token suppresses concatenations", func(t *testing.T) {
		got := AdditionalTokens([]string{"やまだ", "HANAKO"})
		assert.Equal(t, []string{"YAMADA"}, got)
	})

	t.Run("three tokens get no concatenations", func(t *testing.T) {
		got := AdditionalTokens([]string{"やまだ", "はなこ", "ゆき"})
		assert.Equal(t, []string{"YAMADA", "HANAKO", "YUKI"}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, AdditionalTokens(nil))
	})
}
