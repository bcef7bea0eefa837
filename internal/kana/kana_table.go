package kana

// hiraganaToKatakana maps each hiragana rune (and the long-vowel mark) to
// its katakana counterpart.
var hiraganaToKatakana = map[rune]rune{
	'ぁ': 'ァ',
	'ぃ': 'ィ',
	'ぅ': 'ゥ',
	'ぇ': 'ェ',
	'ぉ': 'ォ',
	'っ': 'ッ',
	'ゃ': 'ャ',
	'ゅ': 'ュ',
	'ょ': 'ョ',
	'ゎ': 'ヮ',
	'ヶ': 'ヶ',
	'ヵ': 'ヵ',
	'が': 'ガ',
	'ぎ': 'ギ',
	'ぐ': 'グ',
	'げ': 'ゲ',
	'ご': 'ゴ',
	'ざ': 'ザ',
	'じ': 'ジ',
	'ず': 'ズ',
	'ぜ': 'ゼ',
	'ぞ': 'ゾ',
	'だ': 'ダ',
	'ぢ': 'ヂ',
	'づ': 'ヅ',
	'で': 'デ',
	'ど': 'ド',
	'ば': 'バ',
	'び': 'ビ',
	'ぶ': 'ブ',
	'べ': 'ベ',
	'ぼ': 'ボ',
	'ぱ': 'パ',
	'ぴ': 'ピ',
	'ぷ': 'プ',
	'ぺ': 'ペ',
	'ぽ': 'ポ',
	'ゔ': 'ヴ',
	'ゐ': 'イ',
	'ゑ': 'エ',
	'あ': 'ア',
	'い': 'イ',
	'う': 'ウ',
	'え': 'エ',
	'お': 'オ',
	'か': 'カ',
	'き': 'キ',
	'く': 'ク',
	'け': 'ケ',
	'こ': 'コ',
	'さ': 'サ',
	'し': 'シ',
	'す': 'ス',
	'せ': 'セ',
	'そ': 'ソ',
	'た': 'タ',
	'ち': 'チ',
	'つ': 'ツ',
	'て': 'テ',
	'と': 'ト',
	'な': 'ナ',
	'に': 'ニ',
	'ぬ': 'ヌ',
	'ね': 'ネ',
	'の': 'ノ',
	'は': 'ハ',
	'ひ': 'ヒ',
	'ふ': 'フ',
	'へ': 'ヘ',
	'ほ': 'ホ',
	'ま': 'マ',
	'み': 'ミ',
	'む': 'ム',
	'め': 'メ',
	'も': 'モ',
	'や': 'ヤ',
	'ゆ': 'ユ',
	'よ': 'ヨ',
	'ら': 'ラ',
	'り': 'リ',
	'る': 'ル',
	'れ': 'レ',
	'ろ': 'ロ',
	'わ': 'ワ',
	'を': 'ヲ',
	'ん': 'ン',
	'ー': 'ー',
}

// katakanaToHiragana is the inverse of hiraganaToKatakana. The historical
// katakana ヰ/ヱ fold into い/え rather than the obsolete ゐ/ゑ.
var katakanaToHiragana = map[rune]rune{}

func init() {
	for h, k := range hiraganaToKatakana {
		katakanaToHiragana[k] = h
	}
	katakanaToHiragana['エ'] = 'え'
	katakanaToHiragana['イ'] = 'い'
}
