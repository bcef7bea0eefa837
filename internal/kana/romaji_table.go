package kana

// romajiRule rewrites a leading hiragana sequence to its romaji form.
// rest is prepended to the remaining input after the match, which lets a
// sokuon entry emit the doubled consonant and re-queue the base kana.
type romajiRule struct {
	kana   string
	romaji string
	rest   string
}

// romajiRules is derived from the mozc preedit table
// (hiragana-romanji.tsv). Longest match wins; single kana with no rule
// pass through unchanged.
var romajiRules = []romajiRule{
	{"う゛ぁ", "VA", ""},
	{"う゛ぃ", "VI", ""},
	{"う゛", "VU", ""},
	{"う゛ぇ", "VE", ""},
	{"う゛ぉ", "VO", ""},
	{"う゛ゃ", "VYA", ""},
	{"う゛ゅ", "VYU", ""},
	{"う゛ょ", "VYO", ""},
	{"っう゛", "V", "ゔ"},
	{"ゔぁ", "VA", ""},
	{"ゔぃ", "VI", ""},
	{"ゔ", "VU", ""},
	{"ゔぇ", "VE", ""},
	{"ゔぉ", "VO", ""},
	{"ゔゃ", "VYA", ""},
	{"ゔゅ", "VYU", ""},
	{"ゔょ", "VYO", ""},
	{"っゔ", "V", "ゔ"},
	{"っうぁ", "WWA", ""},
	{"っうぃ", "WWI", ""},
	{"っう", "WWU", ""},
	{"っうぇ", "WWE", ""},
	{"っうぉ", "WWO", ""},
	{"っぁ", "XXA", ""},
	{"っぃ", "XXI", ""},
	{"っぅ", "XXU", ""},
	{"っぇ", "XXE", ""},
	{"っぉ", "XXO", ""},
	{"っか", "KKA", ""},
	{"っき", "K", "き"},
	{"っく", "KKU", ""},
	{"っけ", "KKE", ""},
	{"っこ", "KKO", ""},
	{"っが", "GGA", ""},
	{"っぎ", "G", "ぎ"},
	{"っぐ", "GGU", ""},
	{"っげ", "GGE", ""},
	{"っご", "GGO", ""},
	{"っさ", "SSA", ""},
	{"っし", "S", "し"},
	{"っす", "SSU", ""},
	{"っせ", "SSE", ""},
	{"っそ", "SSO", ""},
	{"っざ", "ZZA", ""},
	{"っじ", "Z", "じ"},
	{"っず", "ZZU", ""},
	{"っぜ", "ZZE", ""},
	{"っぞ", "ZZO", ""},
	{"った", "TTA", ""},
	{"っち", "C", "ち"},
	{"っつ", "TTU", ""},
	{"って", "TTE", ""},
	{"っと", "TTO", ""},
	{"っだ", "DDA", ""},
	{"っぢ", "D", "ぢ"},
	{"っづ", "DDU", ""},
	{"っで", "DDE", ""},
	{"っど", "DDO", ""},
	{"っは", "HHA", ""},
	{"っひ", "H", "ひ"},
	{"っふ", "HHU", ""},
	{"っへ", "HHE", ""},
	{"っほ", "HHO", ""},
	{"っば", "BBA", ""},
	{"っび", "B", "び"},
	{"っぶ", "BBU", ""},
	{"っべ", "BBE", ""},
	{"っぼ", "BBO", ""},
	{"っぱ", "PPA", ""},
	{"っぴ", "P", "ぴ"},
	{"っぷ", "PPU", ""},
	{"っぺ", "PPE", ""},
	{"っぽ", "PPO", ""},
	{"っま", "MMA", ""},
	{"っみ", "M", "み"},
	{"っむ", "MMU", ""},
	{"っめ", "MME", ""},
	{"っも", "MMO", ""},
	{"っや", "YYA", ""},
	{"っゆ", "YYU", ""},
	{"っよ", "YYO", ""},
	{"っゃ", "XXYA", ""},
	{"っゅ", "XXYU", ""},
	{"っょ", "XXYO", ""},
	{"っら", "RRA", ""},
	{"っり", "R", "り"},
	{"っる", "RRU", ""},
	{"っれ", "RRE", ""},
	{"っろ", "RRO", ""},
	{"っゎ", "XXWA", ""},
	{"っわ", "WWA", ""},
	{"っゐ", "WWI", ""},
	{"っゑ", "WWE", ""},
	{"っを", "WWO", ""},
	{"いぇ", "YE", ""},
	{"うぁ", "WA", ""},
	{"きゃ", "KYA", ""},
	{"きぃ", "KYI", ""},
	{"きゅ", "KYU", ""},
	{"きぇ", "KYE", ""},
	{"きょ", "KYO", ""},
	{"ぎゃ", "GYA", ""},
	{"ぎぃ", "GYI", ""},
	{"ぎゅ", "GYU", ""},
	{"ぎぇ", "GYE", ""},
	{"ぎょ", "GYO", ""},
	{"くぁ", "QA", ""},
	{"くぃ", "QI", ""},
	{"くぇ", "QE", ""},
	{"くぉ", "QO", ""},
	{"しゃ", "SHA", ""},
	{"しぃ", "SHI", ""},
	{"しゅ", "SHU", ""},
	{"しぇ", "SHE", ""},
	{"しょ", "SHO", ""},
	{"じゃ", "JA", ""},
	{"じぃ", "ZYI", ""},
	{"じゅ", "JU", ""},
	{"じぇ", "JE", ""},
	{"じょ", "JO", ""},
	{"ちゃ", "CHA", ""},
	{"ちゅ", "CHU", ""},
	{"ちぇ", "CHE", ""},
	{"ちょ", "CYO", ""},
	{"ぢゃ", "DYA", ""},
	{"ぢぃ", "DYI", ""},
	{"ぢゅ", "DYU", ""},
	{"ぢぇ", "DYE", ""},
	{"ぢょ", "DYO", ""},
	{"つぁ", "TSA", ""},
	{"つぃ", "TSI", ""},
	{"つぇ", "TSE", ""},
	{"つぉ", "TSO", ""},
	{"てゃ", "THA", ""},
	{"てぃ", "THI", ""},
	{"てゅ", "THU", ""},
	{"てぇ", "THE", ""},
	{"てょ", "THO", ""},
	{"でゃ", "DHA", ""},
	{"でぃ", "DHI", ""},
	{"でゅ", "DHU", ""},
	{"でぇ", "DHE", ""},
	{"でょ", "DHO", ""},
	{"とぁ", "TWA", ""},
	{"とぃ", "TWI", ""},
	{"とぅ", "TWU", ""},
	{"とぇ", "TWE", ""},
	{"とぉ", "TWO", ""},
	{"どぁ", "DWA", ""},
	{"どぃ", "DWI", ""},
	{"どぅ", "DWU", ""},
	{"どぇ", "DWE", ""},
	{"どぉ", "DWO", ""},
	{"にゃ", "NYA", ""},
	{"にぃ", "NYI", ""},
	{"にゅ", "NYU", ""},
	{"にぇ", "NYE", ""},
	{"にょ", "NYO", ""},
	{"ひゃ", "HYA", ""},
	{"ひぃ", "HYI", ""},
	{"ひゅ", "HYU", ""},
	{"ひぇ", "HYE", ""},
	{"ひょ", "HYO", ""},
	{"びゃ", "BYA", ""},
	{"びぃ", "BYI", ""},
	{"びゅ", "BYU", ""},
	{"びぇ", "BYE", ""},
	{"びょ", "BYO", ""},
	{"ぴゃ", "PYA", ""},
	{"ぴぃ", "PYI", ""},
	{"ぴゅ", "PYU", ""},
	{"ぴぇ", "PYE", ""},
	{"ぴょ", "PYO", ""},
	{"ふゃ", "FYA", ""},
	{"ふゅ", "FYU", ""},
	{"ふょ", "FYO", ""},
	{"みゃ", "MYA", ""},
	{"みぃ", "MYI", ""},
	{"みゅ", "MYU", ""},
	{"みぇ", "MYE", ""},
	{"みょ", "MYO", ""},
	{"りゃ", "RYA", ""},
	{"りぃ", "RYI", ""},
	{"りゅ", "RYU", ""},
	{"りぇ", "RYE", ""},
	{"りょ", "RYO", ""},
	{"んあ", "NNA", ""},
	{"んい", "NNI", ""},
	{"んう", "NNU", ""},
	{"んえ", "NNE", ""},
	{"んお", "NNO", ""},
	{"んな", "NNNA", ""},
	{"んに", "NNNI", ""},
	{"んぬ", "NNNU", ""},
	{"んね", "NNNE", ""},
	{"んの", "NNNO", ""},
	{"あ", "A", ""},
	{"い", "I", ""},
	{"う", "U", ""},
	{"え", "E", ""},
	{"お", "O", ""},
	{"ぁ", "XA", ""},
	{"ぃ", "XI", ""},
	{"ぅ", "XU", ""},
	{"ぇ", "XE", ""},
	{"ぉ", "XO", ""},
	{"か", "KA", ""},
	{"き", "KI", ""},
	{"く", "KU", ""},
	{"け", "KE", ""},
	{"こ", "KO", ""},
	{"ヵ", "XKA", ""},
	{"ヶ", "XKE", ""},
	{"が", "GA", ""},
	{"ぎ", "GI", ""},
	{"ぐ", "GU", ""},
	{"げ", "GE", ""},
	{"ご", "GO", ""},
	{"さ", "SA", ""},
	{"し", "SHI", ""},
	{"す", "SU", ""},
	{"せ", "SE", ""},
	{"そ", "SO", ""},
	{"ざ", "ZA", ""},
	{"じ", "JI", ""},
	{"ず", "ZU", ""},
	{"ぜ", "ZE", ""},
	{"ぞ", "ZO", ""},
	{"た", "TA", ""},
	{"ち", "CHI", ""},
	{"つ", "TSU", ""},
	{"て", "TE", ""},
	{"と", "TO", ""},
	{"だ", "DA", ""},
	{"ぢ", "DI", ""},
	{"づ", "DU", ""},
	{"で", "DE", ""},
	{"ど", "DO", ""},
	{"っ", "XTU", ""},
	{"な", "NA", ""},
	{"に", "NI", ""},
	{"ぬ", "NU", ""},
	{"ね", "NE", ""},
	{"の", "NO", ""},
	{"は", "HA", ""},
	{"ひ", "HI", ""},
	{"ふ", "HU", ""},
	{"へ", "HE", ""},
	{"ほ", "HO", ""},
	{"ば", "BA", ""},
	{"び", "BI", ""},
	{"ぶ", "BU", ""},
	{"べ", "BE", ""},
	{"ぼ", "BO", ""},
	{"ぱ", "PA", ""},
	{"ぴ", "PI", ""},
	{"ぷ", "PU", ""},
	{"ぺ", "PE", ""},
	{"ぽ", "PO", ""},
	{"ま", "MA", ""},
	{"み", "MI", ""},
	{"む", "MU", ""},
	{"め", "ME", ""},
	{"も", "MO", ""},
	{"ゃ", "XYA", ""},
	{"や", "YA", ""},
	{"ゅ", "XYU", ""},
	{"ゆ", "YU", ""},
	{"ょ", "XYO", ""},
	{"よ", "YO", ""},
	{"ら", "RA", ""},
	{"り", "RI", ""},
	{"る", "RU", ""},
	{"れ", "RE", ""},
	{"ろ", "RO", ""},
	{"ゎ", "XWA", ""},
	{"わ", "WA", ""},
	{"ゐ", "WI", ""},
	{"ゑ", "WE", ""},
	{"を", "WO", ""},
	{"ん", "N", ""},
	{"ー", "-", ""},
	{"〜", "~", ""},
}
