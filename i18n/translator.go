package i18n

// Translator retrieves localized messages for schema construction error
// codes. data provides optional metadata to embed in the message.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "duplicate_name":
			return "名前が重複しています"
		case "invalid_schema":
			return "スキーマが不正です"
		case "unresolved_symbol":
			return "シンボルを解決できませんでした"
		case "name_mismatch":
			return "参照名が一致しません"
		case "index_out_of_range":
			return "インデックスが範囲外です"
		case "invalid_size":
			return "サイズが不正です"
		case "no_attribute":
			return "この種別は属性を持ちません"
		case "unknown_type":
			return "未知の型です"
		case "parse_error":
			return "解析エラー"
		case "duplicate_key":
			return "キーが重複しています"
		}
	default: // "en"
		switch code {
		case "duplicate_name":
			return "cannot add duplicate name"
		case "invalid_schema":
			return "schema node failed validation"
		case "unresolved_symbol":
			return "could not follow symbol"
		case "name_mismatch":
			return "symbolic name does not match the schema it references"
		case "index_out_of_range":
			return "index out of range"
		case "invalid_size":
			return "invalid fixed size"
		case "no_attribute":
			return "node kind does not carry this attribute"
		case "unknown_type":
			return "unknown type"
		case "parse_error":
			return "parse error"
		case "duplicate_key":
			return "duplicate key"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
