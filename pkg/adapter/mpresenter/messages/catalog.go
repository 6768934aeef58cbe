// 指示: miu200521358
package messages

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	for key, en := range translationsEn {
		_ = message.SetString(language.Japanese, key, key)
		_ = message.SetString(language.English, key, en)
	}
}

// ParseLanguage は言語指定を解析する。未知の指定は日本語とする。
func ParseLanguage(value string) language.Tag {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "en", "en-us", "english":
		return language.English
	default:
		return language.Japanese
	}
}

// NewPrinter は言語指定に応じたプリンタを生成する。
func NewPrinter(lang string) *message.Printer {
	return message.NewPrinter(ParseLanguage(lang))
}
