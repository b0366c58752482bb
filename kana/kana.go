// Package kana holds the script predicates and the katakana/hiragana
// mapping used for reading display. It has no dictionary dependency.
package kana

import (
	"fmt"
	"strings"
	"unicode"
)

// Script selects the kana script readings are displayed in.
type Script int

const (
	Hiragana Script = iota
	Katakana
)

func (s Script) String() string {
	if s == Katakana {
		return "katakana"
	}
	return "hiragana"
}

// ParseScript accepts "hiragana" or "katakana" (case-insensitive); empty means hiragana.
func ParseScript(name string) (Script, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "hiragana":
		return Hiragana, nil
	case "katakana":
		return Katakana, nil
	}
	return Hiragana, fmt.Errorf("unknown kana script %q", name)
}

// Convert maps s into the given script.
func Convert(s string, to Script) string {
	if to == Katakana {
		return ToKatakana(s)
	}
	return ToHiragana(s)
}

// ToHiragana converts katakana to hiragana. Characters without a hiragana
// counterpart (ー, ヷ..ヺ, half-width forms) are left alone.
func ToHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 0x30A1 && r <= 0x30F6 {
			return r - 0x60
		}
		if r == 0x30FD || r == 0x30FE { // ヽヾ
			return r - 0x60
		}
		return r
	}, s)
}

// ToKatakana converts hiragana to katakana.
func ToKatakana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 0x3041 && r <= 0x3096 {
			return r + 0x60
		}
		if r == 0x309D || r == 0x309E { // ゝゞ
			return r + 0x60
		}
		return r
	}, s)
}

// IsHiragana reports whether r is in the hiragana block.
func IsHiragana(r rune) bool {
	return r >= 0x3040 && r <= 0x309F
}

// IsKatakana reports whether r is in the katakana block, including the
// prolonged sound mark and half-width katakana.
func IsKatakana(r rune) bool {
	return (r >= 0x30A0 && r <= 0x30FF) || (r >= 0xFF66 && r <= 0xFF9F)
}

// IsKana returns true if rune is Hiragana or Katakana
func IsKana(r rune) bool {
	return IsHiragana(r) || IsKatakana(r)
}

// IsKanji reports whether r is an ideographic character. The iteration
// mark 々 and 〆 count as kanji.
func IsKanji(r rune) bool {
	return r == '〆' || unicode.Is(unicode.Han, r)
}

// ContainsKanji reports whether any rune of s is ideographic.
func ContainsKanji(s string) bool {
	for _, r := range s {
		if IsKanji(r) {
			return true
		}
	}
	return false
}

// AllKana reports whether s is non-empty and made only of kana.
func AllKana(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !IsKana(r) {
			return false
		}
	}
	return true
}
