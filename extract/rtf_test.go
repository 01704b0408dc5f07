package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRTFTextBasic(t *testing.T) {
	src := `{\rtf1\ansi{\fonttbl{\f0 Times New Roman;}}\f0 Hola \b mundo\b0.\par Segunda linea.}`

	got := RTFText([]byte(src))

	assert.Contains(t, got, "Hola mundo.")
	assert.Contains(t, got, "Segunda linea.")
	assert.NotContains(t, got, "Times New Roman")
}

func TestRTFTextParagraphsBecomeNewlines(t *testing.T) {
	src := `{\rtf1 Uno\par Dos\line Tres}`

	got := RTFText([]byte(src))

	assert.Equal(t, "Uno\nDos\nTres", got)
}

func TestRTFTextHexEscapes(t *testing.T) {
	// \'e9 is é in the default code page
	src := `{\rtf1 caf\'e9}`

	got := RTFText([]byte(src))

	assert.Equal(t, "café", got)
}

func TestRTFTextUnicodeEscapes(t *testing.T) {
	src := `{\rtf1 se\u241?or}`

	got := RTFText([]byte(src))

	assert.Contains(t, got, "señor")
}

func TestRTFTextNegativeUnicodeEscapes(t *testing.T) {
	// codepoints above 32767 are written as negative 16-bit values:
	// U+8A9E (語) is \u-30050
	src := `{\rtf1 idioma \u-30050?}`

	got := RTFText([]byte(src))

	assert.Equal(t, "idioma 語", got)
}

func TestRTFTextEscapedBraces(t *testing.T) {
	src := `{\rtf1 a\{b\}c\\d}`

	got := RTFText([]byte(src))

	assert.Equal(t, `a{b}c\d`, got)
}

func TestRTFTextSkipsIgnorableDestinations(t *testing.T) {
	src := `{\rtf1 visible{\*\generator Riched20;}texto}`

	got := RTFText([]byte(src))

	assert.Equal(t, "visibletexto", got)
	assert.NotContains(t, got, "Riched20")
}

func TestRTFTextSkipsMetadataGroups(t *testing.T) {
	src := `{\rtf1{\info{\author Secretaria;}}{\colortbl;\red0\green0\blue0;}Cuerpo}`

	got := RTFText([]byte(src))

	assert.Equal(t, "Cuerpo", got)
	assert.NotContains(t, got, "Secretaria")
}

func TestRTFTextIgnoresSourceNewlines(t *testing.T) {
	src := "{\\rtf1 una\nsola linea}"

	got := RTFText([]byte(src))

	assert.Equal(t, "unasola linea", got)
}
