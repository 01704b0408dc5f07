package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextPlain(t *testing.T) {
	svc := New(nil)

	text, err := svc.Text(context.Background(), []byte("cuerpo de la sentencia"), MimeText)

	require.NoError(t, err)
	assert.Equal(t, "cuerpo de la sentencia", text)
}

func TestTextRejectsMismatchedSignature(t *testing.T) {
	svc := New(nil)

	// RTF bytes declared as PDF
	_, err := svc.Text(context.Background(), []byte(`{\rtf1 hola}`), MimePDF)

	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestTextUnsupportedType(t *testing.T) {
	svc := New(nil)

	_, err := svc.Text(context.Background(), []byte("data"), "image/png")

	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestTextLegacyDocRejected(t *testing.T) {
	svc := New(nil)

	_, err := svc.Text(context.Background(), []byte{0xD0, 0xCF, 0x11, 0xE0, 0x00}, MimeDOC)

	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestTextPDFWithoutConverter(t *testing.T) {
	svc := New(nil)

	_, err := svc.Text(context.Background(), []byte("%PDF-1.7 ..."), MimePDF)

	assert.ErrorIs(t, err, ErrNoConverter)
}

func TestMimeForExtension(t *testing.T) {
	assert.Equal(t, MimePDF, MimeForExtension(".pdf"))
	assert.Equal(t, MimePDF, MimeForExtension(".PDF"))
	assert.Equal(t, MimeDOCX, MimeForExtension(".docx"))
	assert.Equal(t, MimeRTF, MimeForExtension(".rtf"))
	assert.Equal(t, MimeHTML, MimeForExtension(".htm"))
	assert.Equal(t, MimeText, MimeForExtension(".txt"))
	assert.Empty(t, MimeForExtension(".exe"))
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "corto", Preview("corto", 10))
	assert.Equal(t, "abc...", Preview("abcdefgh", 3))

	long := strings.Repeat("á", 20)
	got := Preview(long, 5)
	assert.Equal(t, strings.Repeat("á", 5)+"...", got)
}
