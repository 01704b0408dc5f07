package extract

import (
	"bytes"
	"fmt"
)

// Magic-byte signatures for the accepted binary formats. DOCX shares the
// ZIP signature with every other Office Open XML container, which is as
// precise as a prefix check gets.
var fileSignatures = map[string][][]byte{
	MimePDF:  {[]byte("%PDF")},
	MimeDOCX: {[]byte("PK")},
	MimeRTF:  {[]byte(`{\rtf`), []byte(`{rtf`)},
	MimeRTF2: {[]byte(`{\rtf`), []byte(`{rtf`)},
	MimeDOC:  {{0xD0, 0xCF, 0x11, 0xE0}, {0x00, 0x01, 0x00, 0x00}, {0xFE, 0x37, 0x00, 0x23}},
}

// Sniff detects the real MIME type of file bytes from their signature.
// Returns an empty string when no known signature matches.
func Sniff(data []byte) string {
	for _, mime := range []string{MimePDF, MimeRTF, MimeDOC, MimeDOCX} {
		for _, sig := range fileSignatures[mime] {
			if bytes.HasPrefix(data, sig) {
				return mime
			}
		}
	}
	return ""
}

// VerifyDeclaredType rejects files whose bytes contradict the declared
// MIME type. Text-based types have no signature and pass through.
func VerifyDeclaredType(data []byte, declared string) error {
	sigs, ok := fileSignatures[declared]
	if !ok {
		return nil
	}
	for _, sig := range sigs {
		if bytes.HasPrefix(data, sig) {
			return nil
		}
	}
	detected := Sniff(data)
	if detected == "" {
		return fmt.Errorf("%w: declared %s, signature unrecognized", ErrTypeMismatch, declared)
	}
	if detected == declared || (isRTF(detected) && isRTF(declared)) {
		return nil
	}
	return fmt.Errorf("%w: declared %s, detected %s", ErrTypeMismatch, declared, detected)
}

func isRTF(mime string) bool {
	return mime == MimeRTF || mime == MimeRTF2
}
