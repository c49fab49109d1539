package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/document"
)

func TestExtractPlainText(t *testing.T) {
	text, err := document.Extract("fir.txt", []byte("FIR No. 123/2024\nPS Central\nTheft of a motorcycle."))
	require.NoError(t, err)
	assert.Equal(t, "FIR No. 123/2024 PS Central Theft of a motorcycle.", text)
}

func TestExtractMarkdown(t *testing.T) {
	text, err := document.Extract("fir.md", []byte("# FIR 123/2024\n\nTheft of a motorcycle."))
	require.NoError(t, err)
	assert.Contains(t, text, "Theft of a motorcycle.")
}

func TestExtractHTMLStripsChrome(t *testing.T) {
	page := `<html><head><script>track()</script></head><body>
		<nav>Home | About</nav>
		<p>The complainant reported theft of a motorcycle.</p>
		<footer>© 2024</footer>
	</body></html>`

	text, err := document.Extract("fir.html", []byte(page))
	require.NoError(t, err)
	assert.Contains(t, text, "theft of a motorcycle")
	assert.NotContains(t, text, "track()")
	assert.NotContains(t, text, "Home | About")
}

func TestExtractRejectsUnsupportedFormats(t *testing.T) {
	for _, name := range []string{"fir.pdf", "fir.docx", "fir.png", "fir"} {
		_, err := document.Extract(name, []byte("data"))
		assert.ErrorIs(t, err, document.ErrUnsupportedFormat, name)
	}
}

func TestExtractRejectsBinaryAsText(t *testing.T) {
	_, err := document.Extract("fir.txt", []byte{0xff, 0xfe, 0x00, 0x80})
	assert.Error(t, err)
}

func TestExtractRejectsEmptyDocument(t *testing.T) {
	_, err := document.Extract("fir.txt", []byte("   \n\t  "))
	assert.ErrorIs(t, err, document.ErrNoText)
}

func TestCleanTextNormalizesQuotesAndWhitespace(t *testing.T) {
	in := "The accused said “i was’nt there”.\n\nCase\tclosed."
	assert.Equal(t, `The accused said "i was'nt there". Case closed.`, document.CleanText(in))
}

func TestCleanTextEmptyInput(t *testing.T) {
	assert.Equal(t, "", document.CleanText("  \n "))
}
