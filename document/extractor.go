// Package document extracts plain text from uploaded complaint documents.
// Formats without a supported extractor are rejected up front, before any
// model call is attempted.
package document

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"golang.org/x/net/html"
)

// ErrUnsupportedFormat marks an upload whose format has no extractor.
var ErrUnsupportedFormat = errors.New("unsupported file type")

// ErrNoText marks a document that parsed but yielded no readable text.
var ErrNoText = errors.New("could not extract readable text from the document")

// supportedExtensions lists the formats Extract handles.
var supportedExtensions = []string{"txt", "md", "html", "htm"}

// htmlConverter is shared; md.Converter is safe for concurrent use.
var htmlConverter = newHTMLConverter()

func newHTMLConverter() *md.Converter {
	conv := md.NewConverter("", true, nil)
	conv.Use(plugin.GitHubFlavored())
	return conv
}

// Extract returns the plain text of an uploaded file, cleaned for prompt
// embedding. The extension decides the extractor; unknown extensions fail
// with ErrUnsupportedFormat.
func Extract(filename string, data []byte) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

	var (
		text string
		err  error
	)
	switch ext {
	case "txt", "md":
		text, err = extractPlain(data)
	case "html", "htm":
		text, err = extractHTML(data)
	default:
		return "", fmt.Errorf("%w %q, allowed types: %s",
			ErrUnsupportedFormat, ext, strings.Join(supportedExtensions, ", "))
	}
	if err != nil {
		return "", err
	}

	text = CleanText(text)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// extractPlain validates the bytes as UTF-8 text.
func extractPlain(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("file is not valid UTF-8 text")
	}
	return string(data), nil
}

// extractHTML strips chrome elements from the document and converts the
// remainder to markdown, which models handle better than raw tags.
func extractHTML(data []byte) (string, error) {
	doc, err := html.Parse(strings.NewReader(string(data)))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	removeElements(doc, []string{
		"nav", "header", "footer", "aside", "script", "style", "noscript",
		"iframe", "form", "input", "button",
	})

	var sb strings.Builder
	if err := html.Render(&sb, doc); err != nil {
		return "", fmt.Errorf("render HTML: %w", err)
	}

	markdown, err := htmlConverter.ConvertString(sb.String())
	if err != nil {
		return "", fmt.Errorf("convert HTML: %w", err)
	}
	return markdown, nil
}

// removeElements drops all elements with the given tag names from the tree.
func removeElements(n *html.Node, tags []string) {
	tagSet := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tagSet[tag] = true
	}

	var toRemove []*html.Node
	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.ElementNode && tagSet[node.Data] {
			toRemove = append(toRemove, node)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)

	for _, node := range toRemove {
		if node.Parent != nil {
			node.Parent.RemoveChild(node)
		}
	}
}

// CleanText normalizes extracted text for prompt embedding: smart quotes
// become ASCII quotes and whitespace runs collapse to single spaces. The
// content itself is otherwise untouched.
func CleanText(text string) string {
	replacer := strings.NewReplacer(
		"“", `"`, "”", `"`,
		"‘", "'", "’", "'",
		"\n", " ", "\r", " ", "\t", " ",
	)
	text = replacer.Replace(text)
	return strings.Join(strings.Fields(text), " ")
}
