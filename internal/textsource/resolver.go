package textsource

import (
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

// Input-shape errors. The handler maps all of these to HTTP 400 with
// the product's Portuguese messages.
var (
	ErrNoInput           = errors.New("no text or file provided")
	ErrTooShort          = errors.New("text too short or empty")
	ErrEmptyFilename     = errors.New("no file selected")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoExtractableText = errors.New("no extractable text in PDF")
)

const minTextRunes = 10

// Resolve normalizes the three inbound payload shapes into one plain
// text string: an uploaded file wins over a JSON text field, which wins
// over a form text field. The returned text is trimmed and at least
// minTextRunes long.
func Resolve(c *gin.Context) (string, error) {
	if fh, err := c.FormFile("file"); err == nil {
		text, err := fromFile(fh)
		if err != nil {
			return "", err
		}
		return validate(text)
	}

	if strings.HasPrefix(c.ContentType(), "application/json") {
		var body struct {
			Text *string `json:"text"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.Text == nil {
			return "", ErrNoInput
		}
		return validate(*body.Text)
	}

	if text, ok := c.GetPostForm("text"); ok {
		return validate(text)
	}

	return "", ErrNoInput
}

func fromFile(fh *multipart.FileHeader) (string, error) {
	if fh.Filename == "" {
		return "", ErrEmptyFilename
	}

	switch strings.ToLower(filepath.Ext(fh.Filename)) {
	case ".pdf":
		data, err := readAll(fh)
		if err != nil {
			return "", err
		}
		text, err := ExtractPDFText(data)
		if err != nil || text == "" {
			// scanned/image-only and broken PDFs end up here
			return "", ErrNoExtractableText
		}
		return text, nil
	case ".txt":
		data, err := readAll(fh)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", ErrUnsupportedFormat
	}
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func validate(text string) (string, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minTextRunes {
		return "", ErrTooShort
	}
	return text, nil
}
