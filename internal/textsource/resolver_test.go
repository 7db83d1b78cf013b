package textsource

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(t *testing.T, req *http.Request) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func multipartRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/classify", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/classify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/classify", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestResolveTxtUpload(t *testing.T) {
	req := multipartRequest(t, "email.txt", []byte("  Olá, preciso de ajuda com meu pedido 1234.  "))

	text, err := Resolve(testContext(t, req))

	require.NoError(t, err)
	assert.Equal(t, "Olá, preciso de ajuda com meu pedido 1234.", text)
}

func TestResolveTxtUploadCaseInsensitiveExtension(t *testing.T) {
	req := multipartRequest(t, "EMAIL.TXT", []byte("conteúdo válido de email para teste"))

	_, err := Resolve(testContext(t, req))

	assert.NoError(t, err)
}

func TestResolveRejectsUnsupportedExtension(t *testing.T) {
	req := multipartRequest(t, "email.docx", []byte("whatever content"))

	_, err := Resolve(testContext(t, req))

	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestResolveRejectsPDFWithoutText(t *testing.T) {
	// not a real PDF, so extraction yields nothing
	req := multipartRequest(t, "scan.pdf", []byte("binary garbage, no pdf structure"))

	_, err := Resolve(testContext(t, req))

	assert.ErrorIs(t, err, ErrNoExtractableText)
}

func TestResolveJSONBody(t *testing.T) {
	text, err := Resolve(testContext(t, jsonRequest(`{"text":"Podem verificar o status do chamado, por favor?"}`)))

	require.NoError(t, err)
	assert.Equal(t, "Podem verificar o status do chamado, por favor?", text)
}

func TestResolveJSONBodyWithoutTextField(t *testing.T) {
	_, err := Resolve(testContext(t, jsonRequest(`{"subject":"oi"}`)))

	assert.ErrorIs(t, err, ErrNoInput)
}

func TestResolveFormField(t *testing.T) {
	text, err := Resolve(testContext(t, formRequest(url.Values{"text": {"Segue o relatório solicitado em anexo."}})))

	require.NoError(t, err)
	assert.Equal(t, "Segue o relatório solicitado em anexo.", text)
}

func TestResolveNoInput(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/classify", nil)

	_, err := Resolve(testContext(t, req))

	assert.ErrorIs(t, err, ErrNoInput)
}

func TestResolveTooShort(t *testing.T) {
	cases := []struct {
		name string
		req  *http.Request
	}{
		{name: "json", req: jsonRequest(`{"text":"oi"}`)},
		{name: "json whitespace only", req: jsonRequest(`{"text":"         "}`)},
		{name: "form", req: formRequest(url.Values{"text": {"curto"}})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(testContext(t, tc.req))
			assert.ErrorIs(t, err, ErrTooShort)
		})
	}
}

func TestFromFileEmptyFilename(t *testing.T) {
	_, err := fromFile(&multipart.FileHeader{Filename: ""})

	assert.ErrorIs(t, err, ErrEmptyFilename)
}
