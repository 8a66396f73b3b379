package gmail

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeURL(t *testing.T) {
	got := ComposeURL("jane.doe+home@example.com", "Your Home Quote & Coverage")
	assert.Equal(t,
		"https://mail.google.com/mail/?view=cm&fs=1&to=jane.doe%2Bhome%40example.com&su=Your%20Home%20Quote%20%26%20Coverage",
		got)

	assert.Equal(t, "https://mail.google.com/mail/?view=cm&fs=1&to=&su=", ComposeURL("", ""))
}

func decodePart(t *testing.T, r io.Reader) string {
	t.Helper()
	raw, err := io.ReadAll(r)
	require.NoError(t, err)
	data, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(string(raw), "\r\n", ""))
	require.NoError(t, err)
	return string(data)
}

func TestBuildMessageHTMLOnly(t *testing.T) {
	html := "<!DOCTYPE html><html><body><p>Hi Jane – welcome</p></body></html>"
	raw, err := buildMessage(Draft{To: "jane@example.com", Subject: "Your Home Quote", HTML: html})
	require.NoError(t, err)

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "<jane@example.com>", msg.Header.Get("To"))
	assert.Equal(t, "Your Home Quote", msg.Header.Get("Subject"))
	assert.Equal(t, "text/html; charset=UTF-8", msg.Header.Get("Content-Type"))
	assert.Equal(t, html, decodePart(t, msg.Body))
}

func TestBuildMessageEncodesSubject(t *testing.T) {
	raw, err := buildMessage(Draft{Subject: "Renewal – 2025", HTML: "<p>x</p>"})
	require.NoError(t, err)
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)

	dec := new(mime.WordDecoder)
	subject, err := dec.DecodeHeader(msg.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "Renewal – 2025", subject)
	assert.Empty(t, msg.Header.Get("To"))
}

func TestBuildMessageWithAlternativeAndInvite(t *testing.T) {
	ics := "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"
	raw, err := buildMessage(Draft{
		To:      "Jane Doe <jane@example.com>",
		Subject: "Renewal",
		HTML:    "<p>Hello Jane</p>",
		Text:    "Hello Jane",
		Attachments: []Attachment{
			{Filename: "renewal.ics", MIMEType: "text/calendar; method=REQUEST", Data: []byte(ics)},
		},
	})
	require.NoError(t, err)

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/mixed", mediaType)

	mr := multipart.NewReader(msg.Body, params["boundary"])

	body, err := mr.NextPart()
	require.NoError(t, err)
	altType, altParams, err := mime.ParseMediaType(body.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/alternative", altType)

	ar := multipart.NewReader(body, altParams["boundary"])
	text, err := ar.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=UTF-8", text.Header.Get("Content-Type"))
	assert.Equal(t, "Hello Jane", decodePart(t, text))
	html, err := ar.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello Jane</p>", decodePart(t, html))
	_, err = ar.NextPart()
	assert.ErrorIs(t, err, io.EOF)

	att, err := mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "renewal.ics", att.FileName())
	attType, attParams, err := mime.ParseMediaType(att.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "text/calendar", attType)
	assert.Equal(t, "REQUEST", attParams["method"])
	assert.Equal(t, ics, decodePart(t, att))

	_, err = mr.NextPart()
	assert.ErrorIs(t, err, io.EOF)
}

func TestBuildMessageErrors(t *testing.T) {
	_, err := buildMessage(Draft{To: "jane@example.com"})
	assert.Error(t, err)

	_, err = buildMessage(Draft{To: "not an address", HTML: "<p>x</p>"})
	assert.Error(t, err)

	_, err = buildMessage(Draft{HTML: "<p>x</p>", Attachments: []Attachment{{Data: []byte("x")}}})
	assert.Error(t, err)
}

func TestLongBodiesWrap(t *testing.T) {
	html := "<p>" + strings.Repeat("a", 500) + "</p>"
	raw, err := buildMessage(Draft{HTML: html})
	require.NoError(t, err)
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	body, err := io.ReadAll(msg.Body)
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimRight(string(body), "\r\n"), "\r\n") {
		assert.LessOrEqual(t, len(line), lineLen)
	}
}
