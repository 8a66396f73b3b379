package gmail

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"net/textproto"
	"strings"
)

const lineLen = 76

// buildMessage renders d as an RFC 5322 message. The HTML body always
// travels base64 encoded; a plain-text alternative and attachments turn
// the message into multipart/mixed.
func buildMessage(d Draft) ([]byte, error) {
	if strings.TrimSpace(d.HTML) == "" {
		return nil, errors.New("gmail: draft has no body")
	}
	var buf bytes.Buffer
	if d.To != "" {
		addr, err := mail.ParseAddress(d.To)
		if err != nil {
			return nil, fmt.Errorf("gmail: recipient %q: %w", d.To, err)
		}
		fmt.Fprintf(&buf, "To: %s\r\n", addr.String())
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", d.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")

	if d.Text == "" && len(d.Attachments) == 0 {
		buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
		buf.WriteString("Content-Transfer-Encoding: base64\r\n\r\n")
		writeBase64(&buf, []byte(d.HTML))
		return buf.Bytes(), nil
	}

	mixed := multipart.NewWriter(&buf)
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", mixed.Boundary())

	if err := writeBody(mixed, d); err != nil {
		return nil, err
	}
	for _, a := range d.Attachments {
		if err := writeAttachment(mixed, a); err != nil {
			return nil, err
		}
	}
	if err := mixed.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeBody(mixed *multipart.Writer, d Draft) error {
	if d.Text == "" {
		return writePart(mixed, "text/html; charset=UTF-8", nil, []byte(d.HTML))
	}
	var alt bytes.Buffer
	aw := multipart.NewWriter(&alt)
	if err := writePart(aw, "text/plain; charset=UTF-8", nil, []byte(d.Text)); err != nil {
		return err
	}
	if err := writePart(aw, "text/html; charset=UTF-8", nil, []byte(d.HTML)); err != nil {
		return err
	}
	if err := aw.Close(); err != nil {
		return err
	}
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", "multipart/alternative; boundary="+aw.Boundary())
	w, err := mixed.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = w.Write(alt.Bytes())
	return err
}

func writeAttachment(mw *multipart.Writer, a Attachment) error {
	if a.Filename == "" {
		return errors.New("gmail: attachment without a filename")
	}
	mediaType, params, err := mime.ParseMediaType(a.MIMEType)
	if err != nil {
		mediaType, params = "application/octet-stream", map[string]string{}
	}
	params["name"] = a.Filename
	extra := textproto.MIMEHeader{}
	extra.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename}))
	return writePart(mw, mime.FormatMediaType(mediaType, params), extra, a.Data)
}

func writePart(mw *multipart.Writer, contentType string, extra textproto.MIMEHeader, data []byte) error {
	h := textproto.MIMEHeader{}
	for k, v := range extra {
		h[k] = v
	}
	h.Set("Content-Type", contentType)
	h.Set("Content-Transfer-Encoding", "base64")
	w, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	writeBase64(w, data)
	return nil
}

func writeBase64(w io.Writer, data []byte) {
	enc := base64.StdEncoding.EncodeToString(data)
	for len(enc) > lineLen {
		io.WriteString(w, enc[:lineLen]+"\r\n")
		enc = enc[lineLen:]
	}
	io.WriteString(w, enc+"\r\n")
}
