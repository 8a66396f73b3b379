package gmail

// Draft is a message to be left in the Gmail drafts folder.
type Draft struct {
	To      string
	Subject string
	// HTML is the complete email document.
	HTML string
	// Text is the plain-text alternative. Optional.
	Text        string
	Attachments []Attachment
}

// Attachment is a file sent along with a draft, such as a renewal invite.
type Attachment struct {
	Filename string
	MIMEType string
	Data     []byte
}
