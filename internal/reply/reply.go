// Package reply describes outbound messages independently of the chat
// transport. The conversation machine produces intents, the Telegram
// adapter renders them in order.
package reply

import "time"

// Kind selects how an intent is rendered.
type Kind int

const (
	KindText Kind = iota
	KindDocument
	KindAction
	KindPause
)

// Keyboard identifies a keyboard layout. Layouts live in the adapter.
type Keyboard int

const (
	KeyboardNone Keyboard = iota
	KeyboardMainMenu
	KeyboardProblems
	KeyboardOfferActions
	KeyboardAfterContact
	KeyboardPrices
	KeyboardContactRequest
	KeyboardAdmin
)

// Chat actions shown while the bot "works".
const (
	ActionTyping         = "typing"
	ActionUploadDocument = "upload_document"
	ActionFindLocation   = "find_location"
)

// Document is an attachment. Data wins over Path when both are set.
type Document struct {
	Path     string
	Data     []byte
	FileName string
	Caption  string
	// Fallback is sent as HTML text when the attachment cannot be delivered.
	Fallback string
}

// Intent is one outbound step.
type Intent struct {
	Kind     Kind
	Text     string
	Keyboard Keyboard
	Document *Document
	Action   string
	Pause    time.Duration
}

// Text builds an HTML text intent.
func Text(html string, kb Keyboard) Intent {
	return Intent{Kind: KindText, Text: html, Keyboard: kb}
}

// Doc builds a document intent.
func Doc(doc Document, kb Keyboard) Intent {
	return Intent{Kind: KindDocument, Document: &doc, Keyboard: kb}
}

// Action builds a chat-action intent.
func Action(action string) Intent {
	return Intent{Kind: KindAction, Action: action}
}

// Pause builds a delay intent. Non-positive delays are dropped by Builder.
func Pause(d time.Duration) Intent {
	return Intent{Kind: KindPause, Pause: d}
}

// Builder accumulates intents.
type Builder struct {
	intents []Intent
}

func (b *Builder) Text(html string, kb Keyboard) *Builder {
	b.intents = append(b.intents, Text(html, kb))
	return b
}

func (b *Builder) Doc(doc Document, kb Keyboard) *Builder {
	b.intents = append(b.intents, Doc(doc, kb))
	return b
}

func (b *Builder) Action(action string) *Builder {
	b.intents = append(b.intents, Action(action))
	return b
}

func (b *Builder) Pause(d time.Duration) *Builder {
	if d > 0 {
		b.intents = append(b.intents, Pause(d))
	}
	return b
}

// Intents returns the accumulated sequence.
func (b *Builder) Intents() []Intent {
	return b.intents
}

// Texts returns only the text bodies, in order. Handy in tests and logs.
func Texts(intents []Intent) []string {
	var out []string
	for _, in := range intents {
		if in.Kind == KindText {
			out = append(out, in.Text)
		}
	}
	return out
}
