// Package view builds the read-only presentation model of a room's chat log:
// messages in arrival order, clustered into runs of consecutive messages from
// the same sender, annotated with delivery-status glyphs. It never mutates
// the store; rendering markup is the caller's concern.
package view

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/meetwire/go-room-chat/internal/domain"
)

// Glyph names the status icon shown beside a self-originated message.
type Glyph string

const (
	GlyphPending   Glyph = "pending"
	GlyphConfirmed Glyph = "confirmed"
	GlyphWarning   Glyph = "warning"
)

// StatusGlyph maps a delivery status to its icon. Unknown statuses map to
// GlyphWarning so a bug surfaces visibly rather than invisibly.
func StatusGlyph(s domain.Status) Glyph {
	switch s {
	case domain.StatusSending:
		return GlyphPending
	case domain.StatusSent:
		return GlyphConfirmed
	default:
		return GlyphWarning
	}
}

// MessageView is one rendered chat bubble.
type MessageView struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
	// Status is the glyph to draw; meaningful only when ShowStatus is true.
	Status Glyph `json:"status,omitempty"`
	// ShowStatus is true only for self-originated messages.
	ShowStatus bool `json:"show_status"`
}

// MessageGroup is a visual cluster of consecutive messages from one sender.
// Messages stay logically independent entries; grouping never merges records.
type MessageGroup struct {
	Sender   domain.Sender `json:"sender"`
	Label    string        `json:"label"`
	IsSelf   bool          `json:"is_self"`
	Messages []MessageView `json:"messages"`
}

// Reader is the read slice of the message store the projection consumes.
type Reader interface {
	MessagesFor(roomName string) []domain.ChatMessage
}

// Projection renders a room's log into grouped view models. Re-render on the
// store's change notification; Render itself is cheap and side-effect free.
type Projection struct {
	store Reader
}

// NewProjection constructs a Projection reading from store.
func NewProjection(store Reader) *Projection {
	return &Projection{store: store}
}

// Render returns roomName's log grouped by consecutive sender. Unknown rooms
// render as an empty sequence.
func (p *Projection) Render(roomName string) []MessageGroup {
	msgs := p.store.MessagesFor(roomName)
	if len(msgs) == 0 {
		return nil
	}

	groups := make([]MessageGroup, 0, len(msgs))
	for _, m := range msgs {
		mv := MessageView{
			ID:        m.ID,
			Text:      m.Text,
			Timestamp: m.Timestamp,
		}
		if m.IsSelf {
			mv.Status = StatusGlyph(m.Status)
			mv.ShowStatus = true
		}

		if n := len(groups); n > 0 &&
			groups[n-1].Sender.Identity == m.Sender.Identity &&
			groups[n-1].IsSelf == m.IsSelf {
			groups[n-1].Messages = append(groups[n-1].Messages, mv)
			continue
		}
		groups = append(groups, MessageGroup{
			Sender:   m.Sender,
			Label:    p.senderLabel(m.Sender),
			IsSelf:   m.IsSelf,
			Messages: []MessageView{mv},
		})
	}
	return groups
}

// senderLabel prefers the cosmetic display name and otherwise derives a
// readable one from the identity key ("ada.lovelace" → "Ada Lovelace").
func (p *Projection) senderLabel(s domain.Sender) string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	parts := strings.FieldsFunc(s.Identity, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	if len(parts) == 0 {
		return s.Identity
	}
	// cases.Caser is stateful, so build one per call rather than sharing.
	caser := cases.Title(language.English)
	for i, w := range parts {
		parts[i] = caser.String(w)
	}
	return strings.Join(parts, " ")
}
