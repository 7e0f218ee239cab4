package discord

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/bwmarrin/discordgo"

	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/session"
)

// embedDescriptionLimit is Discord's cap on an embed description.
const embedDescriptionLimit = 4096

// Response is the message a handler wants shown.
type Response struct {
	Content    string
	Embed      *discordgo.MessageEmbed
	Components []discordgo.MessageComponent
}

func (r *Response) prepend(lines []string) {
	if len(lines) == 0 {
		return
	}
	msg := strings.Join(lines, "\n")
	if r.Content != "" {
		msg += "\n" + r.Content
	}
	r.Content = msg
}

// text is a plain content response.
func text(format string, args ...any) *Response {
	return &Response{Content: fmt.Sprintf(format, args...)}
}

// embed builds a titled embed response.
func embed(title, description string, color int, fields ...*discordgo.MessageEmbedField) *Response {
	return &Response{Embed: &discordgo.MessageEmbed{
		Title:       title,
		Description: truncate(description, embedDescriptionLimit),
		Color:       color,
		Fields:      fields,
		Footer:      &discordgo.MessageEmbedFooter{Text: footerText},
	}}
}

func field(name, value string) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: true}
}

// deferResponse acknowledges an interaction. Replies are ephemeral: game
// state is private to the player.
// Returns false if deferral failed (should return early from handler).
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate, kind discordgo.InteractionResponseType) bool {
	resp := &discordgo.InteractionResponse{Type: kind}
	if kind == discordgo.InteractionResponseDeferredChannelMessageWithSource {
		resp.Data = &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral}
	}
	if err := s.InteractionRespond(i.Interaction, resp); err != nil {
		slog.Error("Failed to send deferred response", "error", err)
		return false
	}
	return true
}

// editResponse replaces the deferred reply. Components are always sent so
// buttons of a previous step disappear.
func editResponse(s *discordgo.Session, i *discordgo.InteractionCreate, r *Response) {
	content := r.Content
	embeds := []*discordgo.MessageEmbed{}
	if r.Embed != nil {
		embeds = append(embeds, r.Embed)
	}
	components := r.Components
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	if content == "" && len(embeds) == 0 {
		content = MsgGenericError
	}

	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content:    &content,
		Embeds:     &embeds,
		Components: &components,
	}); err != nil {
		slog.Error("Failed to edit interaction response", "error", err)
	}
}

// getInteractionUser extracts the user from an interaction.
// Handles both guild (i.Member.User) and DM (i.User) contexts.
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// friendlyError maps an error to the message shown to the user.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, domain.ErrCancelled):
		return MsgCancelled
	case errors.Is(err, domain.ErrNotAuthenticated):
		return MsgLoginFirst
	case session.IsSessionError(err):
		return MsgSessionExpired
	case errors.Is(err, domain.ErrNotAdmin):
		return MsgNotAdmin
	case errors.Is(err, domain.ErrBusy):
		return MsgBusy
	default:
		return "❌ " + err.Error()
	}
}

// codeTable renders rows as an aligned monospace block.
func codeTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return MsgNoRows
	}
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
	return "```\n" + truncate(buf.String(), embedDescriptionLimit-8) + "```"
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit - len("…")
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }

// partial reports whether a failed panel load still leaves something worth
// rendering. Session failures and a cancelled interaction abort instead.
func partial(ctx context.Context, err error) bool {
	return ctx.Err() == nil && !session.IsSessionError(err)
}

// withBanner puts a load failure above an otherwise rendered response.
func withBanner(r *Response, err error) *Response {
	if err != nil {
		r.prepend([]string{"⚠️ " + err.Error()})
	}
	return r
}
