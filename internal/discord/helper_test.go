package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"github.com/dooficoin/doofigame/internal/client"
	"github.com/dooficoin/doofigame/internal/session"
	"github.com/dooficoin/doofigame/internal/status"
	"github.com/dooficoin/doofigame/internal/testing/fakeapi"
)

// MockRoundTripper implements http.RoundTripper for intercepting requests
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

// discordCall is one request the bot sent to the Discord API.
type discordCall struct {
	Method string
	Path   string
	Body   []byte
}

// sentButton and sentEdit mirror the JSON of an interaction edit. The
// discordgo component types are interfaces and cannot be decoded directly.
type sentButton struct {
	Label    string `json:"label"`
	CustomID string `json:"custom_id"`
	Disabled bool   `json:"disabled"`
}

type sentEdit struct {
	Content    string                   `json:"content"`
	Embeds     []discordgo.MessageEmbed `json:"embeds"`
	Components []struct {
		Components []sentButton `json:"components"`
	} `json:"components"`
}

func (e sentEdit) buttons() []sentButton {
	var out []sentButton
	for _, row := range e.Components {
		out = append(out, row.Components...)
	}
	return out
}

func (e sentEdit) button(label string) (sentButton, bool) {
	for _, b := range e.buttons() {
		if b.Label == label {
			return b, true
		}
	}
	return sentButton{}, false
}

// text joins content, embed titles, descriptions and fields for matching.
func (e sentEdit) text() string {
	parts := []string{e.Content}
	for _, em := range e.Embeds {
		parts = append(parts, em.Title, em.Description)
		for _, f := range em.Fields {
			parts = append(parts, f.Name+": "+f.Value)
		}
	}
	return strings.Join(parts, "\n")
}

type testBot struct {
	srv       *fakeapi.Server
	bot       *Bot
	storePath string

	mu    sync.Mutex
	calls []discordCall
}

func newTestBot(t *testing.T) *testBot {
	t.Helper()
	srv := fakeapi.New()
	t.Cleanup(srv.Close)

	tb := &testBot{srv: srv, storePath: filepath.Join(t.TempDir(), "discord_tokens.json")}
	bot, err := New(Config{
		Token:            "test-token",
		AppID:            "app-1",
		PerPage:          2,
		SessionCacheSize: 10,
		SessionTTL:       time.Hour,
	}, client.New(srv.URL), session.NewKeyedFileStore(tb.storePath), status.NewRecorder())
	require.NoError(t, err)

	bot.Session.Client = &http.Client{Transport: &MockRoundTripper{RoundTripFunc: tb.roundTrip}}
	bot.Registry.RegisterAll(Factories())
	tb.bot = bot
	return tb
}

func (tb *testBot) roundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}
	tb.mu.Lock()
	tb.calls = append(tb.calls, discordCall{Method: req.Method, Path: req.URL.Path, Body: body})
	tb.mu.Unlock()

	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString("{}")),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

// dispatch runs one interaction and returns the edit it produced.
func (tb *testBot) dispatch(t *testing.T, i *discordgo.InteractionCreate) sentEdit {
	t.Helper()
	tb.mu.Lock()
	tb.calls = nil
	tb.mu.Unlock()

	tb.bot.Dispatch(context.Background(), tb.bot.Session, i)

	tb.mu.Lock()
	defer tb.mu.Unlock()
	for n := len(tb.calls) - 1; n >= 0; n-- {
		if tb.calls[n].Method == http.MethodPatch {
			var edit sentEdit
			require.NoError(t, json.Unmarshal(tb.calls[n].Body, &edit))
			return edit
		}
	}
	t.Fatalf("no interaction edit sent, calls: %+v", tb.calls)
	return sentEdit{}
}

func (tb *testBot) callbacks() []discordCall {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	var out []discordCall
	for _, c := range tb.calls {
		if c.Method == http.MethodPost && strings.HasSuffix(c.Path, "/callback") {
			out = append(out, c)
		}
	}
	return out
}

func command(userID, name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:    "interaction-" + name,
			AppID: "app-1",
			Token: "token-" + name,
			Type:  discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: opts,
			},
			Member: &discordgo.Member{
				User: &discordgo.User{ID: userID, Username: "tester-" + userID},
			},
		},
	}
}

func click(userID, customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:    "interaction-button",
			AppID: "app-1",
			Token: "token-button",
			Type:  discordgo.InteractionMessageComponent,
			Data: discordgo.MessageComponentInteractionData{
				CustomID:      customID,
				ComponentType: discordgo.ButtonComponent,
			},
			User: &discordgo.User{ID: userID, Username: "tester-" + userID},
		},
	}
}

func strOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: value}
}

func intOpt(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(value)}
}

func boolOpt(name string, value bool) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionBoolean, Value: value}
}
