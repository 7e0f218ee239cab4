package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandRegistry(t *testing.T) {
	registry := NewCommandRegistry()
	registry.RegisterAll(Factories())

	for _, name := range []string{
		"login", "register", "logout", "profile",
		"arena", "inventory", "equip", "sell", "mining", "mine", "leaderboard",
		"scenarios", "start-scenario", "cards", "shop", "buy",
		"admin-list", "admin-delete", "admin-ban", "admin-dashboard",
	} {
		require.Contains(t, registry.Commands, name)
		assert.NotNil(t, registry.Handlers[name], name)
	}
	assert.Len(t, registry.Commands, 20)
}

func TestAdminCommandsRequirePermission(t *testing.T) {
	registry := NewCommandRegistry()
	registry.RegisterAll(Factories())

	for name, cmd := range registry.Commands {
		if len(name) > 6 && name[:6] == "admin-" {
			require.NotNil(t, cmd.DefaultMemberPermissions, name)
			assert.Equal(t, int64(discordgo.PermissionAdministrator), *cmd.DefaultMemberPermissions, name)
		} else {
			assert.Nil(t, cmd.DefaultMemberPermissions, name)
		}
	}
}

func TestCommandsEqual(t *testing.T) {
	base := func() []*discordgo.ApplicationCommand {
		cmd, _ := ArenaCommand()
		other, _ := LoginCommand()
		return []*discordgo.ApplicationCommand{cmd, other}
	}

	tests := []struct {
		name   string
		mutate func(cmds []*discordgo.ApplicationCommand) []*discordgo.ApplicationCommand
		want   bool
	}{
		{"identical", func(c []*discordgo.ApplicationCommand) []*discordgo.ApplicationCommand { return c }, true},
		{"reordered", func(c []*discordgo.ApplicationCommand) []*discordgo.ApplicationCommand {
			return []*discordgo.ApplicationCommand{c[1], c[0]}
		}, true},
		{"missing", func(c []*discordgo.ApplicationCommand) []*discordgo.ApplicationCommand { return c[:1] }, false},
		{"description changed", func(c []*discordgo.ApplicationCommand) []*discordgo.ApplicationCommand {
			c[0].Description = "outra"
			return c
		}, false},
		{"choice changed", func(c []*discordgo.ApplicationCommand) []*discordgo.ApplicationCommand {
			c[0].Options[0].Choices[0].Value = "other"
			return c
		}, false},
		{"required changed", func(c []*discordgo.ApplicationCommand) []*discordgo.ApplicationCommand {
			c[1].Options[0].Required = false
			return c
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, commandsEqual(base(), tt.mutate(base())))
		})
	}
}

func TestParseCustomID(t *testing.T) {
	valid := []Action{
		{Kind: kindCancel},
		{Kind: kindPage, Resource: "shop-items", Verb: "next"},
		{Kind: kindPage, Resource: "items", Verb: "prev"},
		{Kind: kindConfirm, Verb: verbDelete, Resource: "monsters", ID: 12},
		{Kind: kindConfirm, Verb: verbSell, ID: 7},
		{Kind: kindConfirm, Verb: verbBan, ID: 3},
		{Kind: kindConfirm, Verb: verbUnban, ID: 3},
	}
	for _, a := range valid {
		got, err := parseCustomID(a.CustomID())
		require.NoError(t, err, a.CustomID())
		assert.Equal(t, a, got)
	}

	for _, id := range []string{"", "page:items", "page:items:last", "confirm:sell", "confirm:sell:x", "confirm:sell:0", "confirm:delete:5", "confirm:explode:1", "other"} {
		_, err := parseCustomID(id)
		assert.Error(t, err, id)
	}
}

func TestCodeTable(t *testing.T) {
	assert.Equal(t, MsgNoRows, codeTable([]string{"ID"}, nil))

	out := codeTable([]string{"ID", "NOME"}, [][]string{{"1", "Espada"}, {"22", "Escudo"}})
	assert.Contains(t, out, "ID  NOME")
	assert.Contains(t, out, "22  Escudo")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	got := truncate("ééééé", 6)
	assert.LessOrEqual(t, len(got), 6)
	assert.True(t, len(got) > 0 && got[len(got)-3:] == "…")
}
