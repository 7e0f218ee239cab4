package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/dooficoin/doofigame/internal/domain"
)

// options indexes the command options of an interaction by name.
type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func getOptions(i *discordgo.InteractionCreate) options {
	opts := options{}
	for _, o := range i.ApplicationCommandData().Options {
		opts[o.Name] = o
	}
	return opts
}

func (o options) String(name string) string {
	if opt, ok := o[name]; ok {
		return opt.StringValue()
	}
	return ""
}

func (o options) Bool(name string) bool {
	if opt, ok := o[name]; ok {
		return opt.BoolValue()
	}
	return false
}

// ID returns a required positive integer option.
func (o options) ID(name string) (int, error) {
	opt, ok := o[name]
	if !ok || opt.IntValue() < 1 {
		return 0, fmt.Errorf("%w: %s inválido", domain.ErrInvalidInput, name)
	}
	return int(opt.IntValue()), nil
}

func stringOption(name, description string, required bool, choices ...string) *discordgo.ApplicationCommandOption {
	opt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
	for _, c := range choices {
		opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{Name: c, Value: c})
	}
	return opt
}

func idOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        name,
		Description: description,
		Required:    true,
		MinValue:    floatPtr(1),
	}
}

func boolOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        name,
		Description: description,
	}
}

func floatPtr(v float64) *float64 { return &v }
