package discord

import (
	"fmt"
	"strings"
	"time"

	"castmatch/internal/domain/entities"
	"castmatch/pkg/tz"

	"github.com/bwmarrin/discordgo"
)

const (
	embedColor = 0x5865F2
)

// CastEmbedInput carries the localized strings the embed needs, so the
// builder stays free of any translator dependency.
type CastEmbedInput struct {
	Title      string
	CastLabel  string
	OrgaLabel  string
	PlacesText string
}

func formatSlots(a *entities.Activity) string {
	parts := make([]string, 0, len(a.Slots))
	for _, s := range a.Slots {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, ", ")
}

// BuildCastEmbed builds the announcement embed for one activity: its slots,
// the organizers and the final cast.
func BuildCastEmbed(a *entities.Activity, cast, organizers []string, in CastEmbedInput) *discordgo.MessageEmbed {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("**%s**\n\n", formatSlots(a)))
	if len(organizers) > 0 {
		b.WriteString(fmt.Sprintf("**%s :** %s\n\n", in.OrgaLabel, strings.Join(organizers, ", ")))
	}
	b.WriteString(fmt.Sprintf("**%s :**\n", in.CastLabel))
	if len(cast) == 0 {
		b.WriteString("—\n")
	}
	for _, name := range cast {
		b.WriteString("- " + name + "\n")
	}
	b.WriteString("\n" + in.PlacesText)

	return &discordgo.MessageEmbed{
		Title:       in.Title,
		Description: b.String(),
		Color:       embedColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text: tz.Stamp(time.Now()),
		},
	}
}
