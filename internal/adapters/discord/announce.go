// Package discord publishes the final casting on a Discord channel, one embed
// per activity. It is a one-shot publisher, not an interactive bot: the
// session opens, posts, and closes.
package discord

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"castmatch/internal/domain/entities"
	"castmatch/internal/ports/output"
	pkgdiscord "castmatch/pkg/discord"
)

// Announcer posts cast embeds to a fixed channel.
type Announcer struct {
	session    *discordgo.Session
	channelID  string
	translator output.T
	locale     string
}

func NewAnnouncer(token, channelID string, translator output.T, locale string) (*Announcer, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la création de la session Discord: %w", err)
	}
	return &Announcer{session: s, channelID: channelID, translator: translator, locale: locale}, nil
}

// Announce opens the session, posts one embed per activity in roster order,
// then closes. Activities with neither cast nor organizers are skipped.
func (a *Announcer) Announce(roster *entities.Roster, result *entities.MatchResult) error {
	if err := a.session.Open(); err != nil {
		return fmt.Errorf("erreur lors de l'ouverture de la session: %w", err)
	}
	defer a.session.Close()

	for _, act := range roster.Activities {
		cast := playerNames(roster, result.Assignment.ParticipantsOf(act.ID))
		organizers := playerNames(roster, act.Organizers)
		if len(cast) == 0 && len(organizers) == 0 {
			continue
		}

		embed := pkgdiscord.BuildCastEmbed(act, cast, organizers, pkgdiscord.CastEmbedInput{
			Title:     a.t("announce.title", map[string]any{"Name": act.Name}),
			CastLabel: a.t("announce.cast", nil),
			OrgaLabel: a.t("announce.organizers", nil),
			PlacesText: a.t("announce.places", map[string]any{
				"Count":    len(cast),
				"Capacity": act.Capacity,
			}),
		})
		if _, err := a.session.ChannelMessageSendEmbed(a.channelID, embed); err != nil {
			return fmt.Errorf("erreur lors de la publication du casting de %q: %w", act.Name, err)
		}
		log.Printf("✅ Casting publié: %s", act.Name)
	}
	return nil
}

func (a *Announcer) t(key string, data map[string]any) string {
	return a.translator.T(a.locale, key, data)
}

func playerNames(roster *entities.Roster, ids []uint) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if p, ok := roster.Player(id); ok {
			names = append(names, p.Name)
		}
	}
	return names
}
