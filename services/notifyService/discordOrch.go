package notifyService

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"blackLedger/services/pickService"

	"github.com/bwmarrin/discordgo"
)

const (
	ColorBatch   = 0x1F1F1F
	ColorPartial = 0xE67E22
)

var ErrNoChannel = errors.New("no discord channel configured")

// EmbedSender is the part of *discordgo.Session the notifier needs.
type EmbedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordNotifier struct {
	session   EmbedSender
	channelID string
}

func NewDiscordNotifier(session EmbedSender, channelID string) *DiscordNotifier {
	return &DiscordNotifier{session: session, channelID: channelID}
}

// NewDiscordSession opens a REST-only bot session. No gateway connection is
// made, so no intents or handlers are registered.
func NewDiscordSession(token string) (*discordgo.Session, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}
	return dg, nil
}

func (n *DiscordNotifier) NotifyBatch(ctx context.Context, result *pickService.BatchResult) error {
	if n.channelID == "" {
		return ErrNoChannel
	}
	if result == nil {
		return nil
	}

	_, err := n.session.ChannelMessageSendEmbed(n.channelID, BatchEmbed(result), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("sending batch embed: %w", err)
	}
	return nil
}

// BatchEmbed renders one generation run. Sports are listed in run order.
func BatchEmbed(result *pickService.BatchResult) *discordgo.MessageEmbed {
	color := ColorBatch
	if len(result.SkippedSports) > 0 {
		color = ColorPartial
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🖤 Black Ledger Picks Are Live",
		Description: fmt.Sprintf("%d single-game picks and %d parlays", result.TotalPicks(), len(result.Parlays)),
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Batch " + result.BatchID,
		},
	}
	if !result.StartedAt.IsZero() {
		embed.Timestamp = result.StartedAt.Format("2006-01-02T15:04:05Z07:00")
	}

	for _, sport := range pickService.Sports {
		picks := result.PicksBySport[sport.Name]
		parlays := result.ParlaysBySport[sport.Name]
		if picks == 0 && parlays == 0 {
			continue
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   sport.Name,
			Value:  fmt.Sprintf("%d picks | %d parlays", picks, parlays),
			Inline: true,
		})
	}

	if result.Mystery != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "🎁 Mystery Pick",
			Value:  fmt.Sprintf("%s %s parlay, %s", strings.ToUpper(result.Mystery.Sport), result.Mystery.Tier, result.Mystery.Summary),
			Inline: false,
		})
	}

	if len(result.SkippedSports) > 0 {
		skipped := append([]string(nil), result.SkippedSports...)
		sort.Strings(skipped)
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Unavailable",
			Value:  strings.Join(skipped, ", "),
			Inline: false,
		})
	}

	return embed
}
