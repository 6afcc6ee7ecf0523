// Package discord posts game milestones to a Discord channel.
package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/event"
	"github.com/osse101/QuestForge_Go/internal/logger"
	"github.com/osse101/QuestForge_Go/internal/metrics"
	"github.com/osse101/QuestForge_Go/internal/worker"
)

// Sender delivers a rendered embed somewhere a player will see it
type Sender interface {
	Send(ctx context.Context, embed *discordgo.MessageEmbed) error
}

// ChannelSender posts embeds to one Discord channel
type ChannelSender struct {
	session   *discordgo.Session
	channelID string
}

// NewChannelSender opens a bot session for the given token. The websocket
// gateway is never opened; only the REST API is used.
func NewChannelSender(token, channelID string) (*ChannelSender, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return &ChannelSender{session: s, channelID: channelID}, nil
}

// NewChannelSenderWithSession wraps an existing session
func NewChannelSenderWithSession(s *discordgo.Session, channelID string) *ChannelSender {
	return &ChannelSender{session: s, channelID: channelID}
}

// Send posts the embed
func (c *ChannelSender) Send(ctx context.Context, embed *discordgo.MessageEmbed) error {
	_, err := c.session.ChannelMessageSendEmbed(c.channelID, embed, discordgo.WithContext(ctx))
	return err
}

// LogSender writes notifications to the structured log. Used when no bot token is configured.
type LogSender struct{}

// Send logs the embed title and description
func (LogSender) Send(ctx context.Context, embed *discordgo.MessageEmbed) error {
	logger.FromContext(ctx).Info(notifyLogMsgLogged, "title", embed.Title, "description", embed.Description)
	return nil
}

// NameFunc resolves a character ID to a display name
type NameFunc func(ctx context.Context, id uuid.UUID) string

// Notifier turns game events into channel messages. Delivery runs on the
// worker pool so a slow Discord API never holds up the publisher.
type Notifier struct {
	sender Sender
	pool   *worker.Pool
	names  NameFunc
	now    func() time.Time
}

// NewNotifier creates a notifier. pool may be nil, in which case messages are sent inline.
func NewNotifier(sender Sender, pool *worker.Pool, names NameFunc) *Notifier {
	if names == nil {
		names = func(_ context.Context, id uuid.UUID) string { return shortID(id) }
	}
	return &Notifier{sender: sender, pool: pool, names: names, now: time.Now}
}

// Register subscribes to the events worth announcing
func (n *Notifier) Register(bus event.Bus) {
	bus.Subscribe(event.CharacterLeveledUp, n.handleLevelUp)
	bus.Subscribe(event.MissionResolved, n.handleMissionResolved)
	bus.Subscribe(event.DungeonResolved, n.handleDungeonResolved)
	bus.Subscribe(event.StreakAtRisk, n.handleStreakAtRisk)
	bus.Subscribe(event.AchievementUnlocked, n.handleAchievement)
	bus.Subscribe(event.BondLeveledUp, n.handleBondLevelUp)
}

func (n *Notifier) handleLevelUp(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.LevelUpPayloadV1](evt.Payload)
	if err != nil {
		return n.parseError(ctx, evt, err)
	}
	name := n.names(ctx, p.CharacterID)
	embed := n.embed(
		fmt.Sprintf("Level Up! %s", name),
		fmt.Sprintf("**%s** reached **level %d**!", name, p.NewLevel),
		colorGold,
	)
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Previous", Value: fmt.Sprintf("%d", p.OldLevel), Inline: true},
		{Name: "New Level", Value: fmt.Sprintf("%d", p.NewLevel), Inline: true},
	}
	if p.Source != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "From", Value: p.Source, Inline: true})
	}
	n.dispatch(ctx, embed)
	return nil
}

func (n *Notifier) handleMissionResolved(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.MissionPayloadV1](evt.Payload)
	if err != nil {
		return n.parseError(ctx, evt, err)
	}
	name := n.names(ctx, p.CharacterID)
	title, color := "Mission Complete", colorGreen
	if !p.Success {
		title, color = "Mission Failed", colorRed
	}
	embed := n.embed(title,
		fmt.Sprintf("**%s** returned from **%s** with %d EXP and %d gold.", name, p.MissionID, p.EXP, p.Gold),
		color,
	)
	n.dispatch(ctx, embed)
	return nil
}

func (n *Notifier) handleDungeonResolved(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.DungeonPayloadV1](evt.Payload)
	if err != nil {
		return n.parseError(ctx, evt, err)
	}
	color := colorGreen
	if p.Status != domain.RunStatusCompleted {
		color = colorRed
	}
	embed := n.embed(
		fmt.Sprintf("Dungeon %s: %s", p.DungeonID, p.Status),
		fmt.Sprintf("Party of %d cleared %d/%d rooms.", len(p.PartyIDs), p.Cleared, p.Total),
		color,
	)
	if p.Grade != "" {
		embed.Fields = []*discordgo.MessageEmbedField{{Name: "Grade", Value: string(p.Grade), Inline: true}}
	}
	n.dispatch(ctx, embed)
	return nil
}

func (n *Notifier) handleStreakAtRisk(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.StreakPayloadV1](evt.Payload)
	if err != nil {
		return n.parseError(ctx, evt, err)
	}
	name := n.names(ctx, p.CharacterID)
	embed := n.embed("Streak at Risk",
		fmt.Sprintf("**%s**, your %d-day streak ends at midnight. Complete a task to keep it!", name, p.Streak),
		colorOrange,
	)
	n.dispatch(ctx, embed)
	return nil
}

func (n *Notifier) handleAchievement(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.AchievementPayloadV1](evt.Payload)
	if err != nil {
		return n.parseError(ctx, evt, err)
	}
	name := n.names(ctx, p.CharacterID)
	n.dispatch(ctx, n.embed("Achievement Unlocked", fmt.Sprintf("**%s** earned **%s**", name, p.Title), colorBlurple))
	return nil
}

func (n *Notifier) handleBondLevelUp(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.BondLevelUpPayloadV1](evt.Payload)
	if err != nil {
		return n.parseError(ctx, evt, err)
	}
	embed := n.embed("Bond Strengthened", fmt.Sprintf("A bond reached **level %d**", p.NewLevel), colorBlurple)
	for _, perk := range p.Unlocked {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Perk Unlocked", Value: string(perk), Inline: true})
	}
	n.dispatch(ctx, embed)
	return nil
}

func (n *Notifier) embed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Timestamp:   n.now().Format(time.RFC3339),
		Footer:      &discordgo.MessageEmbedFooter{Text: footerText},
	}
}

// dispatch never returns an error: a failed notification must not fail the game operation
func (n *Notifier) dispatch(ctx context.Context, embed *discordgo.MessageEmbed) {
	send := func(ctx context.Context) error {
		if err := n.sender.Send(ctx, embed); err != nil {
			logger.FromContext(ctx).Error(notifyLogMsgSendError, "error", err, "title", embed.Title)
			metrics.RecordCollaboratorFailure(CollaboratorName)
			return err
		}
		logger.FromContext(ctx).Debug(notifyLogMsgSent, "title", embed.Title)
		return nil
	}
	if n.pool == nil {
		_ = send(ctx)
		return
	}
	if !n.pool.TryEnqueue(worker.JobFunc(send)) {
		logger.FromContext(ctx).Warn(notifyLogMsgDropped, "title", embed.Title)
		metrics.RecordCollaboratorFailure(CollaboratorName)
	}
}

func (n *Notifier) parseError(ctx context.Context, evt event.Event, err error) error {
	logger.FromContext(ctx).Warn(notifyLogMsgParseError, "error", err, "event_type", evt.Type)
	return nil
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
