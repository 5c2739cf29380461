package notifier

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/gdg-garage/mission-registration/internal/models"
)

type Notifier interface {
	NotifyParticipant(mission models.MissionEvent, participant models.Participant) error
}

// MessageSender is the part of *discordgo.Session the notifier uses.
type MessageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordNotifier struct {
	session   MessageSender
	channelID string
}

func NewDiscordNotifier(session MessageSender, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

// NewDiscordSession opens a bot session for token.
func NewDiscordSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, fmt.Errorf("discord bot token is empty")
	}
	return discordgo.New("Bot " + token)
}

func (n *DiscordNotifier) NotifyParticipant(mission models.MissionEvent, p models.Participant) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	_, err := n.session.ChannelMessageSend(n.channelID, Message(mission, p))
	if err != nil {
		return fmt.Errorf("notifier.NotifyParticipant: %w", err)
	}
	return nil
}

// Message is the announcement posted for a new participant.
func Message(mission models.MissionEvent, p models.Participant) string {
	days := make([]string, len(p.Days))
	for i, d := range p.Days {
		days[i] = d.DayDate
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎉 **New Registration**\n**Mission:** %s\n**Participant:** %s (%s)\n**Days:** %s",
		mission.Title, p.FullName, p.Gender, strings.Join(days, ", "))
	if p.ComingAsCouple {
		fmt.Fprintf(&b, "\n**Partner:** %s", p.PartnerName)
	}
	if p.NeedFacilitation {
		fmt.Fprintf(&b, "\n**Support requested:** KES %d", p.FacilitationAmount)
	}
	if p.DietAdvisory != "" {
		fmt.Fprintf(&b, "\n**Dietary:** %s", p.DietAdvisory)
	}
	return b.String()
}

// Nop drops every notification. It is used when no bot is configured.
type Nop struct{}

func (Nop) NotifyParticipant(models.MissionEvent, models.Participant) error { return nil }
