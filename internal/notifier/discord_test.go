package notifier_test

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdg-garage/mission-registration/internal/models"
	"github.com/gdg-garage/mission-registration/internal/notifier"
)

type fakeSender struct {
	channel string
	content string
	err     error
}

func (f *fakeSender) ChannelMessageSend(channelID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.channel, f.content = channelID, content
	return &discordgo.Message{}, f.err
}

func participant() models.Participant {
	return models.Participant{
		FullName:           "Amina Otieno",
		Gender:             "female",
		ComingAsCouple:     true,
		PartnerName:        "Baraka Otieno",
		NeedFacilitation:   true,
		FacilitationAmount: 1500,
		Days:               []models.ParticipantDay{{Day: 0, DayDate: "2026-12-07"}, {Day: 2, DayDate: "2026-12-09"}},
	}
}

func TestNotifyParticipant(t *testing.T) {
	sender := &fakeSender{}
	n := notifier.NewDiscordNotifier(sender, "chan-1")

	require.NoError(t, n.NotifyParticipant(models.MissionEvent{Title: "Naivasha Couples Retreat"}, participant()))

	assert.Equal(t, "chan-1", sender.channel)
	assert.Contains(t, sender.content, "**Mission:** Naivasha Couples Retreat")
	assert.Contains(t, sender.content, "**Days:** 2026-12-07, 2026-12-09")
	assert.Contains(t, sender.content, "**Partner:** Baraka Otieno")
	assert.Contains(t, sender.content, "KES 1500")
	assert.NotContains(t, sender.content, "Dietary")
}

func TestNotifyParticipant_Errors(t *testing.T) {
	assert.Error(t, notifier.NewDiscordNotifier(nil, "chan-1").NotifyParticipant(models.MissionEvent{}, participant()))
	assert.Error(t, notifier.NewDiscordNotifier(&fakeSender{}, "").NotifyParticipant(models.MissionEvent{}, participant()))

	sender := &fakeSender{err: errors.New("rate limited")}
	err := notifier.NewDiscordNotifier(sender, "chan-1").NotifyParticipant(models.MissionEvent{}, participant())
	assert.ErrorContains(t, err, "rate limited")
}

func TestNewDiscordSession_RequiresToken(t *testing.T) {
	_, err := notifier.NewDiscordSession("")
	assert.Error(t, err)
}
