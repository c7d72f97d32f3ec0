package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/sfvc/calendario-nodo/internal/domain/entities"
	"github.com/sfvc/calendario-nodo/internal/ports/output"
)

const embedTitle = "📅 Nuevo evento en el calendario"

var _ output.EventAnnouncer = (*Announcer)(nil)

// Announcer posts an embed to a Discord channel when an event is created.
// It is a one-shot fire: no retry, and failures never affect the create.
type Announcer struct {
	session   *discordgo.Session
	channelID string
}

func NewAnnouncer(token, channelID string) (*Announcer, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	return &Announcer{session: session, channelID: channelID}, nil
}

func (a *Announcer) AnnounceEventCreated(ctx context.Context, event *entities.Event) error {
	embed := buildEventEmbed(event)
	_, err := a.session.ChannelMessageSendEmbed(a.channelID, embed, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("send announcement: %w", err)
	}
	return nil
}

func buildEventEmbed(event *entities.Event) *discordgo.MessageEmbed {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("**Organiza:** %s\n\n", event.Organizacion))
	if event.Description != "" {
		b.WriteString(event.Description)
		b.WriteString("\n\n")
	}
	b.WriteString(fmt.Sprintf("**Cuándo:** %s", formatCuando(event)))
	b.WriteString(fmt.Sprintf("\n**Dónde:** %s", event.EspacioUtilizar))
	b.WriteString(fmt.Sprintf("\n**Personas:** %d", event.CantidadPersonas))

	return &discordgo.MessageEmbed{
		Title:       embedTitle,
		Description: b.String(),
		Color:       parseHexColor(event.Color),
		Footer:      &discordgo.MessageEmbedFooter{Text: event.Estado},
	}
}

func formatCuando(event *entities.Event) string {
	inicio := event.FechaInicio.Format("02/01/2006")
	fin := event.FechaFin.Format("02/01/2006")
	switch {
	case event.IsTimed() && inicio == fin:
		return fmt.Sprintf("%s de %s a %s", inicio, event.HoraInicio, event.HoraFin)
	case inicio == fin:
		return inicio
	default:
		return fmt.Sprintf("del %s al %s", inicio, fin)
	}
}

func parseHexColor(color string) int {
	color = strings.TrimPrefix(color, "#")
	n, err := strconv.ParseInt(color, 16, 32)
	if err != nil {
		return 0x3b82f6
	}
	return int(n)
}
