// Package discord delivers submitted posts to a Discord channel webhook.
package discord

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"postcraft/pkg/queue"

	"github.com/bwmarrin/discordgo"
)

// Discord rejects message content longer than this.
const maxContentRunes = 2000

// Webhook usernames are capped at 80 characters and may not contain these.
const maxUsernameRunes = 80

var reservedUsernameWords = []string{"discord", "clyde"}

var ErrInvalidWebhookURL = errors.New("invalid discord webhook url")

// ParseWebhookURL extracts the id and token from
// https://discord.com/api/webhooks/<id>/<token>.
func ParseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", "", ErrInvalidWebhookURL
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" {
			id, token = parts[i+1], parts[i+2]
			break
		}
	}
	if id == "" || token == "" {
		return "", "", ErrInvalidWebhookURL
	}
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return "", "", ErrInvalidWebhookURL
	}
	return id, token, nil
}

type executor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type WebhookSender struct {
	exec  executor
	id    string
	token string
}

func NewWebhookSender(webhookURL string) (*WebhookSender, error) {
	id, token, err := ParseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}
	// Webhook execution needs no bot token.
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return &WebhookSender{exec: session, id: id, token: token}, nil
}

func (s *WebhookSender) Send(task queue.PostSubmittedTask) error {
	if _, err := s.exec.WebhookExecute(s.id, s.token, true, BuildMessage(task)); err != nil {
		if IsPermanent(err) {
			return fmt.Errorf("%w: discord webhook: %v", queue.ErrPermanent, err)
		}
		return fmt.Errorf("discord webhook: %w", err)
	}
	return nil
}

// IsPermanent reports whether Discord refused the request in a way a retry
// will not change: any 4xx other than 429.
func IsPermanent(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Response == nil {
		return false
	}
	code := restErr.Response.StatusCode
	return code >= 400 && code < 500 && code != http.StatusTooManyRequests
}

// webhookUsername returns name if Discord will accept it as a webhook
// username, otherwise "" so the webhook's own name is used.
func webhookUsername(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxUsernameRunes {
		return ""
	}
	lower := strings.ToLower(name)
	for _, word := range reservedUsernameWords {
		if strings.Contains(lower, word) {
			return ""
		}
	}
	return name
}

// BuildMessage renders the post as webhook content plus an optional embed
// for the image.
func BuildMessage(task queue.PostSubmittedTask) *discordgo.WebhookParams {
	var b strings.Builder
	b.WriteString(task.Text)
	if task.Hashtags != "" {
		b.WriteString("\n\n" + task.Hashtags)
	}
	if task.VideoURL != "" {
		b.WriteString("\n" + task.VideoURL)
	}

	params := &discordgo.WebhookParams{
		Content: truncate(b.String(), maxContentRunes),
	}
	params.Username = webhookUsername(task.BrandName)
	if task.ImageURL != "" {
		embed := &discordgo.MessageEmbed{
			Image: &discordgo.MessageEmbedImage{URL: task.ImageURL},
		}
		if task.BrandName != "" {
			embed.Footer = &discordgo.MessageEmbedFooter{Text: task.BrandName}
		}
		params.Embeds = []*discordgo.MessageEmbed{embed}
	}
	return params
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
