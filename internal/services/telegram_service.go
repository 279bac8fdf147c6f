package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/harvest/internal/models"
)

const defaultTelegramAPI = "https://api.telegram.org"

// TelegramService posts admin notifications through the Telegram Bot API.
type TelegramService struct {
	botToken    string
	adminChatID string
	apiBase     string
	client      *http.Client
}

// NewTelegramService creates a new TelegramService. Empty credentials turn
// every send into a no-op.
func NewTelegramService(botToken, adminChatID string) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
		apiBase:     defaultTelegramAPI,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Enabled reports whether both the bot token and admin chat are configured.
func (s *TelegramService) Enabled() bool {
	return s.botToken != "" && s.adminChatID != ""
}

// SendToAdmin sends an HTML message to the admin chat.
func (s *TelegramService) SendToAdmin(ctx context.Context, text string) error {
	if !s.Enabled() {
		zap.L().Debug("telegram notifications disabled")
		return nil
	}

	body, err := json.Marshal(telegramMessage{
		ChatID:    s.adminChatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(s.apiBase, "/"), s.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}

// NotifyNewEnquiry tells the admin chat about a stored enquiry.
func (s *TelegramService) NotifyNewEnquiry(ctx context.Context, msg models.Message) error {
	if !s.Enabled() {
		return nil
	}
	return s.SendToAdmin(ctx, FormatEnquiry(msg))
}

// FormatEnquiry renders an enquiry as a Telegram HTML message.
func FormatEnquiry(msg models.Message) string {
	var b strings.Builder
	b.WriteString("<b>New enquiry</b>\n")
	fmt.Fprintf(&b, "<b>Name:</b> %s\n", html.EscapeString(msg.Name))
	fmt.Fprintf(&b, "<b>Email:</b> %s\n", html.EscapeString(msg.Email))
	fmt.Fprintf(&b, "<b>Product:</b> %s\n", html.EscapeString(msg.ProductType))
	fmt.Fprintf(&b, "<b>Quantity:</b> %s\n", html.EscapeString(msg.Quantity))
	fmt.Fprintf(&b, "<b>Destination:</b> %s", html.EscapeString(msg.Destination))
	if msg.Message != nil && *msg.Message != "" {
		fmt.Fprintf(&b, "\n\n%s", html.EscapeString(*msg.Message))
	}
	return b.String()
}
