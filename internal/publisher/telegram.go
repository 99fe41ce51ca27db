package publisher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/wonny/buyside/pkg/config"
	"github.com/wonny/buyside/pkg/httputil"
	"github.com/wonny/buyside/pkg/logger"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramNotifier delivers notifications through the Telegram Bot API.
// Plain text goes out via sendMessage; artifacts go out via sendDocument
// with a caption. The delivery-mode distinction is part of the contract.
type TelegramNotifier struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	botToken   string
	chatID     string
}

// NewTelegramNotifier creates a new Telegram notifier
func NewTelegramNotifier(httpClient *httputil.Client, log *logger.Logger, cfg config.TelegramConfig) (*TelegramNotifier, error) {
	if cfg.BotToken == "" || cfg.ChatID == "" {
		return nil, fmt.Errorf("telegram bot token and chat ID are required")
	}

	return &TelegramNotifier{
		httpClient: httpClient,
		logger:     log,
		baseURL:    telegramAPIBase,
		botToken:   cfg.BotToken,
		chatID:     cfg.ChatID,
	}, nil
}

// SendMessage sends a plain text message to the configured chat
func (n *TelegramNotifier) SendMessage(ctx context.Context, text string) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, url.PathEscape(n.botToken))

	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", text)

	resp, err := n.httpClient.PostForm(ctx, endpoint, form)
	if err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram sendMessage: http %d", resp.StatusCode)
	}

	return nil
}

// SendDocument sends the file at path as a document with a caption
func (n *TelegramNotifier) SendDocument(ctx context.Context, path, caption string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open document %s: %w", path, err)
	}
	defer f.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("chat_id", n.chatID); err != nil {
		return fmt.Errorf("build multipart form: %w", err)
	}
	if err := writer.WriteField("caption", caption); err != nil {
		return fmt.Errorf("build multipart form: %w", err)
	}

	part, err := writer.CreateFormFile("document", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copy document into form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finish multipart form: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendDocument", n.baseURL, url.PathEscape(n.botToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body.Bytes()))
	if err != nil {
		return fmt.Errorf("create sendDocument request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram sendDocument: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram sendDocument: http %d", resp.StatusCode)
	}

	return nil
}
