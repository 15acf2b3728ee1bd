package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/konnecta/weekend-api/internal/config"
	"github.com/konnecta/weekend-api/internal/models"
	"gorm.io/gorm"
)

const OneSignalEndpoint = "https://onesignal.com/api/v1/notifications"

// Notification is one outbound push. When PlayerIDs is set the roster
// lookup is bypassed and the tokens are used verbatim; otherwise recipients
// are every profile with a push token except ExcludeUserID.
type Notification struct {
	Heading       string
	Contents      string
	WeekendDate   string
	ExcludeUserID string
	PlayerIDs     []string
}

// Notifier dispatches a push best-effort. Implementations never return an
// error: delivery failures are logged and swallowed so that a failed push
// can never fail the user action that triggered it.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type OneSignalNotifier struct {
	db       *gorm.DB
	client   *http.Client
	endpoint string
	appID    string
	apiKey   string
	appURL   string
	silent   bool
}

func NewOneSignalNotifier(cfg *config.Config, db *gorm.DB) *OneSignalNotifier {
	return &OneSignalNotifier{
		db:       db,
		client:   &http.Client{Timeout: 10 * time.Second},
		endpoint: OneSignalEndpoint,
		appID:    cfg.OneSignalAppID,
		apiKey:   cfg.OneSignalRESTAPIKey,
		appURL:   cfg.AppURL,
		silent:   cfg.SilentNotifications,
	}
}

// ResolveRecipients returns the push tokens of every profile that opted in,
// minus the excluded user.
func (n *OneSignalNotifier) ResolveRecipients(excludeUserID string) ([]string, error) {
	var profiles []models.Profile
	query := n.db.Where("one_signal_id IS NOT NULL AND one_signal_id <> ''")
	if excludeUserID != "" {
		query = query.Where("id <> ?", excludeUserID)
	}
	if err := query.Find(&profiles).Error; err != nil {
		return nil, err
	}

	playerIDs := make([]string, 0, len(profiles))
	for _, p := range profiles {
		playerIDs = append(playerIDs, *p.OneSignalID)
	}
	return playerIDs, nil
}

// Notify resolves the recipient set and performs one batch POST against the
// push provider. Every failure path ends here: an empty recipient set, the
// silence switch and transport errors all result in a log line at most.
func (n *OneSignalNotifier) Notify(ctx context.Context, notification Notification) {
	if n.silent {
		log.Printf("Notifications are silenced (SILENT_NOTIFICATIONS=true)")
		return
	}
	if n.appID == "" || n.apiKey == "" {
		log.Printf("OneSignal not configured, skipping notification %q", notification.Heading)
		return
	}

	playerIDs := notification.PlayerIDs
	if playerIDs == nil {
		resolved, err := n.ResolveRecipients(notification.ExcludeUserID)
		if err != nil {
			log.Printf("Failed to resolve notification recipients: %v", err)
			return
		}
		playerIDs = resolved
	}
	if len(playerIDs) == 0 {
		return
	}

	payload := pushPayload{
		AppID:            n.appID,
		IncludePlayerIDs: playerIDs,
		Headings:         localized(notification.Heading),
		Contents:         localized(notification.Contents),
		URL:              fmt.Sprintf("%s?date=%s", n.appURL, notification.WeekendDate),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to encode notification payload: %v", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		log.Printf("Failed to build notification request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+n.apiKey)

	resp, err := n.client.Do(req)
	if err != nil {
		log.Printf("Error enviant notificació: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Printf("Push provider returned %d: %s", resp.StatusCode, respBody)
	}
}

type pushPayload struct {
	AppID            string            `json:"app_id"`
	IncludePlayerIDs []string          `json:"include_player_ids"`
	Headings         map[string]string `json:"headings"`
	Contents         map[string]string `json:"contents"`
	URL              string            `json:"url"`
}

// Only two locales exist; the Catalan copy is canonical and doubles as the
// English fallback.
func localized(text string) map[string]string {
	return map[string]string{"en": text, "ca": text}
}
