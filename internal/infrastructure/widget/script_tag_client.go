package widget

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"revebot.backend/internal/domain/entities"
)

// ScriptTagClient registers the chat widget script tag with the storefront
// platform. Registration is an upsert keyed by merchant domain, so repeated
// calls are safe and always reflect the current chat state.
type ScriptTagClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewScriptTagClient(baseURL string) *ScriptTagClient {
	return &ScriptTagClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type scriptTagPayload struct {
	MerchantID  string `json:"merchantId"`
	Domain      string `json:"domain"`
	Enabled     bool   `json:"enabled"`
	ChatEnabled bool   `json:"chatEnabled"`
}

// Register upserts the widget script tag for the merchant's storefront
func (c *ScriptTagClient) Register(ctx context.Context, merchant *entities.Merchant, enabled, chatEnabled bool) error {
	payload := scriptTagPayload{
		MerchantID:  merchant.ID.String(),
		Domain:      merchant.Domain,
		Enabled:     enabled,
		ChatEnabled: chatEnabled,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/api/v1/script-tags/%s", c.baseURL, merchant.Domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("script tag registration failed: status %d", resp.StatusCode)
	}
	return nil
}
