package subscribe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
)

// Request carries one lead submission to the mailing list service
type Request struct {
	Key   string
	Email string
	Name  string
	Phone string
	// WithPhone sends the phone parameter even when it is empty
	WithPhone bool
}

// Client defines the interface for submitting leads to the mailing list service
type Client interface {
	Subscribe(ctx context.Context, req Request) error
}

type clientImpl struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a new subscription client posting to endpoint
func NewClient(endpoint string, timeout time.Duration) Client {
	return &clientImpl{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Subscribe issues the process request. The response body carries nothing
// useful and is discarded; only transport failures and non-2xx statuses are
// reported.
func (c *clientImpl) Subscribe(ctx context.Context, req Request) error {
	target, err := c.buildURL(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("error submitting subscription: %w", err)
	}
	defer resp.Body.Close()

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("error from subscription service: status %d", resp.StatusCode)
	}

	log.WithField("prefix", "subscribe").WithField("key", req.Key).Debug("subscription request settled")
	return nil
}

func (c *clientImpl) buildURL(req Request) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("error parsing endpoint: %w", err)
	}

	params := u.Query()
	params.Set("rid[0]", req.Key)
	params.Set("lead_email", req.Email)
	params.Set("lead_name", req.Name)
	if req.WithPhone || req.Phone != "" {
		params.Set("lead_phone", req.Phone)
	}
	u.RawQuery = params.Encode()

	return u.String(), nil
}
