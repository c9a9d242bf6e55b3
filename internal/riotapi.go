package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// RiotAPIError carries the upstream HTTP status so callers can classify
// failures on the numeric code instead of grepping error strings. Status is
// zero for transport-level failures where no response was observed.
type RiotAPIError struct {
	Status  int
	Message string
}

func (e *RiotAPIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("riot API request failed: %s", e.Message)
	}
	return fmt.Sprintf("riot API error: status %d - %s", e.Status, e.Message)
}

type RiotAPIClient struct {
	apiKey      string
	platformURL string
	routingURL  string
	region      string
	client      *http.Client
	logger      *Logger
	metrics     *MetricsCollector
}

func NewRiotAPIClient(cfg *Config, logger *Logger, metrics *MetricsCollector) *RiotAPIClient {
	return &RiotAPIClient{
		apiKey:      cfg.RiotAPIKey,
		platformURL: cfg.RiotPlatformURL,
		routingURL:  cfg.RiotRoutingURL,
		region:      cfg.RiotRegion,
		logger:      logger,
		metrics:     metrics,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *RiotAPIClient) doRequest(ctx context.Context, endpoint, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &RiotAPIError{Message: err.Error()}
	}
	req.Header.Set("X-Riot-Token", c.apiKey)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordUpstream(endpoint, time.Since(start), 0)
		}
		c.logger.Error("riot_request_failed").
			Component("riot_api").
			Operation(endpoint).
			Err(err).
			Log()
		return nil, &RiotAPIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if c.metrics != nil {
		c.metrics.RecordUpstream(endpoint, time.Since(start), resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("riot_response_error").
			Component("riot_api").
			Operation(endpoint).
			Upstream(resp.StatusCode).
			Meta("body", string(body)).
			Log()
		return nil, &RiotAPIError{Status: resp.StatusCode, Message: string(body)}
	}

	return io.ReadAll(resp.Body)
}

// GetSummonerByName resolves a display name through the legacy platform
// endpoint. Riot has deprecated this path; by-riot-id below is the
// replacement and both are kept until the platform endpoint disappears.
func (c *RiotAPIClient) GetSummonerByName(ctx context.Context, name string) (*Summoner, error) {
	requestURL := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-name/%s", c.platformURL, url.PathEscape(name))
	data, err := c.doRequest(ctx, "summoner_by_name", requestURL)
	if err != nil {
		return nil, err
	}

	var result Summoner
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *RiotAPIClient) GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*AccountData, error) {
	requestURL := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.routingURL, url.PathEscape(gameName), url.PathEscape(tagLine))
	data, err := c.doRequest(ctx, "account_by_riot_id", requestURL)
	if err != nil {
		return nil, err
	}

	var result AccountData
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *RiotAPIClient) GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	requestURL := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?start=0&count=%d",
		c.routingURL, url.PathEscape(puuid), count)
	data, err := c.doRequest(ctx, "match_ids", requestURL)
	if err != nil {
		return nil, err
	}

	var result []string
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *RiotAPIClient) GetMatch(ctx context.Context, matchID string) (*MatchRecord, error) {
	requestURL := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.routingURL, url.PathEscape(matchID))
	data, err := c.doRequest(ctx, "match_detail", requestURL)
	if err != nil {
		return nil, err
	}

	var result MatchRecord
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
