package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/riftcoach/backend/internal/app/appconfig"
	"github.com/riftcoach/backend/internal/model"
	"github.com/riftcoach/backend/internal/pkg/rcerr"
)

const riotRequestTimeout = time.Second * 30

// Riot talks to the regional match-v5 and account-v1 REST endpoints.
type Riot struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewRiot(conf *appconfig.Config) *Riot {
	return &Riot{
		baseURL: fmt.Sprintf("https://%s.api.riotgames.com", conf.RiotRegion),
		apiKey:  conf.RiotAPIKey,
		client: &http.Client{
			Timeout: riotRequestTimeout,
		},
	}
}

// GetPUUID resolves a Riot ID (game name + tag line) to the player's puuid.
func (c *Riot) GetPUUID(ctx context.Context, gameName, tagLine string) (string, error) {
	body, err := c.get(ctx, fmt.Sprintf("/riot/account/v1/accounts/by-riot-id/%s/%s",
		url.PathEscape(gameName), url.PathEscape(tagLine)))
	if err != nil {
		return "", err
	}
	puuid := gjson.GetBytes(body, "puuid").String()
	if puuid == "" {
		return "", rcerr.ErrUpstream.Msg("account response carries no puuid")
	}
	return puuid, nil
}

// GetMatchIDs lists the player's most recent match ids, newest first.
func (c *Riot) GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	body, err := c.get(ctx, fmt.Sprintf("/lol/match/v5/matches/by-puuid/%s/ids?count=%s",
		url.PathEscape(puuid), strconv.Itoa(count)))
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, rcerr.ErrUpstream.Msg("failed to decode match id list: %s", err)
	}
	return ids, nil
}

// GetMatch fetches the end-of-game summary record of one match.
func (c *Riot) GetMatch(ctx context.Context, matchID string) (*model.Match, error) {
	body, err := c.get(ctx, "/lol/match/v5/matches/"+url.PathEscape(matchID))
	if err != nil {
		return nil, err
	}
	m, err := model.ParseMatch(body)
	if err != nil {
		return nil, rcerr.ErrUpstream.Msg("failed to decode match %s: %s", matchID, err)
	}
	return m, nil
}

// GetTimeline fetches the frame/event timeline record of one match.
func (c *Riot) GetTimeline(ctx context.Context, matchID string) (*model.Timeline, error) {
	body, err := c.get(ctx, "/lol/match/v5/matches/"+url.PathEscape(matchID)+"/timeline")
	if err != nil {
		return nil, err
	}
	t, err := model.ParseTimeline(body)
	if err != nil {
		return nil, rcerr.ErrUpstream.Msg("failed to decode timeline of match %s: %s", matchID, err)
	}
	return t, nil
}

// get performs one authenticated GET with retries on rate limiting and
// upstream 5xx responses. 404 and other 4xx responses are not retried.
func (c *Riot) get(ctx context.Context, path string) ([]byte, error) {
	var body []byte

	err := retry.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return retry.Unrecoverable(err)
		}
		req.Header.Set("X-Riot-Token", c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			body = b
			return nil
		case resp.StatusCode == http.StatusNotFound:
			return retry.Unrecoverable(rcerr.ErrNotFound)
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
			return rcerr.ErrUpstream.Msg("match data provider responded with status %d", resp.StatusCode)
		default:
			return retry.Unrecoverable(rcerr.ErrUpstream.Msg("match data provider responded with status %d", resp.StatusCode))
		}
	},
		retry.Context(ctx),
		retry.Attempts(4),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().
				Err(err).
				Uint("attempt", n).
				Str("path", path).
				Msg("retrying match data provider request")
		}),
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}
