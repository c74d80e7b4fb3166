package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
)

const DefaultBaseURL = "https://github-contributions-api.deno.dev"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Day is one calendar day as served by the API.
type Day struct {
	Date  string
	Count int
	Level int
}

type ContributionsResponse struct {
	Days  []Day
	Total int
}

// URL returns the endpoint queried for username.
func (c *Client) URL(username string) string {
	return fmt.Sprintf("%s/%s.json", c.baseURL, url.PathEscape(username))
}

// FetchContributions performs exactly one GET for username. Non-200 answers
// and undecodable bodies are errors; an empty day list is not.
func (c *Client) FetchContributions(ctx context.Context, username string) (*ContributionsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(username), nil)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var raw rawResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to decode response")
	}

	days, err := raw.flatten()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to decode response")
	}

	return &ContributionsResponse{Days: days, Total: raw.TotalContributions}, nil
}

type rawResponse struct {
	Contributions      []json.RawMessage `json:"contributions"`
	TotalContributions int               `json:"totalContributions"`
}

type rawDay struct {
	Date              string   `json:"date"`
	Count             *int     `json:"count"`
	ContributionCount int      `json:"contributionCount"`
	Level             *level   `json:"level"`
	ContributionLevel level    `json:"contributionLevel"`
	Weeks             []rawDay `json:"weeks"`
}

func (d rawDay) toDay() Day {
	out := Day{Date: d.Date, Count: d.ContributionCount}
	if d.Count != nil {
		out.Count = *d.Count
	}
	if d.Level != nil {
		out.Level = int(*d.Level)
	} else {
		out.Level = int(d.ContributionLevel)
	}
	return out
}

// flatten accepts three shapes for each entry of "contributions": a day
// object, an object nesting days under "weeks", or an array of days.
// Nested days are emitted in order, so week i day j becomes index i*7+j.
func (r rawResponse) flatten() ([]Day, error) {
	var days []Day
	for i, msg := range r.Contributions {
		msg = bytes.TrimSpace(msg)
		if len(msg) > 0 && msg[0] == '[' {
			var week []rawDay
			if err := json.Unmarshal(msg, &week); err != nil {
				return nil, fmt.Errorf("contributions[%d]: %w", i, err)
			}
			for _, d := range week {
				days = append(days, d.toDay())
			}
			continue
		}

		var d rawDay
		if err := json.Unmarshal(msg, &d); err != nil {
			return nil, fmt.Errorf("contributions[%d]: %w", i, err)
		}
		if len(d.Weeks) > 0 {
			for _, w := range d.Weeks {
				days = append(days, w.toDay())
			}
			continue
		}
		days = append(days, d.toDay())
	}
	return days, nil
}

var quartiles = map[string]level{
	"NONE":            0,
	"FIRST_QUARTILE":  1,
	"SECOND_QUARTILE": 2,
	"THIRD_QUARTILE":  3,
	"FOURTH_QUARTILE": 4,
}

// level decodes an activity bucket leniently. Numbers, numeric strings and
// quartile names are understood; anything else, or a value outside 0..4,
// decodes as 0 instead of failing the whole response.
type level int

func (l *level) UnmarshalJSON(b []byte) error {
	*l = 0

	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*l = bucket(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		s = strings.TrimSpace(s)
		if q, ok := quartiles[strings.ToUpper(s)]; ok {
			*l = q
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			*l = bucket(f)
		}
	}
	return nil
}

func bucket(n float64) level {
	if n < 0 || n > 4 || n != float64(int(n)) {
		return 0
	}
	return level(n)
}
