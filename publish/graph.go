package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// graphBase is the Facebook Graph API root shared by the Instagram and
// Facebook publishers.
const graphBase = "https://graph.facebook.com/v18.0"

type graphError struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func graphPost(ctx context.Context, client *http.Client, urlStr string, vals url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, strings.NewReader(vals.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return graphDo(client, req, out)
}

func graphGet(ctx context.Context, client *http.Client, urlStr string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return err
	}
	return graphDo(client, req, out)
}

func graphDo(client *http.Client, req *http.Request, out interface{}) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var ge graphError
		if json.Unmarshal(body, &ge) == nil && ge.Error.Message != "" {
			// Code 190 means the token expired or was revoked.
			if ge.Error.Code == 190 {
				return fmt.Errorf("invalid access token: %s", ge.Error.Message)
			}
			return fmt.Errorf("graph api: %s", ge.Error.Message)
		}
		return fmt.Errorf("graph api: status %d", resp.StatusCode)
	}

	return json.Unmarshal(body, out)
}
