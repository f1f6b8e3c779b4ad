package twitter

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/michimani/gotwi"
	"github.com/michimani/gotwi/tweet/managetweet"
	"github.com/michimani/gotwi/tweet/managetweet/types"

	"NewsThreader/internal/config"
	"NewsThreader/internal/ports"
)

// Client posts tweets through the X API v2 with OAuth 1.0a user context.
type Client struct {
	api *gotwi.Client
}

var _ ports.Poster = (*Client)(nil)

// Connect authorizes a session for the given account credentials.
func Connect(creds config.TwitterCredentials) (*Client, error) {
	if creds.APIKey == "" || creds.APIKeySecret == "" || creds.AccessToken == "" || creds.AccessSecret == "" {
		return nil, fmt.Errorf("twitter credentials are incomplete")
	}

	api, err := gotwi.NewClient(&gotwi.NewClientInput{
		HTTPClient:           &http.Client{Timeout: 15 * time.Second},
		AuthenticationMethod: gotwi.AuthenMethodOAuth1UserContext,
		OAuthToken:           creds.AccessToken,
		OAuthTokenSecret:     creds.AccessSecret,
		APIKey:               creds.APIKey,
		APIKeySecret:         creds.APIKeySecret,
	})
	if err != nil {
		return nil, fmt.Errorf("twitter login: %w", err)
	}
	return &Client{api: api}, nil
}

// CreatePost publishes a standalone tweet.
func (c *Client) CreatePost(ctx context.Context, text string) (string, error) {
	return c.create(ctx, &types.CreateInput{Text: gotwi.String(text)})
}

// CreateReply publishes text as a reply to parentID.
func (c *Client) CreateReply(ctx context.Context, text, parentID string) (string, error) {
	return c.create(ctx, &types.CreateInput{
		Text:  gotwi.String(text),
		Reply: &types.CreateInputReply{InReplyToTweetID: parentID},
	})
}

func (c *Client) create(ctx context.Context, in *types.CreateInput) (string, error) {
	out, err := managetweet.Create(ctx, c.api, in)
	if err != nil {
		return "", fmt.Errorf("create tweet: %w", err)
	}
	id := gotwi.StringValue(out.Data.ID)
	if id == "" {
		return "", fmt.Errorf("create tweet: response has no id")
	}
	return id, nil
}
