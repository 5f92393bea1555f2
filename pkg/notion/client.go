package notion

import (
	"context"
	"fmt"

	gnt "github.com/dstotijn/go-notion"
)

type pageAPI interface {
	CreatePage(ctx context.Context, params gnt.CreatePageParams) (gnt.Page, error)
	QueryDatabase(ctx context.Context, id string, query *gnt.DatabaseQuery) (gnt.DatabaseQueryResponse, error)
}

// Client creates rows in a single Notion database
type Client struct {
	api        pageAPI
	databaseID string
}

func New(token, databaseID string) *Client {
	return &Client{
		api:        gnt.NewClient(token),
		databaseID: databaseID,
	}
}

// Ping runs a tiny QueryDatabase to see if the database is reachable
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.api.QueryDatabase(ctx, c.databaseID, &gnt.DatabaseQuery{
		PageSize: 1,
	})
	if err != nil {
		return fmt.Errorf("notion: query database %s: %w", c.databaseID, err)
	}
	return nil
}

// CreateRow adds a page with props to the database and returns its id
func (c *Client) CreateRow(ctx context.Context, props gnt.DatabasePageProperties) (string, error) {
	page, err := c.api.CreatePage(ctx, gnt.CreatePageParams{
		ParentType:             gnt.ParentTypeDatabase,
		ParentID:               c.databaseID,
		DatabasePageProperties: &props,
	})
	if err != nil {
		return "", fmt.Errorf("notion: create page: %w", err)
	}
	return page.ID, nil
}
