package notion

import (
	"context"
	"net/http"
	"time"

	gnt "github.com/dstotijn/go-notion"

	"jobpilot.local/internal/domain"
)

// Client mirrors applications into a Notion database. It implements
// tracker.Mirror.
type Client struct {
	api        *gnt.Client
	databaseID string
}

func New(token, databaseID string, timeout time.Duration) *Client {
	return &Client{
		api:        gnt.NewClient(token, gnt.WithHTTPClient(&http.Client{Timeout: timeout})),
		databaseID: databaseID,
	}
}

// Ping just tries a tiny QueryDatabase to see if the DB is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.api.QueryDatabase(ctx, c.databaseID, &gnt.DatabaseQuery{
		PageSize: 1,
	})
	return err
}

// SearchDatabases is used by /debug/notion/search to list DBs.
func (c *Client) SearchDatabases(ctx context.Context) ([]gnt.Database, error) {
	resp, err := c.api.Search(ctx, &gnt.SearchOpts{
		Filter: &gnt.SearchFilter{
			Property: "object",
			Value:    "database",
		},
		PageSize: 20,
	})
	if err != nil {
		return nil, err
	}

	var dbs []gnt.Database
	for _, obj := range resp.Results {
		if db, ok := obj.(gnt.Database); ok {
			dbs = append(dbs, db)
		}
	}

	return dbs, nil
}

// Created adds a row for app to the database and returns the page id.
func (c *Client) Created(ctx context.Context, app domain.Application) (string, error) {
	props := buildApplicationPageProperties(app)

	page, err := c.api.CreatePage(ctx, gnt.CreatePageParams{
		ParentType:             gnt.ParentTypeDatabase,
		ParentID:               c.databaseID,
		DatabasePageProperties: &props,
	})
	if err != nil {
		return "", err
	}
	return page.ID, nil
}

// Updated rewrites the mirrored row. Records that were never mirrored are
// skipped.
func (c *Client) Updated(ctx context.Context, app domain.Application) error {
	if app.NotionPageID == "" {
		return nil
	}
	_, err := c.api.UpdatePage(ctx, app.NotionPageID, gnt.UpdatePageParams{
		DatabasePageProperties: buildApplicationUpdateProperties(app),
	})
	return err
}

// Deleted archives the mirrored row.
func (c *Client) Deleted(ctx context.Context, app domain.Application) error {
	if app.NotionPageID == "" {
		return nil
	}
	archived := true
	_, err := c.api.UpdatePage(ctx, app.NotionPageID, gnt.UpdatePageParams{
		Archived: &archived,
	})
	return err
}
