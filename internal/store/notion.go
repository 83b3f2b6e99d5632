package store

import (
	"context"
	"fmt"
)

// SaveNotionPageID stores the Notion page ID for a given application.
func (s *Store) SaveNotionPageID(ctx context.Context, appID int64, notionPageID string) error {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE applications SET notion_page_id = ? WHERE id = ?`,
		notionPageID, appID,
	)
	if err != nil {
		return fmt.Errorf("save notion page id for application %d: %w", appID, err)
	}
	return requireAffected(res, appID)
}
