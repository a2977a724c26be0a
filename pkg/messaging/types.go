package messaging

import "github.com/kubbkoz/MTSTORE-Next/pkg/types"

type ChangeTopic string

const (
	CatalogChanged ChangeTopic = "catalog_changed"
)

// CatalogChange is published after the catalog was edited through the
// admin api, every instance applies it to its own snapshot.
type CatalogChange struct {
	Upserted []types.Product `json:"upserted,omitempty"`
	Deleted  []string        `json:"deleted,omitempty"`
	// Reload asks instances to read the catalog from disk again.
	Reload bool   `json:"reload,omitempty"`
	Origin string `json:"origin,omitempty"`
}

func (c CatalogChange) IsEmpty() bool {
	return !c.Reload && len(c.Upserted) == 0 && len(c.Deleted) == 0
}
