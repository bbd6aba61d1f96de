package domain

import "time"

type ConnectionStyle string

const (
	ConnectionStyleSolid  ConnectionStyle = "solid"
	ConnectionStyleDashed ConnectionStyle = "dashed"
	ConnectionStyleDotted ConnectionStyle = "dotted"
)

// Connection is a directed reference between two blocks, rendered as
// a curved line. Connections never own their endpoint blocks.
type Connection struct {
	ID          string          `json:"id"`
	FromBlockID string          `json:"fromBlockId"`
	ToBlockID   string          `json:"toBlockId"`
	Label       string          `json:"label,omitempty"`
	Color       string          `json:"color"`
	Style       ConnectionStyle `json:"style"`
	CreatedAt   time.Time       `json:"createdAt"`
}
