package model

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuoteAudit records one computed quote for after-the-fact analysis: which
// request shape was asked, what it priced to and whether the cache served it.
type QuoteAudit struct {
	ID           primitive.ObjectID `json:"id"`
	Timestamp    time.Time          `json:"timestamp"`
	RequestID    string             `json:"request_id,omitempty"`
	Fingerprint  string             `json:"fingerprint"`
	Sistema      string             `json:"sistema"`
	ProposalType string             `json:"proposal_type"`
	AreaTelhado  float64            `json:"area_telhado"`
	ItemCount    int                `json:"item_count"`
	WarningCount int                `json:"warning_count"`
	Total        decimal.Decimal    `json:"total" swaggertype:"number"`
	FromCache    bool               `json:"from_cache"`
	Duration     time.Duration      `json:"duration_ms,omitempty"`
	Error        string             `json:"error,omitempty"`
}

// QuoteAuditQuery provides options for querying quote audits.
type QuoteAuditQuery struct {
	RequestID   string
	Fingerprint string
	Sistema     string
	StartTime   *time.Time
	EndTime     *time.Time
	Limit       int
	Skip        int
}
