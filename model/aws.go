package model

import "time"

// AccountInfo represents the AWS identity behind the configured credentials
type AccountInfo struct {
	AccountID string
	Arn       string
	UserID    string
}

// IdleDatabase is an RDS instance with no connections over the lookback window
type IdleDatabase struct {
	Identifier   string
	Arn          string
	InstanceType string
	Engine       string
	Status       string
	CreatedAt    *time.Time
	Tagged       bool
}
