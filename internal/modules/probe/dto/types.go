package dto

import "time"

type SignalsOutput struct {
	SecondsLeft int
	HasTimer    bool
	Ended       bool
	EndPhrase   string
	Score       int
	HasScore    bool
	ObservedAt  time.Time
}

type SnapshotInput struct {
	HTML []byte
}

type PluginCheckInput struct {
	Binary string
	SHA256 string
}

type PluginMetadataOutput struct {
	Name    string
	Version string
	Layout  string
}
