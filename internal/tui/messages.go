package tui

import "github.com/vito/progrock"

// MsgTapeUpdate wraps the raw update from progrock.
type MsgTapeUpdate struct {
	Update *progrock.StatusUpdate
}

// MsgTapeEnded is sent when the update stream has ended.
type MsgTapeEnded struct{}
