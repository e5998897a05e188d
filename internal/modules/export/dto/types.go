package dto

import "time"

type ExportInput struct {
	Path string
}

type ExportOutput struct {
	Path string
	Rows int
}

type NotifyInput struct {
	Score int
}

type ToastOutput struct {
	Message   string
	ExpiresAt time.Time
	Visible   bool
}
