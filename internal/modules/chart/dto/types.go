package dto

type ExportInput struct {
	Path   string
	Width  int
	Height int
	Theme  string
	Window int
}

type ExportOutput struct {
	Path   string
	Format string
	Theme  string
	Points int
}

type TerminalInput struct {
	Columns int
	Rows    int
	Theme   string
	Window  int
}

type TerminalOutput struct {
	Text   string
	Theme  string
	Points int
}
