package dto

type SetThemeInput struct {
	Theme string
}

type ThemeOutput struct {
	Theme string
}
