package web

import "embed"

// TemplatesFS embeds the screen templates.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS embeds the stylesheet.
//
//go:embed static/*
var StaticFS embed.FS
