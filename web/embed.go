// Package web holds the browser side of the captcha: the embeddable SDK,
// the iframe solver and the standalone widget, plus the iframe pages.
package web

import "embed"

var (
	//go:embed static
	Static embed.FS

	//go:embed templates
	Templates embed.FS
)
