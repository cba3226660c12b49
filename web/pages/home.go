// Package pages holds the full-page components.
package pages

import (
	"context"
	"fmt"
	"io"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"

	"github.com/cristianadrielbraun/qrrestyle/web/components"
)

const inputClass = "w-full rounded-md border border-gray-300 px-3 py-2 text-sm"

func selectControl(w io.Writer, name, label string, choices []components.Choice, selected string) error {
	e := templ.EscapeString[string]
	if _, err := fmt.Fprintf(w, `<label class="block text-sm font-medium">%s<select name="%s" class="%s">`,
		e(label), e(name), twmerge.Merge(inputClass, "mt-1 bg-white")); err != nil {
		return err
	}
	for _, c := range choices {
		sel := ""
		if c.Value == selected {
			sel = " selected"
		}
		if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, e(c.Value), sel, e(c.Label)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</select></label>`)
	return err
}

// HomePage is the restyling form. It posts to /api/convert and swaps the
// returned SVG into the preview.
func HomePage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>QR restyle</title>
<link rel="stylesheet" href="/web/assets/css/output.css">
<script src="/web/static/js/htmx.min.js" defer></script>
</head>
<body class="min-h-screen bg-gray-50 text-gray-900">
<main class="mx-auto max-w-3xl p-6">
<h1 class="mb-4 text-2xl font-bold">Restyle a QR code</h1>
<form hx-post="/api/convert" hx-encoding="multipart/form-data" hx-target="#preview" class="grid gap-4 sm:grid-cols-2">
`); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, `<label class="block text-sm font-medium">QR image<input type="file" name="image" accept="image/*" required class="%s"></label>
<label class="block text-sm font-medium">Logo<input type="file" name="logo" accept="image/*" class="%s"></label>
<label class="block text-sm font-medium">Dots colour<input type="color" name="dotsColor" value="#000000" class="%s"></label>
<label class="block text-sm font-medium">Background colour<input type="color" name="backgroundColor" value="#ffffff" class="%s"></label>
`, twmerge.Merge(inputClass, "mt-1"), twmerge.Merge(inputClass, "mt-1"),
			twmerge.Merge(inputClass, "mt-1 h-10 p-1"), twmerge.Merge(inputClass, "mt-1 h-10 p-1")); err != nil {
			return err
		}

		if err := selectControl(w, "dotsType", "Dots", components.ModuleStyles, "square"); err != nil {
			return err
		}
		if err := selectControl(w, "cornersSquareType", "Corners", components.CornerStyles, "square"); err != nil {
			return err
		}
		if err := selectControl(w, "logoSize", "Logo size", components.LogoSizes, "0.2"); err != nil {
			return err
		}

		_, err := io.WriteString(w, `<label class="flex items-center gap-2 text-sm"><input type="checkbox" name="transparent" value="true">Transparent background</label>
<label class="flex items-center gap-2 text-sm"><input type="checkbox" name="debug" value="true">Show logo mask</label>
<button type="submit" class="rounded-md bg-gray-900 px-4 py-2 text-sm font-medium text-white sm:col-span-2">Restyle</button>
</form>
<div id="preview" class="mt-6 flex justify-center"></div>
<div id="toasts"></div>
</main>
</body>
</html>
`)
		return err
	})
}
