// Package toast renders notification toasts for HTMX swaps.
package toast

import (
	"context"
	"fmt"
	"io"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

type Variant string

const (
	VariantDefault Variant = "default"
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

type Position string

const (
	PositionTopRight     Position = "top-right"
	PositionTopLeft      Position = "top-left"
	PositionBottomRight  Position = "bottom-right"
	PositionBottomLeft   Position = "bottom-left"
	PositionTopCenter    Position = "top-center"
	PositionBottomCenter Position = "bottom-center"
)

type Props struct {
	ID            string
	Class         string
	Title         string
	Description   string
	Variant       Variant
	Position      Position
	Duration      int
	Dismissible   bool
	ShowIndicator bool
	Icon          bool
}

var variantClasses = map[Variant]string{
	VariantDefault: "border-border bg-background text-foreground",
	VariantSuccess: "border-green-500 bg-green-50 text-green-900",
	VariantError:   "border-red-500 bg-red-50 text-red-900",
	VariantWarning: "border-yellow-500 bg-yellow-50 text-yellow-900",
	VariantInfo:    "border-blue-500 bg-blue-50 text-blue-900",
}

var positionClasses = map[Position]string{
	PositionTopRight:     "top-4 right-4",
	PositionTopLeft:      "top-4 left-4",
	PositionBottomRight:  "bottom-4 right-4",
	PositionBottomLeft:   "bottom-4 left-4",
	PositionTopCenter:    "top-4 left-1/2 -translate-x-1/2",
	PositionBottomCenter: "bottom-4 left-1/2 -translate-x-1/2",
}

var icons = map[Variant]string{
	VariantSuccess: "✓",
	VariantError:   "✕",
	VariantWarning: "!",
	VariantInfo:    "i",
}

// Classes returns the merged class list of the toast container.
func Classes(p Props) string {
	v, ok := variantClasses[p.Variant]
	if !ok {
		v = variantClasses[VariantDefault]
	}
	pos, ok := positionClasses[p.Position]
	if !ok {
		pos = positionClasses[PositionBottomRight]
	}
	return twmerge.Merge(
		"fixed z-50 flex w-80 items-start gap-3 rounded-md border p-4 shadow-lg",
		v,
		pos,
		p.Class,
	)
}

// Toast renders p. A positive Duration dismisses the toast after that many
// milliseconds.
func Toast(p Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if p.Variant == "" {
			p.Variant = VariantDefault
		}
		e := templ.EscapeString[string]

		if _, err := fmt.Fprintf(w, `<div role="alert" data-toast data-variant="%s" data-duration="%d" class="%s"`,
			e(string(p.Variant)), p.Duration, e(Classes(p))); err != nil {
			return err
		}
		if p.ID != "" {
			if _, err := fmt.Fprintf(w, ` id="%s"`, e(p.ID)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, ">"); err != nil {
			return err
		}

		if icon, ok := icons[p.Variant]; ok && p.Icon {
			if _, err := fmt.Fprintf(w, `<span class="shrink-0 font-bold" aria-hidden="true">%s</span>`, icon); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<div class="flex-1">`); err != nil {
			return err
		}
		if p.Title != "" {
			if _, err := fmt.Fprintf(w, `<p class="text-sm font-semibold">%s</p>`, e(p.Title)); err != nil {
				return err
			}
		}
		if p.Description != "" {
			if _, err := fmt.Fprintf(w, `<p class="text-sm opacity-90">%s</p>`, e(p.Description)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}

		if p.Dismissible {
			if _, err := io.WriteString(w, `<button type="button" class="opacity-70 hover:opacity-100" aria-label="Close" data-toast-dismiss>×</button>`); err != nil {
				return err
			}
		}
		if p.ShowIndicator && p.Duration > 0 {
			if _, err := fmt.Fprintf(w, `<div class="absolute bottom-0 left-0 h-1 w-full bg-current opacity-20" style="animation: toast-progress %dms linear forwards"></div>`, p.Duration); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
