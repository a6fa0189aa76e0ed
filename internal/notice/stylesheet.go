package notice

import (
	"fmt"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/constants"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/models"
)

const stylesheetTemplate = ".%[1]s {border:%[2]dpx solid %[3]s;padding:12px 16px;color:%[4]s;background:%[5]s;" +
	"font-weight:600;text-align:center;margin-bottom:1.5em;border-radius:%[6]dpx;font-size:0.9em;line-height:1.5;}" +
	".%[1]s a{color:%[4]s;text-decoration:underline;}"

// Stylesheet returns the CSS rule block for the notice container. Colors and
// sizes are checked again so that hand-built settings cannot inject CSS.
func Stylesheet(s models.Settings) string {
	border := s.BorderColor
	if !IsHexColor(border) {
		border = models.DefaultBorderColor
	}
	text := s.TextColor
	if !IsHexColor(text) {
		text = models.DefaultTextColor
	}
	background := s.BackgroundColor
	if !IsHexColor(background) {
		background = models.DefaultBackgroundColor
	}

	width := max(0, min(s.BorderWidth, models.MaxBorderWidth))
	radius := max(0, min(s.BorderRadius, models.MaxBorderRadius))

	return fmt.Sprintf(stylesheetTemplate, constants.NoticeClass, width, border, text, background, radius)
}
