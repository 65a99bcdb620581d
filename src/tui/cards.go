package tui

import (
	"fmt"
	"strconv"
	"strings"

	"truckfinder-agent/src/contracts"
	"truckfinder-agent/src/sanitize"
)

// Card column widths. The name column absorbs any extra terminal
// width; the rest are fixed so figures line up across cards.
const (
	cardSpecWidth  = 42
	cardPriceWidth = 12
	minNameWidth   = 16
)

// renderCards formats the vehicle cards attached to a reply as aligned
// rows under the assistant's message.
func (m ChatModel) renderCards(cards []contracts.VehicleCard, width int) string {
	if len(cards) == 0 {
		return ""
	}

	nameWidth := width - cardSpecWidth - cardPriceWidth - 6
	if nameWidth < minNameWidth {
		nameWidth = minNameWidth
	}

	style := m.styles.CardStyle()
	price := m.styles.SpeakerStyle(m.styles.PriceColor)

	var b strings.Builder
	for i, card := range cards {
		if i > 0 {
			b.WriteString("\n")
		}
		row := fmt.Sprintf("%s  %s  %s",
			TruncateAndPad(cardName(card), nameWidth, true),
			TruncateAndPad(cardSpecs(card), cardSpecWidth, true),
			price.Render(TruncateAndPad(cardPrice(card), cardPriceWidth, false)),
		)
		b.WriteString(style.Render(row))
	}
	return b.String()
}

// cardName is "ID brand model", collapsed to one line.
func cardName(c contracts.VehicleCard) string {
	name := strings.TrimSpace(c.Brand + " " + c.ModelExtended)
	if name == "" {
		name = "Vehicle"
	}
	return sanitize.Collapse(fmt.Sprintf("[%d] %s", c.ID, name))
}

// cardSpecs joins the known spec fields with separators; unknown
// fields are simply left out.
func cardSpecs(c contracts.VehicleCard) string {
	var parts []string
	if c.Configuration != "" {
		parts = append(parts, c.Configuration)
	}
	if c.Power != nil {
		parts = append(parts, strconv.Itoa(*c.Power)+" HP")
	}
	if c.EuroNorm != nil {
		parts = append(parts, "Euro "+strconv.Itoa(*c.EuroNorm))
	}
	if c.Gearbox != "" {
		parts = append(parts, c.Gearbox)
	}
	if c.Mileage != nil {
		parts = append(parts, fmt.Sprintf("%d km", *c.Mileage))
	}
	return strings.Join(parts, " | ")
}

func cardPrice(c contracts.VehicleCard) string {
	if c.Price == nil || *c.Price <= 0 {
		return "On request"
	}
	return fmt.Sprintf("€%.0f", *c.Price)
}
