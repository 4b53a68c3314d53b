package tui

import (
	"strconv"
	"strings"
)

// Welcome is printed once when a session starts.
const Welcome = "Hello, welcome to the customer support section. The following is a list of options for any queries you may have when purchasing/availing our services:"

// MenuItems are the numbered menu options, in order. Option n is chosen by
// typing n.
var MenuItems = []string{
	"Payment",
	"Delivery",
	"Seasonal availability",
	"Contact information",
	"Other FAQ",
	"Feedback",
}

const separator = "———————————————————————————"

// Banner returns the welcome text and numbered menu.
func Banner() string {
	var b strings.Builder
	b.WriteString(BannerStyle.Render(Welcome))
	b.WriteString("\n")
	for i, item := range MenuItems {
		b.WriteString(MenuStyle.Render(strconv.Itoa(i+1) + ". " + item))
		b.WriteString("\n")
	}
	b.WriteString(SeparatorStyle.Render(separator))
	b.WriteString("\n")
	return b.String()
}

