package termui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joeycumines/pocket-dos/internal/story"
)

const (
	zoneBuy      = "ad-buy"
	zoneMessage  = "ad-message"
	zoneSend     = "chat-send"
	zoneContinue = "chat-continue"
	zoneBoot     = "title-boot"
)

// hit reports whether msg is a left click inside zone id.
func (a *App) hit(id string, msg tea.MouseMsg) bool {
	if !isClick(msg) {
		return false
	}
	z := a.zones.Get(id)
	return z != nil && z.InBounds(msg)
}

func (a *App) contentWidth() int {
	return max(30, min(a.width, 84)-4)
}

// ad

func (a *App) adKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "tab", "right", "left", "shift+tab":
		a.adFocus = 1 - a.adFocus
	case "b":
		a.goTo(a.state.BuyNow)
	case "m":
		a.goTo(a.state.MessageSeller)
	case "enter", " ":
		if a.adFocus == 0 {
			a.goTo(a.state.BuyNow)
		} else {
			a.goTo(a.state.MessageSeller)
		}
	}
}

func (a *App) adMouse(msg tea.MouseMsg) {
	switch {
	case a.hit(zoneBuy, msg):
		a.goTo(a.state.BuyNow)
	case a.hit(zoneMessage, msg):
		a.goTo(a.state.MessageSeller)
	}
}

func (a *App) button(id, label string, focused, primary bool) string {
	style := a.theme.Button
	switch {
	case focused:
		style = a.theme.Focused
	case primary:
		style = a.theme.Primary
	}
	return a.zones.Mark(id, style.Render(label))
}

func (a *App) adView() string {
	t := a.theme
	w := a.contentWidth()
	var b strings.Builder
	b.WriteString(t.Brand.Render(story.Brand) + "  " + t.Muted.Render(story.BrandTagline) + "\n\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(story.ListingTitle) + "\n")
	b.WriteString(t.Muted.Render("Listed by "+story.SellerFull+" · "+story.ListingID) + "\n\n")
	b.WriteString(t.Price.Render(story.Price) + "  " + story.Condition + "\n\n")
	b.WriteString(lipgloss.NewStyle().Width(w).Render(story.Description) + "\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		a.button(zoneBuy, story.BuyNowLabel, a.adFocus == 0, true),
		" ",
		a.button(zoneMessage, story.MessageSellerLabel, a.adFocus == 1, false),
	) + "\n\n")

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Item details") + "\n")
	for _, d := range story.ItemDetails {
		b.WriteString(t.Muted.Render(padRight(d.Name, 13)) + d.Value + "\n")
	}
	b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("Seller") + "\n")
	b.WriteString(story.SellerFull + "  " + t.Brand.Render("✓ Verified seller") + "\n")
	b.WriteString(lipgloss.NewStyle().Width(w).Render(t.Muted.Render(story.SellerNote)) + "\n\n")
	b.WriteString(lipgloss.NewStyle().Width(w).Render(story.Protection) + "\n\n")
	b.WriteString(t.Muted.Render(story.Footer + "   tab switch · enter select · ctrl+c quit"))
	return t.Page.Render(b.String())
}

// chat

func (a *App) chatKey(msg tea.KeyMsg) {
	if msg.Type != tea.KeyEnter {
		return
	}
	if a.chat.Done() {
		a.goTo(a.state.ChatComplete)
		return
	}
	a.chat.Send()
}

func (a *App) chatMouse(msg tea.MouseMsg) {
	switch {
	case a.chat.Done() && a.hit(zoneContinue, msg):
		a.goTo(a.state.ChatComplete)
	case a.hit(zoneSend, msg):
		a.chat.Send()
	}
}

func (a *App) chatView() string {
	t := a.theme
	w := a.contentWidth()
	bubbleWidth := w * 2 / 3

	header := t.Brand.Render(story.Brand) + "  " +
		lipgloss.NewStyle().Bold(true).Render("Messages with "+story.SellerName+" • "+story.ItemModel)

	var rows []string
	for _, m := range a.chat.Messages() {
		style, align := t.BubbleThe, lipgloss.Left
		if m.From == story.You {
			style, align = t.BubbleYou, lipgloss.Right
		}
		meta := t.Muted.Render(m.From.String())
		bubble := style.Width(min(bubbleWidth, lipgloss.Width(m.Text)+2)).Render(m.Text)
		rows = append(rows, lipgloss.PlaceHorizontal(w, align, meta), lipgloss.PlaceHorizontal(w, align, bubble), "")
	}
	if a.chat.SellerTyping() {
		dots := int(a.sched.Now()/(400*time.Millisecond))%3 + 1
		rows = append(rows, t.Muted.Italic(true).Render(story.SellerName+" is typing"+strings.Repeat(".", dots)))
	}

	// keep the newest messages in view
	body := strings.Split(strings.Join(rows, "\n"), "\n")
	if room := max(3, a.height-10); len(body) > room {
		body = body[len(body)-room:]
	}

	var composer string
	if a.chat.Done() {
		composer = t.Muted.Render(story.ConversationComplete) + "  " +
			a.button(zoneContinue, "Continue", true, false)
	} else {
		text := a.chat.Composer()
		if text == "" {
			text = t.Muted.Render("Message…")
		}
		box := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Width(max(10, w-14)).Render(text)
		composer = lipgloss.JoinHorizontal(lipgloss.Center, box, " ", a.button(zoneSend, "Send", a.chat.CanSend(), true))
	}

	return t.Page.Render(header + "\n\n" + strings.Join(body, "\n") + "\n" + composer +
		"\n" + t.Muted.Render("enter send · ctrl+c quit"))
}

// arrival

func (a *App) arrivalView() string {
	var style lipgloss.Style
	switch a.arrival.Phase() {
	case story.ArrivalHidden, story.ArrivalOver:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("0"))
	case story.ArrivalShown:
		style = lipgloss.NewStyle().Bold(true)
	case story.ArrivalFading:
		style = lipgloss.NewStyle().Faint(true)
	}
	return lipgloss.Place(a.width, max(1, a.height-1), lipgloss.Center, lipgloss.Center, style.Render(story.ArrivalText))
}

// title

func (a *App) titleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "enter", " ":
		a.goTo(a.state.TitleComplete)
	}
}

func (a *App) titleView() string {
	t := a.theme
	title := lipgloss.JoinVertical(lipgloss.Center,
		t.Heading.Render(story.ItemModel),
		t.Dim.Render("handheld computer"),
		"",
		a.zones.Mark(zoneBoot, t.Screen.Render(t.Heading.Render(story.BootLabel))),
		"",
		t.Dim.Render("enter to power on"),
	)
	return lipgloss.Place(a.width, max(1, a.height-1), lipgloss.Center, lipgloss.Center, title)
}
