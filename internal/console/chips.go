package console

// ChipCount is the number of chip slots, bound to F1 through F5.
const ChipCount = 5

// Chip labels with special meaning.
const (
	ChipMore = "MORE"
	ChipBack = "BACK"
)

const pickerPageSize = 4

// Chip is one slot of the shortcut bar. An empty Label is a blank slot.
type Chip struct {
	Label string
	press func(*Console) bool
}

// Blank reports whether the slot does nothing.
func (ch Chip) Blank() bool { return ch.press == nil }

type picker struct {
	exes []string
	page int
}

var defaultChips = [ChipCount]Chip{
	{Label: "DIR", press: func(c *Console) bool { return c.Run("DIR") }},
	{Label: "CLS", press: func(c *Console) bool { return c.Run("CLS") }},
	{Label: "CD..", press: func(c *Console) bool { return c.Run("CD ..") }},
	{Label: "RUN", press: (*Console).openPicker},
	{Label: "HELP", press: func(c *Console) bool { return c.Run("HELP") }},
}

// Picking reports whether the RUN picker is open.
func (c *Console) Picking() bool { return c.picker != nil }

// Chips returns the current shortcut bar, always ChipCount slots. In the
// RUN picker the last slot is BACK; when the programs do not fit, each page
// shows pickerPageSize-1 of them and MORE takes the slot before BACK.
func (c *Console) Chips() []Chip {
	if c.picker == nil {
		return defaultChips[:]
	}
	p := c.picker
	size := pickerPageSize
	if len(p.exes) > pickerPageSize {
		size--
	}
	start := p.page * size
	end := min(start+size, len(p.exes))
	chips := make([]Chip, 0, ChipCount)
	for _, exe := range p.exes[start:end] {
		chips = append(chips, Chip{Label: exe, press: func(c *Console) bool {
			c.picker = nil
			return c.Run("RUN " + exe)
		}})
	}
	for len(chips) < size {
		chips = append(chips, Chip{})
	}
	if size < pickerPageSize {
		more := Chip{}
		if end < len(p.exes) {
			more = Chip{Label: ChipMore, press: func(c *Console) bool {
				c.picker.page++
				return true
			}}
		}
		chips = append(chips, more)
	}
	return append(chips, Chip{Label: ChipBack, press: (*Console).ClosePicker})
}

// PressChip activates slot i (0-based). Chips only work while the prompt
// is active.
func (c *Console) PressChip(i int) bool {
	if !c.session.PromptActive {
		return false
	}
	chips := c.Chips()
	if i < 0 || i >= len(chips) || chips[i].Blank() {
		return false
	}
	return chips[i].press(c)
}

// PressFunctionKey activates the chip bound to Fn (1-based).
func (c *Console) PressFunctionKey(n int) bool {
	return c.PressChip(n - 1)
}

func (c *Console) openPicker() bool {
	if !c.session.SetLine("RUN ") {
		return false
	}
	c.picker = &picker{exes: c.in.Executables(c.session.Cwd)}
	return true
}

// ClosePicker leaves the RUN picker and clears the line.
func (c *Console) ClosePicker() bool {
	if c.picker == nil {
		return false
	}
	c.picker = nil
	c.session.SetLine("")
	return true
}
