package story

import (
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joeycumines/pocket-dos/internal/logging"
	"github.com/joeycumines/pocket-dos/internal/sched"
)

// Speaker identifies who wrote a chat message.
type Speaker int

const (
	You Speaker = iota
	Them
)

func (s Speaker) String() string {
	if s == You {
		return "You"
	}
	return SellerName
}

// Message is one chat bubble.
type Message struct {
	From Speaker
	Text string
}

// Script is the scripted conversation with the seller.
var Script = []Message{
	{You, "Hey! Quick question about the W1‑SH — is its CPU 8088‑compatible? Would it run DOS?"},
	{Them, "I'm not sure, sorry. It was my dad's."},
	{You, "Could you ask him?"},
	{Them, "I wish I could. He disappeared three years ago. We still don't know what happened. Sorry."},
	{You, "Oh no… I'm really sorry. And the price is still $50?"},
	{Them, "Yeah — fifty. Basically the price of a Starbucks coffee these days."},
	{You, "Alright, I'll take it."},
}

// ConversationComplete is shown once the script is exhausted.
const ConversationComplete = "Conversation complete."

// Chat timings.
const (
	ReplyBase        = 500 * time.Millisecond
	ReplyPerRune     = 28 * time.Millisecond
	ReplyMaxRunes    = 90
	ReplyMax         = 2500 * time.Millisecond
	AfterReplyDelay  = 280 * time.Millisecond
	AfterSendDelay   = 360 * time.Millisecond
	TypingMinStep    = 18 * time.Millisecond
	TypingStepJitter = 12
)

// ReplyDelay is how long the seller "types" before text appears.
func ReplyDelay(text string) time.Duration {
	n := min(utf8.RuneCountInString(text), ReplyMaxRunes)
	return min(ReplyMax, ReplyBase+time.Duration(n)*ReplyPerRune)
}

// Chat plays Script: the buyer's lines are typed into a composer and wait
// for Send, the seller's lines appear after a typing delay.
type Chat struct {
	timers *sched.Group
	rng    *rand.Rand
	logger *slog.Logger
	script []Message
	onDone func()

	step     int
	messages []Message
	composer string
	canSend  bool
	typing   bool
	done     bool
}

// ChatOption configures a Chat.
type ChatOption func(*Chat)

// WithChatRand sets the source of typing jitter.
func WithChatRand(r *rand.Rand) ChatOption {
	return func(c *Chat) { c.rng = r }
}

// WithChatLogger sets the logger.
func WithChatLogger(l *slog.Logger) ChatOption {
	return func(c *Chat) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithScript replaces Script.
func WithScript(script []Message) ChatOption {
	return func(c *Chat) { c.script = script }
}

// WithOnDone sets a callback run once the conversation completes.
func WithOnDone(fn func()) ChatOption {
	return func(c *Chat) { c.onDone = fn }
}

// NewChat returns a chat bound to s. Nothing happens until Start.
func NewChat(s *sched.Scheduler, opts ...ChatOption) *Chat {
	c := &Chat{
		timers: s.NewGroup(),
		logger: logging.Discard(),
		script: Script,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return c
}

// Start plays the conversation from the beginning.
func (c *Chat) Start() {
	c.timers.Cancel()
	c.step = 0
	c.messages = nil
	c.composer = ""
	c.canSend = false
	c.typing = false
	c.done = false
	c.next()
}

// Stop cancels pending playback.
func (c *Chat) Stop() { c.timers.Cancel() }

func (c *Chat) next() {
	if c.step >= len(c.script) {
		c.done = true
		c.canSend = false
		c.composer = ""
		c.logger.Info("chat complete")
		if c.onDone != nil {
			c.onDone()
		}
		return
	}
	line := c.script[c.step]
	if line.From == You {
		c.typeIntoComposer(line.Text)
		return
	}
	c.typing = true
	c.timers.After(ReplyDelay(line.Text), func() {
		c.typing = false
		c.messages = append(c.messages, line)
		c.step++
		c.timers.After(AfterReplyDelay, c.next)
	})
}

func (c *Chat) typeIntoComposer(text string) {
	c.composer = ""
	c.canSend = false
	rest := []rune(text)
	step := TypingMinStep + time.Duration(c.rng.IntN(TypingStepJitter))*time.Millisecond
	var tick sched.Timer
	tick = c.timers.Every(step, func() {
		burst := 1
		if c.rng.Float64() < 0.2 {
			burst = 2
		}
		burst = min(burst, len(rest))
		c.composer += string(rest[:burst])
		rest = rest[burst:]
		if len(rest) == 0 {
			tick.Stop()
			c.canSend = true
		}
	})
}

// Send posts the composed line, reporting false unless it is fully typed.
func (c *Chat) Send() bool {
	text := strings.TrimSpace(c.composer)
	if !c.canSend || text == "" {
		return false
	}
	c.messages = append(c.messages, Message{From: You, Text: text})
	c.composer = ""
	c.canSend = false
	c.step++
	c.timers.After(AfterSendDelay, c.next)
	return true
}

// Messages returns the posted messages.
func (c *Chat) Messages() []Message { return c.messages }

// Composer returns the text typed so far.
func (c *Chat) Composer() string { return c.composer }

// CanSend reports whether Send would post.
func (c *Chat) CanSend() bool { return c.canSend }

// SellerTyping reports whether the typing indicator is shown.
func (c *Chat) SellerTyping() bool { return c.typing }

// Done reports whether the script is exhausted.
func (c *Chat) Done() bool { return c.done }
