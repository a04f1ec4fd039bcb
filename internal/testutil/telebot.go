package testutil

import (
	"fmt"
	"sync"

	tele "gopkg.in/telebot.v3"
)

// FakeContext is a tele.Context recording what a handler sends.
// Methods it does not override panic through the nil embedded Context.
type FakeContext struct {
	tele.Context

	User *tele.User
	Msg  *tele.Message
	Cb   *tele.Callback

	mu        sync.Mutex
	sent      []string
	edited    []string
	markups   []*tele.ReplyMarkup
	responses []*tele.CallbackResponse
	deleted   bool
	values    map[string]interface{}
}

// NewCommandContext fakes a command message; payload is the text after the command
func NewCommandContext(userID int64, command, payload string) *FakeContext {
	text := command
	if payload != "" {
		text += " " + payload
	}
	return &FakeContext{
		User: &tele.User{ID: userID},
		Msg:  &tele.Message{Text: text, Payload: payload},
	}
}

// NewTextContext fakes a plain text message
func NewTextContext(userID int64, text string) *FakeContext {
	return &FakeContext{
		User: &tele.User{ID: userID},
		Msg:  &tele.Message{Text: text},
	}
}

// NewCallbackContext fakes an inline button press carrying data
func NewCallbackContext(userID int64, data string) *FakeContext {
	return &FakeContext{
		User: &tele.User{ID: userID},
		Cb:   &tele.Callback{ID: "cb", Data: data, Message: &tele.Message{}},
	}
}

func (c *FakeContext) Sender() *tele.User { return c.User }

func (c *FakeContext) Callback() *tele.Callback { return c.Cb }

func (c *FakeContext) Message() *tele.Message {
	if c.Cb != nil {
		return c.Cb.Message
	}
	return c.Msg
}

func (c *FakeContext) Text() string {
	if m := c.Message(); m != nil {
		return m.Text
	}
	return ""
}

func (c *FakeContext) Send(what interface{}, opts ...interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, fmt.Sprint(what))
	c.markups = append(c.markups, markupOf(opts))
	return nil
}

func (c *FakeContext) Edit(what interface{}, opts ...interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.edited = append(c.edited, fmt.Sprint(what))
	c.markups = append(c.markups, markupOf(opts))
	return nil
}

func (c *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(resp) > 0 {
		c.responses = append(c.responses, resp[0])
	} else {
		c.responses = append(c.responses, &tele.CallbackResponse{})
	}
	return nil
}

func (c *FakeContext) Delete() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = true
	return nil
}

func (c *FakeContext) Get(key string) interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key]
}

func (c *FakeContext) Set(key string, val interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.values == nil {
		c.values = make(map[string]interface{})
	}
	c.values[key] = val
}

// Sent returns every message sent so far
func (c *FakeContext) Sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.sent...)
}

// LastSent returns the last sent message, or "" when nothing was sent
func (c *FakeContext) LastSent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sent) == 0 {
		return ""
	}
	return c.sent[len(c.sent)-1]
}

// LastEdited returns the last edited message text
func (c *FakeContext) LastEdited() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.edited) == 0 {
		return ""
	}
	return c.edited[len(c.edited)-1]
}

// LastMarkup returns the markup of the last sent or edited message
func (c *FakeContext) LastMarkup() *tele.ReplyMarkup {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.markups) == 0 {
		return nil
	}
	return c.markups[len(c.markups)-1]
}

// Responses returns the callback answers
func (c *FakeContext) Responses() []*tele.CallbackResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*tele.CallbackResponse(nil), c.responses...)
}

// Deleted reports whether the handler deleted the incoming message
func (c *FakeContext) Deleted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleted
}

func markupOf(opts []interface{}) *tele.ReplyMarkup {
	for _, opt := range opts {
		if m, ok := opt.(*tele.ReplyMarkup); ok {
			return m
		}
	}
	return nil
}
