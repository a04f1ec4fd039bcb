package chat

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Questions asked by the lab assistant
const (
	QuestionAge     = "Bạn bao nhiêu tuổi?"
	QuestionFasting = "Bạn đã nhịn ăn ít nhất 8 tiếng chưa?"
	QuestionBooking = "Bạn có muốn đặt lịch lấy mẫu tại nhà không?"
	QuestionResults = "Bạn có muốn xem kết quả xét nghiệm không?"

	Greeting = "👋 Xin chào! Tôi là trợ lý phòng xét nghiệm.\n\n" + QuestionAge
)

// Assistant answers free text: pattern dispatch first, FAQ otherwise
type Assistant struct {
	registry *Registry
	faq      *FAQ
}

// NewAssistant wires the built-in question entries and FAQ
func NewAssistant(logger *zap.Logger) (*Assistant, error) {
	registry, err := NewRegistry(logger, DefaultEntries()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build answer registry: %w", err)
	}
	return &Assistant{registry: registry, faq: DefaultFAQ()}, nil
}

// Reply always produces a message for the user. handled is false when no
// conversation step answered and the reply came from the FAQ.
func (a *Assistant) Reply(ctx AnswerContext) (reply string, handled bool) {
	if reply, ok := a.registry.Dispatch(ctx); ok {
		return reply, true
	}
	return a.faq.Answer(ctx.NormalizedAnswer), false
}

// IsQuestion reports whether a bot message expects an answer
func IsQuestion(message string) bool {
	return strings.HasSuffix(strings.TrimSpace(message), "?")
}

// DefaultEntries returns the assistant's conversation steps
func DefaultEntries() []Entry {
	return []Entry{
		{
			ID:          "age",
			Priority:    10,
			Patterns:    []string{`tuổi\?$`, `age\?$`},
			Description: "Validates the age and moves on to fasting",
			Handler:     handleAge,
		},
		{
			ID:          "fasting",
			Priority:    20,
			Patterns:    []string{`nhịn ăn.*\?$`, `fast(ed|ing)?.*\?$`},
			Description: "Explains fasting requirements",
			Handler:     handleFasting,
		},
		{
			ID:          "booking",
			Priority:    30,
			Patterns:    []string{`đặt lịch.*\?$`, `book.*\?$`},
			Description: "Home sample collection booking",
			Handler:     handleBooking,
		},
		{
			ID:          "results",
			Priority:    40,
			Patterns:    []string{`kết quả.*\?$`, `results?.*\?$`},
			Description: "Points the user to their results",
			Handler:     handleResults,
		},
	}
}

func handleAge(ctx AnswerContext) (string, error) {
	text := strings.TrimSpace(strings.TrimSuffix(ctx.NormalizedAnswer, "tuổi"))
	age, err := strconv.Atoi(text)
	if err != nil || age <= 0 || age > 130 {
		return "Tuổi chưa hợp lệ, vui lòng nhập một con số.\n\n" + QuestionAge, nil
	}
	if age < 18 {
		return "Người dưới 18 tuổi cần có người giám hộ đi cùng khi lấy mẫu.\n\n" + QuestionFasting, nil
	}
	return "Cảm ơn bạn.\n\n" + QuestionFasting, nil
}

func handleFasting(ctx AnswerContext) (string, error) {
	yes, ok := parseYesNo(ctx.NormalizedAnswer)
	if !ok {
		return "", nil
	}
	if yes {
		return "Tốt lắm, bạn đã sẵn sàng cho xét nghiệm đường huyết và mỡ máu.\n\n" + QuestionBooking, nil
	}
	return "Bạn nên nhịn ăn 8–12 tiếng trước khi lấy máu, vẫn có thể uống nước lọc.\n\n" + QuestionBooking, nil
}

func handleBooking(ctx AnswerContext) (string, error) {
	yes, ok := parseYesNo(ctx.NormalizedAnswer)
	if !ok {
		return "", nil
	}
	if yes {
		return "Nhân viên sẽ liên hệ để xác nhận lịch hẹn lấy mẫu.\n\n" + QuestionResults, nil
	}
	return "Bạn có thể đến trực tiếp phòng xét nghiệm từ 6:30 đến 17:00 hằng ngày.\n\n" + QuestionResults, nil
}

func handleResults(ctx AnswerContext) (string, error) {
	yes, ok := parseYesNo(ctx.NormalizedAnswer)
	if !ok {
		return "", nil
	}
	if yes {
		return "Hãy đăng nhập bằng /login rồi dùng /orders để xem chỉ định và kết quả.", nil
	}
	return "Cảm ơn bạn đã trò chuyện. Gõ /chat để bắt đầu lại.", nil
}

var (
	yesWords = map[string]bool{"có": true, "co": true, "rồi": true, "roi": true, "đã": true, "vâng": true, "ừ": true, "yes": true, "y": true, "ok": true}
	noWords  = map[string]bool{"không": true, "khong": true, "chưa": true, "chua": true, "no": true, "n": true}
)

// parseYesNo looks at the first word of a normalized answer
func parseYesNo(normalized string) (yes bool, ok bool) {
	fields := strings.Fields(normalized)
	if len(fields) == 0 {
		return false, false
	}
	word := strings.Trim(fields[0], ".,!")
	switch {
	case yesWords[word]:
		return true, true
	case noWords[word]:
		return false, true
	}
	return false, false
}
