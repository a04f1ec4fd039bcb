package chat

import "strings"

// DefaultAnswer is sent when nothing else applies
const DefaultAnswer = "Xin lỗi, tôi chưa hiểu. Bạn có thể hỏi về giờ làm việc, nhịn ăn, chi phí, địa chỉ hoặc kết quả xét nghiệm. Gõ /chat để được tư vấn."

type faqRule struct {
	keywords []string
	answer   string
}

// FAQ answers by keyword; the first rule with a matching keyword wins
type FAQ struct {
	rules []faqRule
}

// DefaultFAQ returns the lab's fixed answers
func DefaultFAQ() *FAQ {
	return &FAQ{rules: []faqRule{
		{
			keywords: []string{"giờ làm", "mấy giờ", "mở cửa", "opening"},
			answer:   "Phòng xét nghiệm làm việc từ 6:30 đến 17:00, kể cả thứ Bảy và Chủ nhật.",
		},
		{
			keywords: []string{"nhịn ăn", "fasting"},
			answer:   "Xét nghiệm đường huyết và mỡ máu cần nhịn ăn 8–12 tiếng, vẫn có thể uống nước lọc.",
		},
		{
			keywords: []string{"kết quả", "result"},
			answer:   "Kết quả thường có sau 2–4 giờ. Đăng nhập bằng /login rồi dùng /orders để xem.",
		},
		{
			keywords: []string{"giá", "chi phí", "bao nhiêu tiền", "price"},
			answer:   "Bảng giá được niêm yết tại quầy tiếp đón. Vui lòng liên hệ nhân viên để được báo giá chi tiết.",
		},
		{
			keywords: []string{"địa chỉ", "ở đâu", "address"},
			answer:   "Phòng xét nghiệm nằm ở tầng 1, khu khám bệnh.",
		},
	}}
}

// Answer never returns an empty string
func (f *FAQ) Answer(normalized string) string {
	for _, rule := range f.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(normalized, kw) {
				return rule.answer
			}
		}
	}
	return DefaultAnswer
}
