package customer

import "strings"

// Segment buckets a customer for personalized messaging.
type Segment string

const (
	SegmentNew       Segment = "new"
	SegmentReturning Segment = "returning"
	SegmentVIP       Segment = "vip"
)

// vipGrades are matched case-insensitively against customer_grade.
var vipGrades = map[string]bool{
	"gold":     true,
	"vip":      true,
	"platinum": true,
}

// DetectSegment classifies a profile. Grade outranks visit history: a gold
// customer with zero recorded visits is still vip. A missing profile is a
// new customer.
func DetectSegment(p *Profile) Segment {
	if p == nil {
		return SegmentNew
	}
	if vipGrades[strings.ToLower(p.CustomerGrade)] {
		return SegmentVIP
	}
	if p.VisitCount > 0 {
		return SegmentReturning
	}
	return SegmentNew
}

// Content is the greeting/value-proposition/CTA triple shown per segment.
type Content struct {
	Greeting         string `json:"greeting"`
	ValueProposition string `json:"value_proposition"`
	CallToAction     string `json:"call_to_action"`
}

// UIOptions is the presentation bundle derived from a segment.
type UIOptions struct {
	ShowVIPBadge      bool   `json:"show_vip_badge"`
	ShowWelcomeBadge  bool   `json:"show_welcome_badge"`
	ShowReturnGreeting bool  `json:"show_return_greeting"`
	AccentColor       string `json:"accent_color"`
}

// SegmentContent returns the messaging triple for a segment. Deterministic;
// no I/O.
func SegmentContent(s Segment) Content {
	switch s {
	case SegmentVIP:
		return Content{
			Greeting:         "다시 찾아주셔서 감사합니다, VIP 고객님!",
			ValueProposition: "전담 피터가 프리미엄 피팅을 준비해 드립니다.",
			CallToAction:     "우선 예약으로 원하는 시간을 선택하세요",
		}
	case SegmentReturning:
		return Content{
			Greeting:         "다시 만나서 반갑습니다!",
			ValueProposition: "지난 피팅 기록을 바탕으로 더 정확한 추천을 드립니다.",
			CallToAction:     "재방문 예약하기",
		}
	default:
		return Content{
			Greeting:         "마쓰구골프에 오신 것을 환영합니다!",
			ValueProposition: "첫 방문 고객을 위한 무료 비거리 측정이 준비되어 있습니다.",
			CallToAction:     "첫 피팅 예약하기",
		}
	}
}

// SegmentUIOptions returns the badge flags and accent color for a segment.
func SegmentUIOptions(s Segment) UIOptions {
	switch s {
	case SegmentVIP:
		return UIOptions{ShowVIPBadge: true, AccentColor: "#d4af37"}
	case SegmentReturning:
		return UIOptions{ShowReturnGreeting: true, AccentColor: "#2e7d32"}
	default:
		return UIOptions{ShowWelcomeBadge: true, AccentColor: "#1565c0"}
	}
}
