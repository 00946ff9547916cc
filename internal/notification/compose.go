package notification

import (
	"fmt"

	"github.com/whalechillz/mas-win-sub012/internal/customer"
)

// ComposeConfirmation builds the confirmation body. Segment changes the
// closing line, not the facts.
func ComposeConfirmation(name, date, timeOfDay string, segment customer.Segment) string {
	body := fmt.Sprintf("%s님, 마쓰구골프 피팅 예약이 확정되었습니다.\n일시: %s %s\n장소: 마쓰구골프 수원본점", name, date, timeOfDay)

	switch segment {
	case customer.SegmentVIP:
		body += "\n\nVIP 고객님을 위한 전담 피터가 대기합니다."
	case customer.SegmentReturning:
		body += "\n\n지난 피팅 기록을 준비해 두겠습니다."
	default:
		body += "\n\n첫 방문이시니 10분 일찍 도착해 주세요."
	}

	return body
}
