package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/whalechillz/mas-win-sub012/internal/customer"
	"github.com/whalechillz/mas-win-sub012/internal/logger"
	"github.com/whalechillz/mas-win-sub012/internal/metrics"
)

const (
	queueKey       = "notifications"
	failedQueueKey = "notifications:failed"
	maxTries       = 3
)

type Job struct {
	Type    string    `json:"type"`
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Sender delivers a composed message. The SMS gateway implementation lives
// behind this interface in deployment; the repo ships the SMTP one.
type Sender interface {
	Send(job Job) error
}

type Service struct {
	redis  *redis.Client
	sender Sender
	from   string
}

func New(sender Sender, redisAddr, from string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		sender: sender,
		from:   from,
	}
}

func (s *Service) Queue(ctx context.Context, job Job) error {
	job.Tries = 0
	job.Created = time.Now()

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal notification job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		logger.Errorf("Failed to queue notification to %s: %v", job.To, err)
		return err
	}

	metrics.RecordNotification(job.Type, "queued")
	logger.Infof("Notification queued: %s to %s", job.Type, job.To)
	return nil
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("Notification worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad notification data: %v", err)
		return
	}

	job.Tries++
	if err := s.sender.Send(job); err != nil {
		logger.Errorf("Failed to send %s to %s: %v", job.Type, job.To, err)

		if job.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			logger.Infof("Retrying %s to %s (attempt %d)", job.Type, job.To, job.Tries+1)
		} else {
			metrics.RecordNotification(job.Type, "failed")
			s.saveFailed(job, err)
		}
		return
	}

	metrics.RecordNotification(job.Type, "sent")
	logger.Infof("Notification sent to %s", job.To)
}

func (s *Service) saveFailed(job Job, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, data)
	logger.Errorf("Notification moved to failed queue after %d attempts: %s", maxTries, job.To)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	metrics.NotificationQueueLength.Set(float64(length))
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

// QueueBookingConfirmation composes and queues the confirmation for a new
// booking. The message body varies with the customer's segment.
func (s *Service) QueueBookingConfirmation(ctx context.Context, to, name, date, timeOfDay string, segment customer.Segment) error {
	return s.Queue(ctx, Job{
		Type:    "booking_confirmation",
		To:      to,
		Name:    name,
		Subject: "예약이 확정되었습니다",
		Body:    ComposeConfirmation(name, date, timeOfDay, segment),
	})
}

func (s *Service) QueueCancellation(ctx context.Context, to, name, date, timeOfDay string) error {
	return s.Queue(ctx, Job{
		Type:    "booking_cancellation",
		To:      to,
		Name:    name,
		Subject: "예약이 취소되었습니다",
		Body:    fmt.Sprintf("%s님, %s %s 피팅 예약이 취소되었습니다.", name, date, timeOfDay),
	})
}

// SMTPSender delivers jobs over plain SMTP.
type SMTPSender struct {
	From     string
	FromName string
	Host     string
	Port     string
	User     string
	Pass     string
}

func (s *SMTPSender) Send(job Job) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.FromName, s.From)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.User != "" && s.Pass != "" {
		auth = smtp.PlainAuth("", s.User, s.Pass, s.Host)
	}

	addr := s.Host + ":" + s.Port
	return smtp.SendMail(addr, auth, s.From, []string{job.To}, []byte(message))
}
