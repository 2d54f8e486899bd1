// Package ai builds prompts for the assistant and turns generator failures
// into fixed fallback replies.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MrJamesThe3rd/homa/internal/building"
)

//go:generate mockgen -source=ai.go -destination=generator_mock.go -package=ai
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

type Kind string

const (
	KindLease    Kind = "lease"
	KindAnalysis Kind = "analysis"
	KindChat     Kind = "chat"
)

const analysisInvoiceLimit = 20

const msgNoKey = "کلید API یافت نشد."

type fallback struct {
	empty  string
	failed string
}

var fallbacks = map[Kind]fallback{
	KindLease:    {empty: "خطا در تولید متن قرارداد.", failed: "متاسفانه در برقراری ارتباط با هوش مصنوعی خطایی رخ داد."},
	KindAnalysis: {empty: "خطا در تحلیل داده‌ها.", failed: "خطا در تحلیل هوشمند."},
	KindChat:     {empty: "پاسخی دریافت نشد.", failed: "خطا در ارتباط با هوش مصنوعی."},
}

// Reply is always displayable. Failed marks a fallback text.
type Reply struct {
	Text   string `json:"text"`
	Failed bool   `json:"failed"`
}

type Service struct {
	gen      Generator
	model    string
	timeout  time.Duration
	landlord string

	group singleflight.Group

	mu      sync.Mutex
	pending map[Kind]int
}

// NewService returns a Service. A nil gen means no credential is configured.
func NewService(gen Generator, model string, timeout time.Duration, landlord string) *Service {
	return &Service{
		gen:      gen,
		model:    model,
		timeout:  timeout,
		landlord: landlord,
		pending:  map[Kind]int{},
	}
}

// Loading reports whether a request of kind is in flight.
func (s *Service) Loading(kind Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pending[kind] > 0
}

type LeaseParams struct {
	TenantName string
	UnitNumber string
	Rent       int64
	StartDate  string
}

func (s *Service) LeaseDraft(ctx context.Context, p LeaseParams) Reply {
	prompt := fmt.Sprintf(`یک پیش‌نویس قرارداد اجاره ساده و رسمی به زبان فارسی بنویس.
اطلاعات:
موجر: %s
مستاجر: %s
واحد: %s
مبلغ اجاره ماهیانه: %d تومان
تاریخ شروع: %s

لطفا متن را در قالب Markdown و بسیار مرتب ارائه بده.`, s.landlord, p.TenantName, p.UnitNumber, p.Rent, p.StartDate)

	return s.run(ctx, KindLease, prompt)
}

// AnalyzeFinancials sends at most the first 20 invoices.
func (s *Service) AnalyzeFinancials(ctx context.Context, invoices []building.Invoice) Reply {
	if len(invoices) > analysisInvoiceLimit {
		invoices = invoices[:analysisInvoiceLimit]
	}

	if invoices == nil {
		invoices = []building.Invoice{}
	}

	data, err := json.Marshal(invoices)
	if err != nil {
		slog.Error("failed to encode invoices for analysis", "error", err)
		return Reply{Text: fallbacks[KindAnalysis].failed, Failed: true}
	}

	prompt := "من یک لیست از فاکتورهای ساختمان دارم. لطفا یک تحلیل کوتاه مدیریتی و پیشنهاد برای بهبود وضعیت مالی بده.\nداده‌ها (JSON):\n" + string(data)

	return s.run(ctx, KindAnalysis, prompt)
}

// Ask answers a free-form question. A blank question yields an empty reply without a call.
func (s *Service) Ask(ctx context.Context, question string) Reply {
	question = strings.TrimSpace(question)
	if question == "" {
		return Reply{}
	}

	return s.run(ctx, KindChat, "تو یک دستیار مدیر ساختمان هستی. به این سوال پاسخ بده: "+question)
}

func (s *Service) run(ctx context.Context, kind Kind, prompt string) Reply {
	if s.gen == nil {
		return Reply{Text: msgNoKey, Failed: true}
	}

	s.mu.Lock()
	s.pending[kind]++
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.pending[kind]--
		s.mu.Unlock()
	}()

	// The shared call outlives any single caller; each caller still stops
	// waiting when its own ctx is done.
	ch := s.group.DoChan(string(kind)+"\x00"+prompt, func() (any, error) {
		callCtx := context.WithoutCancel(ctx)
		if s.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(callCtx, s.timeout)
			defer cancel()
		}

		return s.gen.Generate(callCtx, s.model, prompt)
	})

	var res singleflight.Result

	select {
	case res = <-ch:
	case <-ctx.Done():
		res = singleflight.Result{Err: ctx.Err()}
	}

	v, err := res.Val, res.Err

	fb := fallbacks[kind]

	if err != nil {
		slog.Error("failed to generate text", "kind", kind, "error", err)
		return Reply{Text: fb.failed, Failed: true}
	}

	text, _ := v.(string)
	if strings.TrimSpace(text) == "" {
		return Reply{Text: fb.empty, Failed: true}
	}

	return Reply{Text: text}
}
