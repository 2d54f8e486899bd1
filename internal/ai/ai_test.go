package ai_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/homa/internal/ai"
	"github.com/MrJamesThe3rd/homa/internal/building"
)

const model = "gemini-2.5-flash"

func TestService_LeaseDraft(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *ai.MockGenerator)
		want      ai.Reply
	}

	params := ai.LeaseParams{TenantName: "علی محمدی", UnitNumber: "101", Rent: 8000000, StartDate: "1402/01/01"}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *ai.MockGenerator) {
				m.EXPECT().
					Generate(gomock.Any(), model, gomock.Any()).
					DoAndReturn(func(_ context.Context, _, prompt string) (string, error) {
						assert.Contains(t, prompt, "علی محمدی")
						assert.Contains(t, prompt, "101")
						assert.Contains(t, prompt, "8000000 تومان")
						assert.Contains(t, prompt, "مدیریت ساختمان هما")
						return "# قرارداد", nil
					})
			},
			want: ai.Reply{Text: "# قرارداد"},
		},
		{
			name: "EmptyOutput",
			setupMock: func(m *ai.MockGenerator) {
				m.EXPECT().Generate(gomock.Any(), model, gomock.Any()).Return("  ", nil)
			},
			want: ai.Reply{Text: "خطا در تولید متن قرارداد.", Failed: true},
		},
		{
			name: "Error",
			setupMock: func(m *ai.MockGenerator) {
				m.EXPECT().Generate(gomock.Any(), model, gomock.Any()).Return("", errors.New("quota"))
			},
			want: ai.Reply{Text: "متاسفانه در برقراری ارتباط با هوش مصنوعی خطایی رخ داد.", Failed: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			gen := ai.NewMockGenerator(ctrl)
			tt.setupMock(gen)

			svc := ai.NewService(gen, model, time.Second, "مدیریت ساختمان هما")
			assert.Equal(t, tt.want, svc.LeaseDraft(context.Background(), params))
		})
	}
}

func TestService_NoCredential(t *testing.T) {
	svc := ai.NewService(nil, model, time.Second, "")

	want := ai.Reply{Text: "کلید API یافت نشد.", Failed: true}
	assert.Equal(t, want, svc.LeaseDraft(context.Background(), ai.LeaseParams{}))
	assert.Equal(t, want, svc.AnalyzeFinancials(context.Background(), nil))
	assert.Equal(t, want, svc.Ask(context.Background(), "سلام"))
}

func TestService_AnalyzeFinancials_LimitsInvoices(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invoices := make([]building.Invoice, 25)
	for i := range invoices {
		invoices[i] = building.Invoice{ID: string(rune('a' + i)), Type: building.InvoiceRent}
	}

	gen := ai.NewMockGenerator(ctrl)
	gen.EXPECT().
		Generate(gomock.Any(), model, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, prompt string) (string, error) {
			assert.Equal(t, 20, strings.Count(prompt, `"id":`))
			return "", errors.New("boom")
		})

	got := ai.NewService(gen, model, time.Second, "").AnalyzeFinancials(context.Background(), invoices)
	assert.Equal(t, ai.Reply{Text: "خطا در تحلیل هوشمند.", Failed: true}, got)
}

func TestService_Ask(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := ai.NewMockGenerator(ctrl)
	gen.EXPECT().
		Generate(gomock.Any(), model, "تو یک دستیار مدیر ساختمان هستی. به این سوال پاسخ بده: شارژ چقدر است؟").
		Return("", nil)

	svc := ai.NewService(gen, model, time.Second, "")

	assert.Equal(t, ai.Reply{}, svc.Ask(context.Background(), "   "))
	assert.Equal(t, ai.Reply{Text: "پاسخی دریافت نشد.", Failed: true}, svc.Ask(context.Background(), "شارژ چقدر است؟"))
}

type blockingGenerator struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (g *blockingGenerator) Generate(ctx context.Context, _, _ string) (string, error) {
	if g.calls.Add(1) == 1 {
		close(g.started)
	}

	select {
	case <-g.release:
		return "ok", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func TestService_DeduplicatesInFlight(t *testing.T) {
	gen := &blockingGenerator{started: make(chan struct{}), release: make(chan struct{})}
	svc := ai.NewService(gen, model, 5*time.Second, "")

	assert.False(t, svc.Loading(ai.KindChat))

	var wg sync.WaitGroup

	replies := make([]ai.Reply, 2)

	wg.Add(1)

	go func() {
		defer wg.Done()
		replies[0] = svc.Ask(context.Background(), "x")
	}()

	<-gen.started
	assert.True(t, svc.Loading(ai.KindChat))
	assert.False(t, svc.Loading(ai.KindLease))

	wg.Add(1)

	go func() {
		defer wg.Done()
		replies[1] = svc.Ask(context.Background(), "x")
	}()

	time.Sleep(50 * time.Millisecond)
	close(gen.release)
	wg.Wait()

	assert.Equal(t, int32(1), gen.calls.Load())
	assert.Equal(t, ai.Reply{Text: "ok"}, replies[0])
	assert.Equal(t, ai.Reply{Text: "ok"}, replies[1])
	assert.False(t, svc.Loading(ai.KindChat))
}

func TestService_SharedCallSurvivesFirstCallerCancel(t *testing.T) {
	gen := &blockingGenerator{started: make(chan struct{}), release: make(chan struct{})}
	svc := ai.NewService(gen, model, 5*time.Second, "")

	firstCtx, cancelFirst := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	replies := make([]ai.Reply, 2)

	wg.Add(1)

	go func() {
		defer wg.Done()
		replies[0] = svc.Ask(firstCtx, "x")
	}()

	<-gen.started

	wg.Add(1)

	go func() {
		defer wg.Done()
		replies[1] = svc.Ask(context.Background(), "x")
	}()

	time.Sleep(50 * time.Millisecond)
	cancelFirst()
	time.Sleep(20 * time.Millisecond)
	close(gen.release)
	wg.Wait()

	assert.Equal(t, int32(1), gen.calls.Load())
	assert.True(t, replies[0].Failed)
	assert.Equal(t, ai.Reply{Text: "ok"}, replies[1])
}

func TestService_Timeout(t *testing.T) {
	gen := &blockingGenerator{started: make(chan struct{}), release: make(chan struct{})}
	svc := ai.NewService(gen, model, 20*time.Millisecond, "")

	got := svc.Ask(context.Background(), "x")
	assert.True(t, got.Failed)
	assert.Equal(t, "خطا در ارتباط با هوش مصنوعی.", got.Text)
}
