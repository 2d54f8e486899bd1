package view

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MrJamesThe3rd/homa/internal/building"
)

const dbTimeout = 5 * time.Second

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders whole Toman with thousands separators.
func FormatAmount(amount int64) string {
	return amountPrinter.Sprintf("%d", amount)
}

// ParseAmount accepts grouped digits ("8,000,000") and a leading minus. Empty input is zero.
func ParseAmount(s string) (int64, error) {
	s = strings.NewReplacer(",", "", "_", "", " ", "").Replace(s)
	if s == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %q", s)
	}

	return n, nil
}

func validateAmount(s string) error {
	_, err := ParseAmount(s)
	return err
}

func validateInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("not a number")
	}

	return nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

// DbCtx returns a context with a standard timeout for storage operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

// statusText describes the outcome of a mutation for the status line.
func statusText(done string, err error) string {
	switch {
	case err == nil:
		return done
	case errors.Is(err, building.ErrMissingInput):
		return "Nothing saved: required fields are missing."
	case errors.Is(err, building.ErrNotFound):
		return "Nothing saved: the record no longer exists."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
