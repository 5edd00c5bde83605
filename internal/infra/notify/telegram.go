// Package notify posts order summaries to the operations chat.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/errs"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Recorder counts delivery attempts; metrics.Registry implements it.
type Recorder interface {
	Notification(ok bool)
}

type Line struct {
	Name  string
	Count int64
}

// OrderSummary is what operators see for a new order. Amounts are minor units.
type OrderSummary struct {
	Number        string
	Delivery      bool
	Phone         string
	Address       string
	SpotID        string
	PaymentMethod string
	Total         int64
	BonusUsed     int64
	PromoCode     string
	Lines         []Line
	Comment       string
}

type Telegram struct {
	baseURL  string
	token    string
	chatID   string
	currency string
	http     *http.Client
	printer  *message.Printer
	recorder Recorder
	logger   *slog.Logger
}

func NewTelegram(cfg config.NotifyConfig, recorder Recorder, logger *slog.Logger) *Telegram {
	return &Telegram{
		baseURL:  strings.TrimRight(cfg.TelegramBaseURL, "/"),
		token:    cfg.TelegramBotToken,
		chatID:   cfg.TelegramChatID,
		currency: cfg.CurrencyLabel,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		printer:  message.NewPrinter(language.Russian),
		recorder: recorder,
		logger:   logger,
	}
}

func (t *Telegram) Enabled() bool {
	return t.token != "" && t.chatID != ""
}

// OrderPlaced sends the summary. It is a no-op when the bot is not configured.
func (t *Telegram) OrderPlaced(ctx context.Context, s OrderSummary) error {
	if !t.Enabled() {
		return nil
	}
	err := t.send(ctx, t.Render(s))
	if t.recorder != nil {
		t.recorder.Notification(err == nil)
	}
	if err != nil {
		t.logger.WarnContext(ctx, "order notification failed",
			slog.String("order", s.Number),
			slog.String("error", err.Error()))
	}
	return err
}

// Render builds the HTML message body.
func (t *Telegram) Render(s OrderSummary) string {
	kind := "Навынос"
	place := "Филиал: " + dash(escape(s.SpotID))
	if s.Delivery {
		kind = "Доставка"
		place = "Адрес: " + dash(escape(s.Address))
	}
	bonus := "—"
	if s.BonusUsed > 0 {
		bonus = t.Money(s.BonusUsed)
	}

	products := make([]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		products = append(products, fmt.Sprintf("• %s — %d шт.", escape(l.Name), l.Count))
	}
	productBlock := "—"
	if len(products) > 0 {
		productBlock = strings.Join(products, "\n")
	}

	return strings.Join([]string{
		"🍣 Заказ #" + escape(s.Number),
		"Тип: " + kind,
		"Телефон: " + escape(s.Phone),
		place,
		"Оплата: " + paymentLabel(s.PaymentMethod),
		"Сумма: " + t.Money(s.Total),
		"Бонусы: " + bonus,
		"Промокод: " + dash(escape(s.PromoCode)),
		"Товары:",
		productBlock,
		"Комментарий: " + dash(escape(s.Comment)),
	}, "\n")
}

// Money formats minor units as a grouped major amount with the currency label.
func (t *Telegram) Money(minor int64) string {
	major := decimal.New(minor, -2).InexactFloat64()
	return t.printer.Sprint(number.Decimal(major, number.MaxFractionDigits(2))) + " " + t.currency
}

func (t *Telegram) send(ctx context.Context, text string) error {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("chat_id")
	e.Str(t.chatID)
	e.FieldStart("text")
	e.Str(text)
	e.FieldStart("parse_mode")
	e.Str("HTML")
	e.FieldStart("disable_web_page_preview")
	e.Bool(true)
	e.ObjEnd()

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(e.Bytes()))
	if err != nil {
		return errs.Wrap(errs.StripURL(err), "build telegram request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		return errs.Wrap(errs.StripURL(err), "send telegram message")
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return errs.Newf("telegram returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

func paymentLabel(method string) string {
	switch method {
	case "card":
		return "Карта"
	case "cash":
		return "Наличными"
	case "":
		return "—"
	default:
		return escape(method)
	}
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string {
	return escaper.Replace(s)
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
