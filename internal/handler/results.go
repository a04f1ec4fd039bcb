package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"labportal/internal/domain"
	"labportal/internal/labels"
	"labportal/internal/middleware"
	"labportal/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	resultPrefix = "res_"
	msgNotFound  = "🔍 Không tìm thấy dữ liệu."
	timeLayout   = "02/01/2006 15:04"
)

var colorEmoji = map[labels.Color]string{
	labels.ColorSuccess: "🟢",
	labels.ColorWarning: "🟡",
	labels.ColorDanger:  "🔴",
	labels.ColorPrimary: "🔵",
	labels.ColorDefault: "⚪",
}

// handleResult shows one lab result. The id arrives encrypted as the
// command payload, deep-link payload or button data.
func (h *Handler) handleResult(c tele.Context) error {
	userID := c.Sender().ID

	profile, ok := middleware.Profile(c)
	if !ok {
		return answer(c, middleware.MsgSignIn)
	}

	raw, err := h.guard.RequireOne(routeParams(c, "result", resultPrefix), "result")
	if err != nil {
		return h.notFound(c)
	}
	resultID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.logger.Warn("Malformed result id", zap.Int64("user_id", userID), zap.String("value", raw))
		return h.notFound(c)
	}

	ctx, cancel := requestContext()
	defer cancel()

	view, err := h.labService.GetResult(ctx, profile, resultID)
	if errors.Is(err, service.ErrNotFound) {
		return h.notFound(c)
	}
	if err != nil {
		h.logger.Error("Failed to get result",
			zap.Int64("user_id", userID),
			zap.Int64("result_id", resultID),
			zap.Error(err),
		)
		return answer(c, msgError)
	}

	return h.show(c, formatResult(view), nil)
}

// handleOrders lists the patient's newest test orders
func (h *Handler) handleOrders(c tele.Context) error {
	userID := c.Sender().ID

	profile, ok := middleware.Profile(c)
	if !ok {
		return c.Send(middleware.MsgSignIn)
	}

	ctx, cancel := requestContext()
	defer cancel()

	orders, err := h.labService.GetOrders(ctx, profile.PatientID)
	if errors.Is(err, service.ErrNotFound) {
		return c.Send(msgNotFound)
	}
	if err != nil {
		h.logger.Error("Failed to get orders", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send(msgError)
	}

	if len(orders) == 0 {
		return c.Send("📋 Bạn chưa có chỉ định xét nghiệm nào.")
	}

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	for _, order := range orders {
		if order.ResultID == 0 {
			continue
		}
		token, err := h.links.EncryptForURL(strconv.FormatInt(order.ResultID, 10))
		if err != nil {
			h.logger.Error("Failed to encrypt result link", zap.Int64("result_id", order.ResultID), zap.Error(err))
			continue
		}
		rows = append(rows, markup.Row(markup.Data("🧪 "+order.TestName, resultPrefix+token)))
	}

	if len(rows) == 0 {
		return c.Send(formatOrders(orders))
	}
	markup.Inline(rows...)
	return c.Send(formatOrders(orders), markup)
}

func formatResult(view *service.ResultView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🧪 Kết quả xét nghiệm #%d: %s\n", view.Result.ID, view.Result.TestName)
	if !view.Result.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "🕒 %s\n", view.Result.CreatedAt.Format(timeLayout))
	}

	if len(view.Observations) == 0 {
		b.WriteString("\nChưa có chỉ số nào.")
		return b.String()
	}

	for _, obs := range view.Observations {
		fmt.Fprintf(&b, "\n• %s: %s", obs.Name, obs.Value)
		if obs.Units != "" {
			fmt.Fprintf(&b, " %s", obs.Units)
		}
		if obs.Range != "" {
			fmt.Fprintf(&b, " (%s)", obs.Range)
		}
		b.WriteString("\n  ")
		if obs.Flag.Code != "" {
			fmt.Fprintf(&b, "%s %s", colorEmoji[obs.Flag.Color], obs.Flag.Label)
			if obs.Flag.Icon != "" {
				fmt.Fprintf(&b, " %s", obs.Flag.Icon)
			}
			b.WriteString(" · ")
		}
		b.WriteString(obs.Status.Label)
	}
	return b.String()
}

func formatOrders(orders []domain.TestOrder) string {
	var b strings.Builder
	b.WriteString("📋 Chỉ định xét nghiệm của bạn:\n")
	for i, order := range orders {
		fmt.Fprintf(&b, "\n%d. %s: %s %s (%s)",
			i+1,
			order.TestName,
			colorEmoji[labels.OrderStatusColor(order.Status)],
			labels.OrderStatusLabel(order.Status),
			order.CreatedAt.Format(timeLayout),
		)
	}
	return b.String()
}
