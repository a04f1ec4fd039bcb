package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"labportal/internal/domain"
	"labportal/internal/labels"
	"labportal/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	devicePrefix = "dev_"
	pagePrefix   = "page_"
)

// handleDevices shows the first page of instruments
func (h *Handler) handleDevices(c tele.Context) error {
	return h.showDevicesPage(c, 1)
}

// handleDevicesPage handles page navigation
func (h *Handler) handleDevicesPage(c tele.Context) error {
	data := cleanCallbackData(c.Callback().Data)
	page, err := strconv.Atoi(strings.TrimPrefix(data, pagePrefix))
	if err != nil || page < 1 {
		return c.Respond(&tele.CallbackResponse{Text: "Trang không hợp lệ"})
	}
	return h.showDevicesPage(c, page)
}

func (h *Handler) showDevicesPage(c tele.Context, page int) error {
	userID := c.Sender().ID

	ctx, cancel := requestContext()
	defer cancel()

	devices, totalPages, err := h.labService.GetDevicesPage(ctx, page)
	if err != nil {
		h.logger.Error("Failed to get devices", zap.Int64("user_id", userID), zap.Error(err))
		return answer(c, msgError)
	}

	if len(devices) == 0 {
		return answer(c, "🔬 Chưa có thiết bị nào.")
	}

	text := fmt.Sprintf("🔬 Thiết bị xét nghiệm (trang %d/%d):", page, totalPages)
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	for _, device := range devices {
		token, err := h.links.EncryptForURL(strconv.FormatInt(device.ID, 10))
		if err != nil {
			h.logger.Error("Failed to encrypt device link", zap.Int64("device_id", device.ID), zap.Error(err))
			continue
		}
		btnText := fmt.Sprintf("%s %s: %s", deviceIcon(device.Status), device.Name, labels.StatusText(device.Status))
		rows = append(rows, markup.Row(markup.Data(btnText, devicePrefix+token)))
	}

	// Add pagination buttons
	if totalPages > 1 {
		navRow := tele.Row{}
		if page > 1 {
			navRow = append(navRow, markup.Data("⬅️", fmt.Sprintf("%s%d", pagePrefix, page-1)))
		}
		if page < totalPages {
			navRow = append(navRow, markup.Data("➡️", fmt.Sprintf("%s%d", pagePrefix, page+1)))
		}
		if len(navRow) > 0 {
			rows = append(rows, navRow)
		}
	}

	markup.Inline(rows...)
	return h.show(c, text, markup)
}

// handleDevice shows one instrument, addressed by an encrypted id
func (h *Handler) handleDevice(c tele.Context) error {
	userID := c.Sender().ID

	raw, err := h.guard.RequireOne(routeParams(c, "device", devicePrefix), "device")
	if err != nil {
		return h.notFound(c)
	}
	deviceID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.logger.Warn("Malformed device id", zap.Int64("user_id", userID), zap.String("value", raw))
		return h.notFound(c)
	}

	ctx, cancel := requestContext()
	defer cancel()

	device, err := h.labService.GetDevice(ctx, deviceID)
	if errors.Is(err, service.ErrNotFound) {
		return h.notFound(c)
	}
	if err != nil {
		h.logger.Error("Failed to get device",
			zap.Int64("user_id", userID),
			zap.Int64("device_id", deviceID),
			zap.Error(err),
		)
		return answer(c, msgError)
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data("◀️ Danh sách thiết bị", pagePrefix+"1")))

	return h.show(c, formatDevice(device), markup)
}

func deviceIcon(status string) string {
	if icon, ok := labels.DeviceStatuses.Icon(status); ok {
		return icon
	}
	return colorEmoji[labels.StatusColor(status)]
}

func formatDevice(device *domain.Device) string {
	text := fmt.Sprintf("🔬 %s\nModel: %s\nTrạng thái: %s %s",
		device.Name,
		device.Model,
		deviceIcon(device.Status),
		labels.StatusText(device.Status),
	)
	if !device.UpdatedAt.IsZero() {
		text += "\nCập nhật: " + device.UpdatedAt.Format(timeLayout)
	}
	return text
}
