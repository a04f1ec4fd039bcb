package labels

import "labportal/internal/domain"

// Flags are lab-result qualifiers (HL7 OBX-8)
var Flags = NewTable(map[string]Entry{
	"H":  {Label: "Cao", Color: ColorDanger, Icon: "↑"},
	"HH": {Label: "Rất cao", Color: ColorDanger, Icon: "⇈"},
	"L":  {Label: "Thấp", Color: ColorWarning, Icon: "↓"},
	"LL": {Label: "Rất thấp", Color: ColorDanger, Icon: "⇊"},
	"A":  {Label: "Bất thường", Color: ColorWarning, Icon: "!"},
	"N":  {Label: "Bình thường", Color: ColorSuccess},
})

// DeviceStatuses are instrument states reported by the analyzers
var DeviceStatuses = NewTable(map[string]Entry{
	"READY":       {Label: "Sẵn sàng", Color: ColorSuccess, Icon: "🟢"},
	"PROCESSING":  {Label: "Đang xử lý", Color: ColorPrimary, Icon: "🔵"},
	"ERROR":       {Label: "Lỗi", Color: ColorDanger, Icon: "🔴"},
	"MAINTENANCE": {Label: "Bảo trì", Color: ColorWarning, Icon: "🟠"},
	"OFFLINE":     {Label: "Ngoại tuyến", Color: ColorDefault, Icon: "⚪"},
})

// RoleLabels covers the fixed role set; an empty role is a customer
var RoleLabels = NewTable(map[string]Entry{
	string(domain.RoleAdmin):   {Label: "Quản trị viên", Color: ColorDanger},
	string(domain.RoleManager): {Label: "Quản lý", Color: ColorWarning},
	string(domain.RoleStaff):   {Label: "Nhân viên", Color: ColorPrimary},
	string(domain.RoleDoctor):  {Label: "Bác sĩ", Color: ColorSuccess},
	string(domain.RolePatient): {Label: "Bệnh nhân", Color: ColorDefault},
}, FoldCase(), EmptyAs(Entry{Label: "Khách hàng", Color: ColorDefault}))

// OrderStatuses are test order lifecycle states
var OrderStatuses = NewTable(map[string]Entry{
	"PENDING":     {Label: "Chờ xử lý", Color: ColorWarning},
	"IN_PROGRESS": {Label: "Đang thực hiện", Color: ColorPrimary},
	"COMPLETED":   {Label: "Hoàn thành", Color: ColorSuccess},
	"CANCELLED":   {Label: "Đã hủy", Color: ColorDanger},
})

// ResultStatuses are HL7 observation result statuses (OBX-11)
var ResultStatuses = NewTable(map[string]Entry{
	"F": {Label: "Chính thức", Color: ColorSuccess},
	"P": {Label: "Sơ bộ", Color: ColorWarning},
	"C": {Label: "Đã hiệu chỉnh", Color: ColorPrimary},
	"X": {Label: "Không thực hiện được", Color: ColorDanger},
})

func StatusText(code string) string { return DeviceStatuses.Label(code) }
func StatusColor(code string) Color { return DeviceStatuses.Color(code) }
func RoleLabel(code string) string  { return RoleLabels.Label(code) }

func OrderStatusLabel(code string) string { return OrderStatuses.Label(code) }
func OrderStatusColor(code string) Color  { return OrderStatuses.Color(code) }
