package handler

import (
	"fmt"
	"strings"

	"labportal/internal/domain"
	"labportal/internal/session"
)

// route is a bot command and who may run it. Protected routes with no
// roles admit any authenticated user.
type route struct {
	command     string
	description string
	public      bool
	roles       []domain.Role
}

var routes = []route{
	{command: "/start", description: "Trang chính", public: true},
	{command: "/login", description: "Đăng nhập", public: true},
	{command: "/logout", description: "Đăng xuất", public: true},
	{command: "/chat", description: "Trò chuyện với trợ lý xét nghiệm", public: true},
	{command: "/me", description: "Thông tin tài khoản"},
	{command: "/orders", description: "Chỉ định xét nghiệm của tôi", roles: []domain.Role{domain.RolePatient}},
	{command: "/result", description: "Xem kết quả theo mã liên kết", roles: domain.Roles},
	{command: "/devices", description: "Trạng thái thiết bị xét nghiệm", roles: domain.StaffRoles},
	{command: "/device", description: "Chi tiết thiết bị theo mã liên kết", roles: domain.StaffRoles},
}

func routeFor(command string) route {
	for _, r := range routes {
		if r.command == command {
			return r
		}
	}
	panic(fmt.Sprintf("handler: unknown route %s", command))
}

// visible reports whether the route belongs in state's menu
func (r route) visible(state session.State) bool {
	signedIn := state.Status == session.StatusAuthenticated
	switch r.command {
	case "/start":
		return false
	case "/login":
		return !signedIn
	case "/logout":
		return signedIn
	}
	return r.public || session.Authorize(state, r.roles...) == session.Allow
}

func menuText(state session.State) string {
	var b strings.Builder
	for _, r := range routes {
		if r.visible(state) {
			fmt.Fprintf(&b, "%s: %s\n", r.command, r.description)
		}
	}
	return b.String()
}
