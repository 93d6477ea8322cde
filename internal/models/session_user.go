package models

// 用户角色
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// SessionUser 当前会话用户（后端签发，仅本地镜像展示）
type SessionUser struct {
	ID    int64  `json:"id"`    // 用户ID
	Email string `json:"email"` // 邮箱
	Name  string `json:"name"`  // 显示名称
	Role  string `json:"role"`  // 角色（customer/admin）
}
