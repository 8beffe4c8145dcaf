package userservice

// Роли пользователей в системе проката
const (
	RoleCustomer = "customer"
	RoleEmployee = "employee"
)

// User модель пользователя из UserService
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	BranchID *int64 `json:"branch_id,omitempty"` // Филиал сотрудника, nil для клиентов
}

// IsEmployee проверяет, является ли пользователь сотрудником
func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
