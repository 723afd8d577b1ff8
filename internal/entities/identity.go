package entities

type Role string

const (
	RoleStore Role = "store"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleStore || r == RoleAdmin
}

// Identity аутентифицированный вызывающий.
type Identity struct {
	UserID  int64
	Role    Role
	StoreID *int64
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// OwnsStore true только для сотрудника именно этого магазина.
func (i Identity) OwnsStore(storeID int64) bool {
	return i.Role == RoleStore && i.StoreID != nil && *i.StoreID == storeID
}
