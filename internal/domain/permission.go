package domain

// Action names a capability checked before an operation runs.
type Action string

const (
	ActionCatalogRead   Action = "catalog:read"
	ActionHallsWrite    Action = "halls:write"
	ActionShowsWrite    Action = "shows:write"
	ActionOrdersCreate  Action = "orders:create"
	ActionOrdersRead    Action = "orders:read"
	ActionProfileRead   Action = "profile:read"
	ActionBalanceTopUp  Action = "balance:top-up"
	ActionCustomersList Action = "customers:list"
)

type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleCustomer  Role = "customer"
	RoleAdmin     Role = "admin"
)

var rolePermissions = map[Role]map[Action]bool{
	RoleAnonymous: {
		ActionCatalogRead: true,
	},
	RoleCustomer: {
		ActionCatalogRead:  true,
		ActionOrdersCreate: true,
		ActionOrdersRead:   true,
		ActionProfileRead:  true,
		ActionBalanceTopUp: true,
	},
	RoleAdmin: {
		ActionCatalogRead:   true,
		ActionHallsWrite:    true,
		ActionShowsWrite:    true,
		ActionOrdersCreate:  true,
		ActionOrdersRead:    true,
		ActionProfileRead:   true,
		ActionBalanceTopUp:  true,
		ActionCustomersList: true,
	},
}

// Principal is the actor a request runs on behalf of.
type Principal struct {
	UserID int
	Role   Role
}

var AnonymousPrincipal = Principal{Role: RoleAnonymous}

func (p Principal) IsAnonymous() bool {
	return p.Role == RoleAnonymous || p.Role == ""
}

// Can reports whether the principal's role grants the action.
func (p Principal) Can(action Action) bool {
	return rolePermissions[p.role()][action]
}

// CanOnBehalfOf is Can restricted to resources owned by ownerID. Admins act on any owner.
func (p Principal) CanOnBehalfOf(action Action, ownerID int) bool {
	if !p.Can(action) {
		return false
	}

	return p.Role == RoleAdmin || p.UserID == ownerID
}

func (p Principal) role() Role {
	if p.Role == "" {
		return RoleAnonymous
	}

	return p.Role
}
