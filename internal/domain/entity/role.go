package entity

import "strings"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// Permisos verificados por el middleware HTTP.
const (
	PermUsersManage    = "users:manage"
	PermInventoryRead  = "inventory:read"
	PermProductsWrite  = "products:write"
	PermInventoryMove  = "inventory:move"
	PermSalesCreate    = "sales:create"
	PermSalesRead      = "sales:read"
	PermCustomersWrite = "customers:write"
	PermReportsRead    = "reports:read"
	PermSettingsRead   = "settings:read"
	PermSettingsWrite  = "settings:write"
)

var rolePermissions = map[string]map[string]bool{
	RoleAdmin: {
		PermUsersManage: true, PermInventoryRead: true, PermProductsWrite: true,
		PermInventoryMove: true, PermSalesCreate: true, PermSalesRead: true,
		PermCustomersWrite: true, PermReportsRead: true, PermSettingsRead: true,
		PermSettingsWrite: true,
	},
	RoleBodeguero: {
		PermInventoryRead: true, PermProductsWrite: true, PermInventoryMove: true,
		PermReportsRead: true, PermSettingsRead: true,
	},
	RoleVendedor: {
		PermInventoryRead: true, PermSalesCreate: true, PermSalesRead: true,
		PermCustomersWrite: true, PermReportsRead: true, PermSettingsRead: true,
	},
}

// NormalizeRole pasa a minúsculas y traduce el alias histórico "administrador".
// Devuelve "" si el rol no existe.
func NormalizeRole(role string) string {
	r := strings.ToLower(strings.TrimSpace(role))
	if r == "administrador" {
		r = RoleAdmin
	}
	if _, ok := rolePermissions[r]; !ok {
		return ""
	}
	return r
}

// RoleHas indica si el rol concede el permiso.
func RoleHas(role, perm string) bool {
	return rolePermissions[NormalizeRole(role)][perm]
}
