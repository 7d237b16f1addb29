package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, NormalizeRole("Administrador"))
	assert.Equal(t, RoleVendedor, NormalizeRole(" vendedor "))
	assert.Equal(t, "", NormalizeRole("cajero"))
}

func TestRoleHas(t *testing.T) {
	assert.True(t, RoleHas(RoleAdmin, PermUsersManage))
	assert.True(t, RoleHas("administrador", PermSettingsWrite))
	assert.True(t, RoleHas(RoleVendedor, PermSalesCreate))
	assert.False(t, RoleHas(RoleVendedor, PermInventoryMove))
	assert.True(t, RoleHas(RoleBodeguero, PermInventoryMove))
	assert.False(t, RoleHas(RoleBodeguero, PermSalesCreate))
	assert.False(t, RoleHas("", PermInventoryRead))
}

func TestProduct_Stock(t *testing.T) {
	p := &Product{CurrentStock: 3, MinimumStock: 5, CostPrice: decimal.RequireFromString("2.50")}
	assert.True(t, p.IsLowStock())
	assert.True(t, p.InventoryValue().Equal(decimal.RequireFromString("7.50")))

	p.CurrentStock = -2
	assert.True(t, p.InventoryValue().IsZero())
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []string{"efectivo", "tarjeta", "transferencia", "cheque"} {
		assert.True(t, ValidPaymentMethod(m), m)
	}
	assert.False(t, ValidPaymentMethod("bitcoin"))
}
