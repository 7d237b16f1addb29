package usecase

import (
	"context"
	"testing"

	"github.com/jhoicas/ventas-api/internal/application/apptest"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	categoryID = "c0000000-0000-0000-0000-000000000001"
	supplierID = "50000000-0000-0000-0000-000000000001"
)

// ── Productos ────────────────────────────────────────────────────────────────

func TestProductUseCase_CreateIniciaEnCero(t *testing.T) {
	uc := NewProductUseCase(apptest.NewStore().Products())
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.CreateProductRequest{
		SKU:          "P-001",
		Name:         "Arroz 1kg",
		CostPrice:    decimal.RequireFromString("0.80"),
		SalePrice:    decimal.RequireFromString("1.25"),
		MinimumStock: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, p.CurrentStock)
	assert.True(t, p.IsActive)
	assert.True(t, p.LowStock)
	assert.Equal(t, "unidad", p.UnitOfMeasure)

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "P-001", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUseCase_Validacion(t *testing.T) {
	uc := NewProductUseCase(apptest.NewStore().Products())
	ctx := context.Background()
	maxStock := 2

	cases := map[string]dto.CreateProductRequest{
		"sin sku":         {Name: "X"},
		"sin nombre":      {SKU: "X"},
		"precio negativo": {SKU: "X", Name: "X", SalePrice: decimal.NewFromInt(-1)},
		"máximo < mínimo": {SKU: "X", Name: "X", MinimumStock: 5, MaximumStock: &maxStock},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestProductUseCase_UpdateNoTocaStock(t *testing.T) {
	store := apptest.NewStore()
	store.PutProduct(entity.Product{ID: "p1", SKU: "A", Name: "Azúcar", CurrentStock: 12, IsActive: true})
	uc := NewProductUseCase(store.Products())
	ctx := context.Background()

	name := "Azúcar morena"
	out, err := uc.Update(ctx, "p1", dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Azúcar morena", out.Name)
	assert.Equal(t, 12, store.Stock("p1"))

	_, err = uc.Update(ctx, "nope", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_DeleteDesactiva(t *testing.T) {
	store := apptest.NewStore()
	store.PutProduct(entity.Product{ID: "p1", SKU: "A", Name: "Azúcar", IsActive: true})
	uc := NewProductUseCase(store.Products())
	ctx := context.Background()

	require.NoError(t, uc.Delete(ctx, "p1"))

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Equal(t, 20, list.Page.Limit)

	p, err := uc.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, p.IsActive)

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_CategoriaYProveedor(t *testing.T) {
	store := apptest.NewStore()
	store.PutCategory(entity.Category{ID: categoryID, Name: "Abarrotes"})
	store.PutSupplier(entity.Supplier{ID: supplierID, Name: "Distribuidora Norte", IsActive: true})
	uc := NewProductUseCase(store.Products())
	ctx := context.Background()

	cat, sup := categoryID, supplierID
	p, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "P-010", Name: "Fideos", CategoryID: &cat, SupplierID: &sup})
	require.NoError(t, err)
	assert.Equal(t, "Abarrotes", p.CategoryName)
	assert.Equal(t, "Distribuidora Norte", p.SupplierName)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Abarrotes", list.Items[0].CategoryName)

	// "" quita la categoría; el proveedor se conserva.
	empty := ""
	p, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{CategoryID: &empty})
	require.NoError(t, err)
	assert.Nil(t, p.CategoryID)
	assert.Empty(t, p.CategoryName)
	assert.Equal(t, "Distribuidora Norte", p.SupplierName)
}

func TestProductUseCase_ReferenciasInvalidas(t *testing.T) {
	uc := NewProductUseCase(apptest.NewStore().Products())
	ctx := context.Background()

	bad := "no-es-uuid"
	_, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "X", Name: "X", CategoryID: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	missing := "99999999-9999-9999-9999-999999999999"
	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "X", Name: "X", SupplierID: &missing})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Categorías y proveedores ─────────────────────────────────────────────────

func TestCatalogUseCase_Listas(t *testing.T) {
	store := apptest.NewStore()
	store.PutCategory(entity.Category{ID: categoryID, Name: "Limpieza"})
	store.PutCategory(entity.Category{ID: "c2", Name: "Abarrotes"})
	store.PutSupplier(entity.Supplier{ID: supplierID, Name: "Distribuidora Norte", IsActive: true})
	store.PutSupplier(entity.Supplier{ID: "s2", Name: "Antiguo", IsActive: false})
	uc := NewCatalogUseCase(store.Categories(), store.Suppliers())
	ctx := context.Background()

	cats, err := uc.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Abarrotes", cats[0].Name)

	sups, err := uc.Suppliers(ctx)
	require.NoError(t, err)
	require.Len(t, sups, 1, "solo proveedores activos")
	assert.Equal(t, "Distribuidora Norte", sups[0].Name)
}

// ── Clientes ─────────────────────────────────────────────────────────────────

func TestCustomerUseCase_CreateUpdateList(t *testing.T) {
	uc := NewCustomerUseCase(apptest.NewStore().Customers())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CustomerRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	c, err := uc.Create(ctx, dto.CustomerRequest{Name: "María Pérez", TaxID: "0912345678"})
	require.NoError(t, err)
	assert.True(t, c.IsActive)

	inactive := false
	upd, err := uc.Update(ctx, c.ID, dto.CustomerRequest{Name: "María P.", IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "María P.", upd.Name)
	assert.False(t, upd.IsActive)

	list, err := uc.List(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list, "los inactivos no se listan")

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

type memUsers struct {
	users map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error { m.users[u.ID] = u; return nil }
func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}
func (m *memUsers) GetByUsername(context.Context, string) (*entity.User, error) { return nil, nil }
func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	cur := m.users[u.ID]
	c := *u
	if c.PasswordHash == "" {
		c.PasswordHash = cur.PasswordHash
	}
	m.users[u.ID] = &c
	return nil
}
func (m *memUsers) List(context.Context, int, int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}
func (m *memUsers) Count(context.Context) (int, error) { return len(m.users), nil }

func TestUserUseCase_Update(t *testing.T) {
	repo := &memUsers{users: map[string]*entity.User{
		"u1": {ID: "u1", Username: "ana", Role: "administrador", PasswordHash: "hash-original", IsActive: true},
		"u2": {ID: "u2", Username: "luis", Role: entity.RoleVendedor, PasswordHash: "hash-luis", IsActive: true},
	}}
	uc := NewUserUseCase(repo)
	ctx := context.Background()

	role := "bodeguero"
	out, err := uc.Update(ctx, "u1", "u2", dto.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleBodeguero, out.Role)
	assert.Equal(t, "hash-luis", repo.users["u2"].PasswordHash, "sin password no se cambia el hash")

	bad := "cajero"
	_, err = uc.Update(ctx, "u1", "u2", dto.UpdateUserRequest{Role: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	off := false
	_, err = uc.Update(ctx, "u1", "u1", dto.UpdateUserRequest{IsActive: &off})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, "u1", "u9", dto.UpdateUserRequest{})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

// ── Configuración ────────────────────────────────────────────────────────────

type memSettings map[string]string

func (m memSettings) All(context.Context) ([]*entity.Setting, error) {
	var out []*entity.Setting
	for k, v := range m {
		out = append(out, &entity.Setting{Key: k, Value: v})
	}
	return out, nil
}

func (m memSettings) Upsert(_ context.Context, s *entity.Setting) error {
	m[s.Key] = s.Value
	return nil
}

func TestSettingsUseCase(t *testing.T) {
	uc := NewSettingsUseCase(memSettings{})
	ctx := context.Background()

	require.NoError(t, uc.Set(ctx, dto.SettingRequest{Key: "business_name", Value: "Tienda"}))
	require.NoError(t, uc.Set(ctx, dto.SettingRequest{Key: "business_name", Value: "Tienda Central"}))
	assert.ErrorIs(t, uc.Set(ctx, dto.SettingRequest{Key: " "}), domain.ErrInvalidInput)

	all, err := uc.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"business_name": "Tienda Central"}, all)
}
