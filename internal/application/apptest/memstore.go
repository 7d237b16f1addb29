// Package apptest provee dobles en memoria de los puertos de persistencia para tests de casos de uso.
package apptest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/inventory"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ErrInjected error de almacenamiento simulado.
var ErrInjected = errors.New("fallo simulado del almacenamiento")

type state struct {
	products   map[string]entity.Product
	customers  map[string]entity.Customer
	categories map[string]entity.Category
	suppliers  map[string]entity.Supplier
	sales     []entity.Sale
	items     []entity.SaleItem
	movements []entity.InventoryMovement
}

func (s *state) clone() *state {
	c := &state{
		products:   make(map[string]entity.Product, len(s.products)),
		customers:  make(map[string]entity.Customer, len(s.customers)),
		categories: s.categories,
		suppliers:  s.suppliers,
		sales:      append([]entity.Sale(nil), s.sales...),
		items:      append([]entity.SaleItem(nil), s.items...),
		movements:  append([]entity.InventoryMovement(nil), s.movements...),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	return c
}

// Store almacén transaccional en memoria. Cada Run/RunSale trabaja sobre una copia del estado
// que solo se publica si el callback termina sin error y el commit no está forzado a fallar.
// Las transacciones se serializan con un único mutex.
type Store struct {
	mu  sync.Mutex
	cur *state

	// Fallos inyectables.
	FailCommit      bool
	FailItemInsert  int // falla la N-ésima inserción de línea (1-based) dentro de una tx; 0 = nunca
	FailMovementIns bool

	Commits   int
	Rollbacks int
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{cur: &state{
		products:   map[string]entity.Product{},
		customers:  map[string]entity.Customer{},
		categories: map[string]entity.Category{},
		suppliers:  map[string]entity.Supplier{},
	}}
}

// PutProduct inserta o reemplaza un producto (fixture).
func (s *Store) PutProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.products[p.ID] = p
}

// PutCustomer inserta o reemplaza un cliente (fixture).
func (s *Store) PutCustomer(c entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.customers[c.ID] = c
}

// PutCategory inserta o reemplaza una categoría (fixture).
func (s *Store) PutCategory(c entity.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.categories[c.ID] = c
}

// PutSupplier inserta o reemplaza un proveedor (fixture).
func (s *Store) PutSupplier(sp entity.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.suppliers[sp.ID] = sp
}

// Stock stock confirmado de un producto.
func (s *Store) Stock(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.products[productID].CurrentStock
}

// Counts número de ventas, líneas y movimientos confirmados.
func (s *Store) Counts() (sales, items, movements int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cur.sales), len(s.cur.items), len(s.cur.movements)
}

// RunSale cumple sales.TxRunner.
func (s *Store) RunSale(ctx context.Context, fn func(repository.SaleRepository, repository.StockRepository) error) error {
	return s.run(ctx, func(tx *txState) error {
		return fn(&SaleRepo{s: s, tx: tx}, &StockRepo{tx: tx})
	})
}

// Run cumple inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(repository.InventoryMovementRepository, repository.StockRepository) error) error {
	return s.run(ctx, func(tx *txState) error {
		return fn(&MovementRepo{s: s, tx: tx}, &StockRepo{tx: tx})
	})
}

type txState struct {
	st          *state
	itemInserts int
	failItemAt  int
	failMov     bool
}

func (s *Store) run(ctx context.Context, fn func(tx *txState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return domain.StorageError(fmt.Errorf("begin transaction: %w", err))
	}
	tx := &txState{st: s.cur.clone(), failItemAt: s.FailItemInsert, failMov: s.FailMovementIns}
	if err := fn(tx); err != nil {
		s.Rollbacks++
		return domain.StorageError(err)
	}
	if s.FailCommit {
		s.Rollbacks++
		return domain.CommitError(fmt.Errorf("commit transaction: %w", ErrInjected))
	}
	s.cur = tx.st
	s.Commits++
	return nil
}

// view devuelve el estado de la tx o el confirmado (bloqueando el mutex).
func (s *Store) view(tx *txState) (*state, func()) {
	if tx != nil {
		return tx.st, func() {}
	}
	s.mu.Lock()
	return s.cur, s.mu.Unlock
}

// ── Stock ────────────────────────────────────────────────────────────────────

// StockRepo ajuste relativo sobre el estado de la transacción.
type StockRepo struct {
	tx *txState
}

func (r *StockRepo) Adjust(_ context.Context, productID string, delta int, allowNegative bool) (int, error) {
	p, ok := r.tx.st.products[productID]
	if !ok || !p.IsActive {
		return 0, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	next, err := inventory.Apply(p.CurrentStock, delta, allowNegative)
	if err != nil {
		return 0, fmt.Errorf("producto %s: %w", productID, err)
	}
	p.CurrentStock = next
	r.tx.st.products[productID] = p
	return next, nil
}

// ── Ventas ───────────────────────────────────────────────────────────────────

// SaleRepo ventas en memoria. Con tx nil opera sobre el estado confirmado.
type SaleRepo struct {
	s  *Store
	tx *txState
}

// Sales repositorio de lectura sobre el estado confirmado.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{s: s} }

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	st, done := r.s.view(r.tx)
	defer done()
	if sale.CustomerID != nil {
		if _, ok := st.customers[*sale.CustomerID]; !ok {
			return fmt.Errorf("cliente de la venta: %w", domain.ErrNotFound)
		}
	}
	for _, existing := range st.sales {
		if existing.SaleNumber == sale.SaleNumber {
			return domain.ErrDuplicate
		}
	}
	st.sales = append(st.sales, *sale)
	return nil
}

func (r *SaleRepo) CreateItem(_ context.Context, it *entity.SaleItem) error {
	st, done := r.s.view(r.tx)
	defer done()
	if r.tx != nil {
		r.tx.itemInserts++
		if r.tx.failItemAt > 0 && r.tx.itemInserts == r.tx.failItemAt {
			return fmt.Errorf("insert sale item: %w", ErrInjected)
		}
	}
	if _, ok := st.products[it.ProductID]; !ok {
		return fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrNotFound)
	}
	st.items = append(st.items, *it)
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	st, done := r.s.view(r.tx)
	defer done()
	for _, s := range st.sales {
		if s.ID == id {
			out := s
			fillCustomerName(st, &out)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *SaleRepo) GetItemsBySaleID(_ context.Context, saleID string) ([]*entity.SaleItem, error) {
	st, done := r.s.view(r.tx)
	defer done()
	var out []*entity.SaleItem
	for _, it := range st.items {
		if it.SaleID == saleID {
			c := it
			c.ProductName = st.products[it.ProductID].Name
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *SaleRepo) List(_ context.Context, limit, offset int) ([]*entity.Sale, error) {
	st, done := r.s.view(r.tx)
	defer done()
	return page(newestSales(st, func(entity.Sale) bool { return true }), limit, offset), nil
}

func (r *SaleRepo) ListByCustomer(_ context.Context, customerID string, limit int) ([]*entity.Sale, error) {
	st, done := r.s.view(r.tx)
	defer done()
	list := newestSales(st, func(s entity.Sale) bool { return s.CustomerID != nil && *s.CustomerID == customerID })
	return page(list, limit, 0), nil
}

func newestSales(st *state, keep func(entity.Sale) bool) []*entity.Sale {
	var out []*entity.Sale
	for i := len(st.sales) - 1; i >= 0; i-- {
		if keep(st.sales[i]) {
			s := st.sales[i]
			fillCustomerName(st, &s)
			out = append(out, &s)
		}
	}
	return out
}

func fillCustomerName(st *state, s *entity.Sale) {
	if s.CustomerID != nil {
		s.CustomerName = st.customers[*s.CustomerID].Name
	}
}

// ── Movimientos ──────────────────────────────────────────────────────────────

// MovementRepo movimientos en memoria. Con tx nil opera sobre el estado confirmado.
type MovementRepo struct {
	s  *Store
	tx *txState
}

// Movements repositorio de lectura sobre el estado confirmado.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

func (r *MovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	st, done := r.s.view(r.tx)
	defer done()
	if r.tx != nil && r.tx.failMov {
		return fmt.Errorf("create inventory movement: %w", ErrInjected)
	}
	if _, ok := st.products[m.ProductID]; !ok {
		return fmt.Errorf("producto o usuario del movimiento: %w", domain.ErrNotFound)
	}
	st.movements = append(st.movements, *m)
	return nil
}

func (r *MovementRepo) ListRecent(_ context.Context, limit int) ([]*entity.MovementDetail, error) {
	st, done := r.s.view(r.tx)
	defer done()
	return movementDetails(st, "", limit), nil
}

func (r *MovementRepo) ListByProduct(_ context.Context, productID string, limit int) ([]*entity.MovementDetail, error) {
	st, done := r.s.view(r.tx)
	defer done()
	return movementDetails(st, productID, limit), nil
}

func movementDetails(st *state, productID string, limit int) []*entity.MovementDetail {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	var out []*entity.MovementDetail
	for i := len(st.movements) - 1; i >= 0 && len(out) < limit; i-- {
		m := st.movements[i]
		if productID != "" && m.ProductID != productID {
			continue
		}
		out = append(out, &entity.MovementDetail{InventoryMovement: m, ProductName: st.products[m.ProductID].Name})
	}
	return out
}

// ── Productos ────────────────────────────────────────────────────────────────

// ProductRepo productos en memoria sobre el estado confirmado.
type ProductRepo struct {
	s *Store
}

// Products repositorio de productos sobre el estado confirmado.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	st, done := r.s.view(nil)
	defer done()
	for _, existing := range st.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	if err := checkRefs(st, p); err != nil {
		return err
	}
	p.CurrentStock = 0
	st.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	st, done := r.s.view(nil)
	defer done()
	p, ok := st.products[id]
	if !ok {
		return nil, nil
	}
	return withNames(st, p), nil
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	st, done := r.s.view(nil)
	defer done()
	for _, p := range st.products {
		if p.SKU == sku {
			return withNames(st, p), nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	st, done := r.s.view(nil)
	defer done()
	cur, ok := st.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, existing := range st.products {
		if id != p.ID && existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	if err := checkRefs(st, p); err != nil {
		return err
	}
	upd := *p
	upd.CurrentStock = cur.CurrentStock
	st.products[p.ID] = upd
	return nil
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	st, done := r.s.view(nil)
	defer done()
	return page(sortedProducts(st, func(p entity.Product) bool { return p.IsActive }), limit, offset), nil
}

func (r *ProductRepo) Deactivate(_ context.Context, id string) error {
	st, done := r.s.view(nil)
	defer done()
	p, ok := st.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsActive = false
	st.products[id] = p
	return nil
}

func (r *ProductRepo) ListBelowMinimum(_ context.Context, limit int) ([]*entity.Product, error) {
	st, done := r.s.view(nil)
	defer done()
	list := sortedProducts(st, func(p entity.Product) bool { return p.IsActive && p.IsLowStock() })
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CurrentStock-list[i].MinimumStock < list[j].CurrentStock-list[j].MinimumStock
	})
	return page(list, limit, 0), nil
}

func sortedProducts(st *state, keep func(entity.Product) bool) []*entity.Product {
	var out []*entity.Product
	for _, p := range st.products {
		if keep(p) {
			out = append(out, withNames(st, p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// checkRefs simula las llaves foráneas de categoría y proveedor.
func checkRefs(st *state, p *entity.Product) error {
	if p.CategoryID != nil {
		if _, ok := st.categories[*p.CategoryID]; !ok {
			return fmt.Errorf("categoría %s: %w", *p.CategoryID, domain.ErrNotFound)
		}
	}
	if p.SupplierID != nil {
		if _, ok := st.suppliers[*p.SupplierID]; !ok {
			return fmt.Errorf("proveedor %s: %w", *p.SupplierID, domain.ErrNotFound)
		}
	}
	return nil
}

// withNames copia el producto resolviendo los nombres como el join de PostgreSQL.
func withNames(st *state, p entity.Product) *entity.Product {
	p.CategoryName, p.SupplierName = "", ""
	if p.CategoryID != nil {
		p.CategoryName = st.categories[*p.CategoryID].Name
	}
	if p.SupplierID != nil {
		p.SupplierName = st.suppliers[*p.SupplierID].Name
	}
	return &p
}

// ── Categorías y proveedores ─────────────────────────────────────────────────

// CategoryRepo categorías en memoria.
type CategoryRepo struct {
	s *Store
}

// Categories repositorio de categorías sobre el estado confirmado.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	st, done := r.s.view(nil)
	defer done()
	var out []*entity.Category
	for _, c := range st.categories {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct {
	s *Store
}

// Suppliers repositorio de proveedores sobre el estado confirmado.
func (s *Store) Suppliers() *SupplierRepo { return &SupplierRepo{s: s} }

func (r *SupplierRepo) ListActive(_ context.Context) ([]*entity.Supplier, error) {
	st, done := r.s.view(nil)
	defer done()
	var out []*entity.Supplier
	for _, sp := range st.suppliers {
		if sp.IsActive {
			sp := sp
			out = append(out, &sp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── Clientes ─────────────────────────────────────────────────────────────────

// CustomerRepo clientes en memoria sobre el estado confirmado.
type CustomerRepo struct {
	s *Store
}

// Customers repositorio de clientes sobre el estado confirmado.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s: s} }

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	st, done := r.s.view(nil)
	defer done()
	st.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	st, done := r.s.view(nil)
	defer done()
	c, ok := st.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CustomerRepo) List(_ context.Context, search string, limit, offset int) ([]*entity.Customer, error) {
	st, done := r.s.view(nil)
	defer done()
	var out []*entity.Customer
	for _, c := range st.customers {
		if c.IsActive && (search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(search))) {
			cc := c
			out = append(out, &cc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	st, done := r.s.view(nil)
	defer done()
	if _, ok := st.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	st.customers[c.ID] = *c
	return nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

var (
	_ repository.StockRepository             = (*StockRepo)(nil)
	_ repository.SaleRepository              = (*SaleRepo)(nil)
	_ repository.InventoryMovementRepository = (*MovementRepo)(nil)
	_ repository.ProductRepository           = (*ProductRepo)(nil)
	_ repository.CustomerRepository          = (*CustomerRepo)(nil)
)
