// Package memory implementa los repositorios de dominio sobre mapas en
// memoria. Sirve como doble de prueba de la capa de aplicación y como backend
// de desarrollo sin base de datos. Las transacciones se simulan clonando el
// estado completo: la función transaccional trabaja sobre la copia y el commit
// es el intercambio del estado, así un error descarta todos los cambios.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dataeasy/dataeasy-api/internal/domain"
	"github.com/dataeasy/dataeasy-api/internal/domain/entity"
	"github.com/dataeasy/dataeasy-api/internal/domain/repository"
)

// Store contiene el estado compartido de todos los repositorios en memoria.
// mu protege data; txMu serializa las transacciones completas y permite que
// dentro de una transacción se siga leyendo el estado vigente por los
// repositorios no transaccionales.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	data *data
}

// data es el estado versionable del Store. clone produce una copia profunda.
type data struct {
	products     map[string]*entity.Product
	movements    map[string]*entity.Movement
	categories   map[string]*entity.Category
	brands       map[string]*entity.Brand
	invoices     map[string]*entity.Invoice
	invoiceLines map[string][]*entity.InvoiceLine
	users        map[string]*entity.User
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{data: newData()}
}

func newData() *data {
	return &data{
		products:     make(map[string]*entity.Product),
		movements:    make(map[string]*entity.Movement),
		categories:   make(map[string]*entity.Category),
		brands:       make(map[string]*entity.Brand),
		invoices:     make(map[string]*entity.Invoice),
		invoiceLines: make(map[string][]*entity.InvoiceLine),
		users:        make(map[string]*entity.User),
	}
}

func (d *data) clone() *data {
	c := newData()
	for id, p := range d.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, m := range d.movements {
		cm := *m
		c.movements[id] = &cm
	}
	for id, cat := range d.categories {
		cc := *cat
		c.categories[id] = &cc
	}
	for id, b := range d.brands {
		cb := *b
		c.brands[id] = &cb
	}
	for id, inv := range d.invoices {
		ci := *inv
		ci.PDF = append([]byte(nil), inv.PDF...)
		c.invoices[id] = &ci
	}
	for id, lines := range d.invoiceLines {
		cl := make([]*entity.InvoiceLine, len(lines))
		for i, l := range lines {
			copied := *l
			cl[i] = &copied
		}
		c.invoiceLines[id] = cl
	}
	for id, u := range d.users {
		cu := *u
		c.users[id] = &cu
	}
	return c
}

// Repositorios sobre el estado vigente (fuera de transacción).

func (s *Store) Products() repository.ProductRepository   { return &productRepo{sess: &storeSession{s}} }
func (s *Store) Movements() repository.MovementRepository { return &movementRepo{sess: &storeSession{s}} }
func (s *Store) Categories() repository.CategoryRepository {
	return &categoryRepo{sess: &storeSession{s}}
}
func (s *Store) Brands() repository.BrandRepository     { return &brandRepo{sess: &storeSession{s}} }
func (s *Store) Invoices() repository.InvoiceRepository { return &invoiceRepo{sess: &storeSession{s}} }
func (s *Store) Users() repository.UserRepository       { return &userRepo{sess: &storeSession{s}} }

// session da acceso al estado sobre el que opera un repositorio: el estado
// vigente del Store (con lock) o el clon de una transacción en curso.
type session interface {
	with(fn func(d *data) error) error
}

type storeSession struct{ s *Store }

func (ss *storeSession) with(fn func(d *data) error) error {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()
	return fn(ss.s.data)
}

type txSession struct{ d *data }

func (ts *txSession) with(fn func(d *data) error) error { return fn(ts.d) }

func equalFold(a, b string) bool { return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) }

// ─── productos ───────────────────────────────────────────────────────────────

type productRepo struct{ sess session }

var _ repository.ProductRepository = (*productRepo)(nil)

func (r *productRepo) Create(product *entity.Product) error {
	return r.sess.with(func(d *data) error { return createProduct(d, product) })
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.sess.with(func(d *data) error {
		if p, ok := d.products[id]; ok {
			cp := *p
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *productRepo) GetByName(name string) (*entity.Product, error) {
	var out *entity.Product
	err := r.sess.with(func(d *data) error {
		out = findProductByName(d, name)
		return nil
	})
	return out, err
}

func (r *productRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *productRepo) Update(product *entity.Product) error {
	return r.sess.with(func(d *data) error { return updateProduct(d, product) })
}

func (r *productRepo) UpdateStock(id string, stock int64) error {
	return r.sess.with(func(d *data) error {
		if p, ok := d.products[id]; ok {
			p.StockActual = stock
			p.UpdatedAt = time.Now()
		}
		return nil
	})
}

func (r *productRepo) List(query string, limit, offset int) ([]*entity.Product, int, error) {
	var items []*entity.Product
	total := 0
	err := r.sess.with(func(d *data) error {
		all := sortedProducts(d)
		var matched []*entity.Product
		q := strings.ToLower(strings.TrimSpace(query))
		for _, p := range all {
			if q == "" || strings.Contains(strings.ToLower(p.Name), q) ||
				matchCatalog(d.categories[p.CategoryID], q) != "" ||
				matchBrand(d.brands[p.BrandID], q) != "" {
				matched = append(matched, p)
			}
		}
		total = len(matched)
		items = page(matched, limit, offset)
		return nil
	})
	return items, total, err
}

func (r *productRepo) ListAll() ([]*entity.Product, error) {
	var items []*entity.Product
	err := r.sess.with(func(d *data) error {
		items = sortedProducts(d)
		return nil
	})
	return items, err
}

func (r *productRepo) Delete(id string) error {
	return r.sess.with(func(d *data) error { return deleteProduct(d, id) })
}

func createProduct(d *data, product *entity.Product) error {
	if findProductByName(d, product.Name) != nil {
		return domain.ErrDuplicate
	}
	cp := *product
	d.products[product.ID] = &cp
	return nil
}

func updateProduct(d *data, product *entity.Product) error {
	existing, ok := d.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if other := findProductByName(d, product.Name); other != nil && other.ID != product.ID {
		return domain.ErrDuplicate
	}
	stock := existing.StockActual
	cp := *product
	cp.StockActual = stock
	d.products[product.ID] = &cp
	return nil
}

func deleteProduct(d *data, id string) error {
	if _, ok := d.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(d.products, id)
	for movID, m := range d.movements {
		if m.ProductID == id {
			delete(d.movements, movID)
		}
	}
	return nil
}

func findProductByName(d *data, name string) *entity.Product {
	for _, p := range d.products {
		if equalFold(p.Name, name) {
			cp := *p
			return &cp
		}
	}
	return nil
}

func sortedProducts(d *data) []*entity.Product {
	items := make([]*entity.Product, 0, len(d.products))
	for _, p := range d.products {
		cp := *p
		items = append(items, &cp)
	}
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items
}

func matchCatalog(c *entity.Category, q string) string {
	if c != nil && strings.Contains(strings.ToLower(c.Name), q) {
		return c.ID
	}
	return ""
}

func matchBrand(b *entity.Brand, q string) string {
	if b != nil && strings.Contains(strings.ToLower(b.Name), q) {
		return b.ID
	}
	return ""
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ─── movimientos ─────────────────────────────────────────────────────────────

type movementRepo struct{ sess session }

var _ repository.MovementRepository = (*movementRepo)(nil)

func (r *movementRepo) Create(movement *entity.Movement) error {
	return r.sess.with(func(d *data) error {
		cp := *movement
		d.movements[movement.ID] = &cp
		return nil
	})
}

func (r *movementRepo) GetByID(id string) (*entity.Movement, error) {
	var out *entity.Movement
	err := r.sess.with(func(d *data) error {
		if m, ok := d.movements[id]; ok {
			cm := *m
			out = &cm
		}
		return nil
	})
	return out, err
}

func (r *movementRepo) Delete(id string) error {
	return r.sess.with(func(d *data) error {
		if _, ok := d.movements[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.movements, id)
		return nil
	})
}

func (r *movementRepo) SumByKind(productID, kind string) (int64, error) {
	var sum int64
	err := r.sess.with(func(d *data) error {
		for _, m := range d.movements {
			if m.ProductID == productID && m.Kind == kind {
				sum += m.Quantity
			}
		}
		return nil
	})
	return sum, err
}

func (r *movementRepo) List(productID string, limit, offset int) ([]*entity.Movement, error) {
	var items []*entity.Movement
	err := r.sess.with(func(d *data) error {
		for _, m := range d.movements {
			if productID == "" || m.ProductID == productID {
				cm := *m
				items = append(items, &cm)
			}
		}
		sort.Slice(items, func(i, j int) bool {
			if !items[i].Date.Equal(items[j].Date) {
				return items[i].Date.After(items[j].Date)
			}
			return items[i].ID > items[j].ID
		})
		items = page(items, limit, offset)
		return nil
	})
	return items, err
}

// ─── categorías y marcas ─────────────────────────────────────────────────────

type categoryRepo struct{ sess session }

var _ repository.CategoryRepository = (*categoryRepo)(nil)

func (r *categoryRepo) GetOrCreate(name string) (*entity.Category, error) {
	var out *entity.Category
	err := r.sess.with(func(d *data) error {
		out = getOrCreateCategory(d, name)
		return nil
	})
	return out, err
}

func (r *categoryRepo) GetByID(id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.sess.with(func(d *data) error {
		if c, ok := d.categories[id]; ok {
			cc := *c
			out = &cc
		}
		return nil
	})
	return out, err
}

func (r *categoryRepo) List() ([]*entity.Category, error) {
	var items []*entity.Category
	err := r.sess.with(func(d *data) error {
		for _, c := range d.categories {
			cc := *c
			items = append(items, &cc)
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
		return nil
	})
	return items, err
}

func getOrCreateCategory(d *data, name string) *entity.Category {
	for _, c := range d.categories {
		if equalFold(c.Name, name) {
			cc := *c
			return &cc
		}
	}
	c := &entity.Category{ID: newID(), Name: strings.TrimSpace(name), CreatedAt: time.Now()}
	d.categories[c.ID] = c
	cc := *c
	return &cc
}

type brandRepo struct{ sess session }

var _ repository.BrandRepository = (*brandRepo)(nil)

func (r *brandRepo) GetOrCreate(name string) (*entity.Brand, error) {
	var out *entity.Brand
	err := r.sess.with(func(d *data) error {
		out = getOrCreateBrand(d, name)
		return nil
	})
	return out, err
}

func (r *brandRepo) GetByID(id string) (*entity.Brand, error) {
	var out *entity.Brand
	err := r.sess.with(func(d *data) error {
		if b, ok := d.brands[id]; ok {
			cb := *b
			out = &cb
		}
		return nil
	})
	return out, err
}

func (r *brandRepo) List() ([]*entity.Brand, error) {
	var items []*entity.Brand
	err := r.sess.with(func(d *data) error {
		for _, b := range d.brands {
			cb := *b
			items = append(items, &cb)
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
		return nil
	})
	return items, err
}

func getOrCreateBrand(d *data, name string) *entity.Brand {
	for _, b := range d.brands {
		if equalFold(b.Name, name) {
			cb := *b
			return &cb
		}
	}
	b := &entity.Brand{ID: newID(), Name: strings.TrimSpace(name), CreatedAt: time.Now()}
	d.brands[b.ID] = b
	cb := *b
	return &cb
}

// ─── facturas ────────────────────────────────────────────────────────────────

type invoiceRepo struct{ sess session }

var _ repository.InvoiceRepository = (*invoiceRepo)(nil)

func (r *invoiceRepo) Create(invoice *entity.Invoice) error {
	return r.sess.with(func(d *data) error {
		cp := *invoice
		d.invoices[invoice.ID] = &cp
		return nil
	})
}

func (r *invoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	return r.sess.with(func(d *data) error {
		cp := *line
		d.invoiceLines[line.InvoiceID] = append(d.invoiceLines[line.InvoiceID], &cp)
		return nil
	})
}

func (r *invoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.sess.with(func(d *data) error {
		if inv, ok := d.invoices[id]; ok {
			ci := *inv
			out = &ci
		}
		return nil
	})
	return out, err
}

func (r *invoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error) {
	var out []*entity.InvoiceLine
	err := r.sess.with(func(d *data) error {
		for _, l := range d.invoiceLines[invoiceID] {
			cl := *l
			out = append(out, &cl)
		}
		return nil
	})
	return out, err
}

func (r *invoiceRepo) UpdatePDF(id string, pdf []byte) error {
	return r.sess.with(func(d *data) error {
		inv, ok := d.invoices[id]
		if !ok {
			return domain.ErrNotFound
		}
		inv.PDF = append([]byte(nil), pdf...)
		return nil
	})
}

// ─── usuarios ────────────────────────────────────────────────────────────────

type userRepo struct{ sess session }

var _ repository.UserRepository = (*userRepo)(nil)

func (r *userRepo) Create(user *entity.User) error {
	return r.sess.with(func(d *data) error {
		for _, u := range d.users {
			if equalFold(u.Username, user.Username) {
				return domain.ErrDuplicate
			}
		}
		cp := *user
		d.users[user.ID] = &cp
		return nil
	})
}

func (r *userRepo) GetByUsername(username string) (*entity.User, error) {
	var out *entity.User
	err := r.sess.with(func(d *data) error {
		for _, u := range d.users {
			if equalFold(u.Username, username) {
				cu := *u
				out = &cu
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *userRepo) List() ([]*entity.User, error) {
	var items []*entity.User
	err := r.sess.with(func(d *data) error {
		for _, u := range d.users {
			cu := *u
			items = append(items, &cu)
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Username < items[j].Username })
		return nil
	})
	return items, err
}
