package catalog

import (
	"fmt"
	"slices"

	"github.com/bytedance/sonic"
	"github.com/cespare/xxhash/v2"
	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
)

// Category is a top level navigation entry with its known subcategories.
type Category struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
	Count         int      `json:"count"`
}

// Catalog is an immutable product snapshot partitioned by category. Changes
// produce a new Catalog, readers never observe a partial update.
type Catalog struct {
	version     uint64
	fingerprint string
	products    []*types.Product
	byId        map[string]*types.Product
	byCategory  map[string][]*types.Product
	defined     []Category
	categories  []Category
}

// New builds a snapshot. Products are normalized, later duplicates of an id
// replace the earlier entry in place. Categories list the navigation order,
// categories only seen on products are appended after them.
func New(products []types.Product, categories []Category) *Catalog {
	c := &Catalog{
		products:   make([]*types.Product, 0, len(products)),
		byId:       make(map[string]*types.Product, len(products)),
		byCategory: make(map[string][]*types.Product),
	}
	for i := range products {
		p := products[i]
		p.Normalize()
		c.put(&p)
	}
	c.index(categories)
	return c
}

func (c *Catalog) put(p *types.Product) {
	if p.Id == "" {
		return
	}
	if _, ok := c.byId[p.Id]; ok {
		idx := slices.IndexFunc(c.products, func(e *types.Product) bool { return e.Id == p.Id })
		c.products[idx] = p
	} else {
		c.products = append(c.products, p)
	}
	c.byId[p.Id] = p
}

func (c *Catalog) index(categories []Category) {
	c.defined = categories
	c.byCategory = make(map[string][]*types.Product)
	for _, p := range c.products {
		c.byCategory[p.Category] = append(c.byCategory[p.Category], p)
	}
	c.categories = make([]Category, 0, len(categories))
	known := make(map[string]struct{}, len(categories))
	for _, cat := range categories {
		known[cat.Name] = struct{}{}
		c.categories = append(c.categories, Category{
			Name:          cat.Name,
			Subcategories: slices.Clone(cat.Subcategories),
			Count:         len(c.byCategory[cat.Name]),
		})
	}
	for _, p := range c.products {
		if _, ok := known[p.Category]; ok || p.Category == "" {
			continue
		}
		known[p.Category] = struct{}{}
		c.categories = append(c.categories, Category{
			Name:          p.Category,
			Subcategories: []string{},
			Count:         len(c.byCategory[p.Category]),
		})
	}
	for i := range c.categories {
		c.categories[i].Subcategories = mergeSubcategories(c.categories[i].Subcategories, c.byCategory[c.categories[i].Name])
	}
	c.fingerprint = fingerprint(c.products, c.defined)
}

// fingerprint hashes the snapshot content. Map keys are sorted by the
// encoder so equal catalogs always hash the same.
func fingerprint(products []*types.Product, categories []Category) string {
	h := xxhash.New()
	enc := sonic.ConfigStd.NewEncoder(h)
	for _, p := range products {
		if err := enc.Encode(p); err != nil {
			h.WriteString(p.Id)
		}
	}
	if err := enc.Encode(categories); err != nil {
		h.WriteString("categories")
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

func mergeSubcategories(defined []string, products []*types.Product) []string {
	ret := slices.Clone(defined)
	if ret == nil {
		ret = []string{}
	}
	for _, p := range products {
		if p.Subcategory != "" && !slices.Contains(ret, p.Subcategory) {
			ret = append(ret, p.Subcategory)
		}
	}
	return ret
}

// Version counts the snapshots activated in this process.
func (c *Catalog) Version() uint64 {
	return c.version
}

// Fingerprint identifies the snapshot content. Instances holding the same
// products share it, it is what shared caches are keyed on.
func (c *Catalog) Fingerprint() string {
	return c.fingerprint
}

// Defined returns the navigation categories the snapshot was built with,
// without the ones discovered from products.
func (c *Catalog) Defined() []Category {
	ret := slices.Clone(c.defined)
	if ret == nil {
		ret = []Category{}
	}
	return ret
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// CategoryProducts returns the products of one category in catalog order.
// The returned slice is shared and must not be modified.
func (c *Catalog) CategoryProducts(name string) []*types.Product {
	return c.byCategory[name]
}

func (c *Catalog) Get(id string) (*types.Product, bool) {
	p, ok := c.byId[id]
	return p, ok
}

func (c *Catalog) Categories() []Category {
	return c.categories
}

func (c *Catalog) Products() []*types.Product {
	return c.products
}

// Upsert returns a new snapshot with products replaced or appended.
func (c *Catalog) Upsert(products ...types.Product) *Catalog {
	next := &Catalog{
		version:  c.version + 1,
		products: slices.Clone(c.products),
		byId:     make(map[string]*types.Product, len(c.byId)+len(products)),
	}
	for k, v := range c.byId {
		next.byId[k] = v
	}
	for i := range products {
		p := products[i]
		p.Normalize()
		next.put(&p)
	}
	next.index(c.defined)
	return next
}

// Remove returns a new snapshot without the given ids.
func (c *Catalog) Remove(ids ...string) *Catalog {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	next := &Catalog{
		version:  c.version + 1,
		products: make([]*types.Product, 0, len(c.products)),
		byId:     make(map[string]*types.Product, len(c.byId)),
	}
	for _, p := range c.products {
		if _, ok := drop[p.Id]; ok {
			continue
		}
		next.products = append(next.products, p)
		next.byId[p.Id] = p
	}
	next.index(c.defined)
	return next
}
