package service

import (
	"context"

	"github.com/deppfellow/store-inventory/internal/metrics"
	"github.com/deppfellow/store-inventory/internal/repository"
)

// ProductSpec maps the add-product form onto the product table.
var ProductSpec = repository.FieldSpec{
	Table:  "product",
	Entity: "Product",
	Fields: []repository.Field{
		{Name: "productName", Column: "name", Type: repository.String, Required: true},
		{Name: "description", Column: "description", Type: repository.String, Default: ""},
		{Name: "price", Column: "price", Type: repository.Float, Required: true},
		{Name: "quantity", Column: "stockquantity", Type: repository.Integer, Required: true},
		{Name: "expiryDate", Column: "expirydate", Type: repository.String},
		{Name: "reorder", Column: "reorderlevel", Type: repository.Integer, Default: 0},
		{Name: "CategoryID", Column: "categoryid", Type: repository.Integer},
		{Name: "SupplierID", Column: "supplierid", Type: repository.Integer},
	},
}

// VendorSpec maps the add-vendor form onto the supplier table.
var VendorSpec = repository.FieldSpec{
	Table:  "supplier",
	Entity: "Vendor",
	Fields: []repository.Field{
		{Name: "vendorName", Column: "name", Type: repository.String, Required: true},
		{Name: "vendorEmail", Column: "email", Type: repository.String, Default: ""},
		{Name: "vendorNumber", Column: "contactnumber", Type: repository.Integer},
		{Name: "vendorAddress", Column: "address", Type: repository.String, Default: ""},
	},
}

// CategorySpec maps the add-category form onto the category table.
var CategorySpec = repository.FieldSpec{
	Table:  "category",
	Entity: "Category",
	Fields: []repository.Field{
		{Name: "categoryName", Column: "name", Type: repository.String, Required: true},
		{Name: "description", Column: "description", Type: repository.String, Default: ""},
	},
}

// Inserter writes one payload as one row.
type Inserter interface {
	Insert(ctx context.Context, spec repository.FieldSpec, payload map[string]any) (*repository.InsertResult, error)
}

type InventoryService struct {
	repo    Inserter
	metrics *metrics.Metrics
}

func NewInventoryService(repo Inserter, m *metrics.Metrics) *InventoryService {
	return &InventoryService{repo: repo, metrics: m}
}

func (s *InventoryService) AddProduct(ctx context.Context, payload map[string]any) (*repository.InsertResult, error) {
	return s.add(ctx, ProductSpec, payload)
}

func (s *InventoryService) AddVendor(ctx context.Context, payload map[string]any) (*repository.InsertResult, error) {
	return s.add(ctx, VendorSpec, payload)
}

func (s *InventoryService) AddCategory(ctx context.Context, payload map[string]any) (*repository.InsertResult, error) {
	return s.add(ctx, CategorySpec, payload)
}

func (s *InventoryService) add(ctx context.Context, spec repository.FieldSpec, payload map[string]any) (*repository.InsertResult, error) {
	result, err := s.repo.Insert(ctx, spec, payload)
	s.metrics.RecordInsert(spec.Entity, outcome(err))
	return result, err
}
