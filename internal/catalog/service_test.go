package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/arcoffee/arcoffee-backend/pkg/enums"
	pkgerrors "github.com/arcoffee/arcoffee-backend/pkg/errors"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (g gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return g.db.WithContext(ctx).Transaction(fn)
}

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT,
  image_url TEXT,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT,
  price INTEGER NOT NULL,
  image_url TEXT,
  is_available INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS options (
  id TEXT PRIMARY KEY,
  group_name TEXT NOT NULL,
  name TEXT NOT NULL,
  extra_price INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS product_options (
  product_id TEXT NOT NULL,
  option_id TEXT NOT NULL,
  PRIMARY KEY (product_id, option_id)
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, gdb.Exec(stmt).Error)
	}
	return gdb
}

func newCatalogService(t *testing.T) (Service, *Repository) {
	t.Helper()

	gdb := setupCatalogTestDB(t)
	repo := NewRepository(gdb)
	svc, err := NewService(repo, gormTxRunner{db: gdb})
	require.NoError(t, err)
	return svc, repo
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "es-kopi-gula-aren", Slugify("Es Kopi Gula Aren"))
	assert.Equal(t, "kopi-susu", Slugify("  Kopi Susu!  "))
	assert.Equal(t, "croissant-co", Slugify("Croissant & Co."))
}

func TestCreateCategoryAndProduct(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Kopi"})
	require.NoError(t, err)
	assert.Equal(t, "kopi", category.Slug)

	size, err := svc.CreateOption(ctx, CreateOptionInput{Group: "size", Name: "Large", ExtraPrice: 3000})
	require.NoError(t, err)

	product, err := svc.CreateProduct(ctx, CreateProductInput{
		CategoryID:  category.ID,
		Name:        "Es Kopi Gula Aren",
		Price:       18000,
		IsAvailable: true,
		OptionIDs:   []uuid.UUID{size.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "es-kopi-gula-aren", product.Slug)
	require.Len(t, product.Options, 1)
	assert.Equal(t, enums.OptionGroupSize, product.Options[0].Group)
}

func TestCreateProductDuplicateSlug(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Kopi"})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, CreateProductInput{CategoryID: category.ID, Name: "Kopi Susu", Price: 15000, IsAvailable: true})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, CreateProductInput{CategoryID: category.ID, Name: "Kopi Susu", Price: 16000, IsAvailable: true})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestCreateProductUnknownCategory(t *testing.T) {
	svc, _ := newCatalogService(t)

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{CategoryID: uuid.New(), Name: "Kopi Susu", Price: 15000})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestMenuFiltersUnavailableProducts(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	kopi, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Kopi"})
	require.NoError(t, err)
	pastry, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Pastry"})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, CreateProductInput{CategoryID: kopi.ID, Name: "Kopi Susu", Price: 15000, IsAvailable: true})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, CreateProductInput{CategoryID: pastry.ID, Name: "Croissant", Price: 22000, IsAvailable: false})
	require.NoError(t, err)

	sections, err := svc.Menu(ctx, "")
	require.NoError(t, err)
	// The pastry section disappears entirely, its only product is unavailable.
	require.Len(t, sections, 1)
	assert.Equal(t, "Kopi", sections[0].Category.Name)
	require.Len(t, sections[0].Products, 1)
	assert.Equal(t, "Kopi Susu", sections[0].Products[0].Name)

	sections, err = svc.Menu(ctx, "kopi")
	require.NoError(t, err)
	require.Len(t, sections, 1)

	_, err = svc.Menu(ctx, "teh")
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestUpdateProduct(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Kopi"})
	require.NoError(t, err)
	product, err := svc.CreateProduct(ctx, CreateProductInput{CategoryID: category.ID, Name: "Kopi Susu", Price: 15000, IsAvailable: true})
	require.NoError(t, err)

	newPrice := 17000
	unavailable := false
	updated, err := svc.UpdateProduct(ctx, product.ID, UpdateProductInput{Price: &newPrice, IsAvailable: &unavailable})
	require.NoError(t, err)
	assert.Equal(t, 17000, updated.Price)
	assert.False(t, updated.IsAvailable)

	_, err = svc.UpdateProduct(ctx, uuid.New(), UpdateProductInput{Price: &newPrice})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestDeleteProduct(t *testing.T) {
	svc, repo := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Kopi"})
	require.NoError(t, err)
	product, err := svc.CreateProduct(ctx, CreateProductInput{CategoryID: category.ID, Name: "Kopi Susu", Price: 15000, IsAvailable: true})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))

	_, err = repo.FindProductByID(ctx, product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = svc.DeleteProduct(ctx, product.ID)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestOptionGroups(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.CreateOption(ctx, CreateOptionInput{Group: "size", Name: "Regular", ExtraPrice: 0})
	require.NoError(t, err)
	_, err = svc.CreateOption(ctx, CreateOptionInput{Group: "size", Name: "Large", ExtraPrice: 3000})
	require.NoError(t, err)
	_, err = svc.CreateOption(ctx, CreateOptionInput{Group: "addon", Name: "Extra Shot", ExtraPrice: 5000})
	require.NoError(t, err)

	groups, err := svc.OptionGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, enums.OptionGroupSize, groups[0].Group)
	assert.True(t, groups[0].Exclusive)
	require.Len(t, groups[0].Options, 2)
	assert.Equal(t, "Regular", groups[0].Options[0].Name)

	assert.Equal(t, enums.OptionGroupAddon, groups[1].Group)
	assert.False(t, groups[1].Exclusive)
}

func TestCreateOptionValidation(t *testing.T) {
	svc, _ := newCatalogService(t)

	_, err := svc.CreateOption(context.Background(), CreateOptionInput{Group: "temperature", Name: "Hot"})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	_, err = svc.CreateOption(context.Background(), CreateOptionInput{Group: "size", Name: "XL", ExtraPrice: -1})
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestUpdateAndDeleteOption(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	option, err := svc.CreateOption(ctx, CreateOptionInput{Group: "sugar", Name: "Less Sugar", ExtraPrice: 0})
	require.NoError(t, err)

	price := 1000
	updated, err := svc.UpdateOption(ctx, option.ID, UpdateOptionInput{ExtraPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, 1000, updated.ExtraPrice)

	require.NoError(t, svc.DeleteOption(ctx, option.ID))

	err = svc.DeleteOption(ctx, option.ID)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
