package catalog

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arcoffee/arcoffee-backend/pkg/db"
	"github.com/arcoffee/arcoffee-backend/pkg/db/models"
	"github.com/arcoffee/arcoffee-backend/pkg/enums"
	pkgerrors "github.com/arcoffee/arcoffee-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the storefront menu reads and the admin catalog mutations.
type Service interface {
	Menu(ctx context.Context, categorySlug string) ([]MenuSection, error)
	Categories(ctx context.Context) ([]models.Category, error)
	OptionGroups(ctx context.Context) ([]OptionGroupView, error)

	CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	CreateOption(ctx context.Context, input CreateOptionInput) (*models.Option, error)
	UpdateOption(ctx context.Context, optionID uuid.UUID, input UpdateOptionInput) (*models.Option, error)
	DeleteOption(ctx context.Context, optionID uuid.UUID) error
}

type service struct {
	repo *Repository
	tx   txRunner
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// Menu returns the storefront menu, one section per category. Only available
// products appear; empty categories are skipped.
func (s *service) Menu(ctx context.Context, categorySlug string) ([]MenuSection, error) {
	var categories []models.Category
	if slug := strings.TrimSpace(categorySlug); slug != "" {
		category, err := s.repo.FindCategoryBySlug(ctx, slug)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
		}
		categories = []models.Category{*category}
	} else {
		all, err := s.repo.ListCategories(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
		}
		categories = all
	}

	sections := make([]MenuSection, 0, len(categories))
	for _, category := range categories {
		id := category.ID
		products, err := s.repo.ListProducts(ctx, &id, true)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
		}
		if len(products) == 0 {
			continue
		}
		sections = append(sections, MenuSection{
			Category: category,
			Products: products,
		})
	}
	return sections, nil
}

func (s *service) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return categories, nil
}

// OptionGroups returns every option bucketed by customization group, in the
// order the storefront renders them.
func (s *service) OptionGroups(ctx context.Context) ([]OptionGroupView, error) {
	options, err := s.repo.ListOptions(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list options")
	}

	byGroup := map[enums.OptionGroup][]models.Option{}
	for _, option := range options {
		byGroup[option.Group] = append(byGroup[option.Group], option)
	}

	groups := make([]OptionGroupView, 0, len(byGroup))
	for _, group := range enums.OptionGroups() {
		opts, ok := byGroup[group]
		if !ok {
			continue
		}
		groups = append(groups, OptionGroupView{
			Group:     group,
			Exclusive: group.IsExclusive(),
			Options:   opts,
		})
	}
	return groups, nil
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}

	category := &models.Category{
		ID:          uuid.New(),
		Name:        name,
		Slug:        Slugify(name),
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "categories_slug_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a category with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return category, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if input.Price < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price cannot be negative")
	}

	if _, err := s.repo.FindCategoryByID(ctx, input.CategoryID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	options, err := s.resolveOptions(ctx, input.OptionIDs)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:          uuid.New(),
		CategoryID:  input.CategoryID,
		Name:        name,
		Slug:        Slugify(name),
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		IsAvailable: input.IsAvailable,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.CreateProduct(ctx, product); err != nil {
			if db.IsUniqueViolation(err, "products_slug_key") {
				return pkgerrors.New(pkgerrors.CodeConflict, "a product with this name already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
		}
		if len(options) > 0 {
			if err := txRepo.ReplaceProductOptions(ctx, product, options); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign product options")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	product.Options = options
	return product, nil
}

func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
		}
		updates["name"] = name
		updates["slug"] = Slugify(name)
	}
	if input.CategoryID != nil {
		if _, err := s.repo.FindCategoryByID(ctx, *input.CategoryID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
		}
		updates["category_id"] = *input.CategoryID
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price cannot be negative")
		}
		updates["price"] = *input.Price
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if input.IsAvailable != nil {
		updates["is_available"] = *input.IsAvailable
	}

	var options []models.Option
	if input.OptionIDs != nil {
		resolved, err := s.resolveOptions(ctx, *input.OptionIDs)
		if err != nil {
			return nil, err
		}
		options = resolved
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if len(updates) > 0 {
			if err := txRepo.UpdateProduct(ctx, productID, updates); err != nil {
				if err == gorm.ErrRecordNotFound {
					return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
				}
				if db.IsUniqueViolation(err, "products_slug_key") {
					return pkgerrors.New(pkgerrors.CodeConflict, "a product with this name already exists")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
			}
		}
		if input.OptionIDs != nil {
			if err := txRepo.ReplaceProductOptions(ctx, &models.Product{ID: productID}, options); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign product options")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	product, err := s.repo.FindProductByID(ctx, productID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload product")
	}
	return product, nil
}

func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) CreateOption(ctx context.Context, input CreateOptionInput) (*models.Option, error) {
	group, err := enums.ParseOptionGroup(input.Group)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid option group").
			WithDetails(map[string]any{"group": input.Group})
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "option name required")
	}
	if input.ExtraPrice < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "option price cannot be negative")
	}

	option := &models.Option{
		ID:         uuid.New(),
		Group:      group,
		Name:       name,
		ExtraPrice: input.ExtraPrice,
	}
	if err := s.repo.CreateOption(ctx, option); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create option")
	}
	return option, nil
}

func (s *service) UpdateOption(ctx context.Context, optionID uuid.UUID, input UpdateOptionInput) (*models.Option, error) {
	if optionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "option id required")
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "option name cannot be empty")
		}
		updates["name"] = name
	}
	if input.ExtraPrice != nil {
		if *input.ExtraPrice < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "option price cannot be negative")
		}
		updates["extra_price"] = *input.ExtraPrice
	}

	if err := s.repo.UpdateOption(ctx, optionID, updates); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "option not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update option")
	}

	options, err := s.repo.FindOptionsByIDs(ctx, []uuid.UUID{optionID})
	if err != nil || len(options) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "option not found")
	}
	return &options[0], nil
}

func (s *service) DeleteOption(ctx context.Context, optionID uuid.UUID) error {
	if optionID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "option id required")
	}
	if err := s.repo.DeleteOption(ctx, optionID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "option not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete option")
	}
	return nil
}

func (s *service) resolveOptions(ctx context.Context, ids []uuid.UUID) ([]models.Option, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	options, err := s.repo.FindOptionsByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load options")
	}
	if len(options) != len(ids) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "one or more options do not exist")
	}
	return options, nil
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a display name into a URL-safe slug.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStrip.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
