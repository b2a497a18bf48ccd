package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/stylahq/styla-backend/internal/dto"
	"github.com/stylahq/styla-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrEmptyBox         = errors.New("a box needs a customer and at least one product")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProductMissing   = errors.New("one or more products do not exist")
	ErrDuplicateProduct = errors.New("a product may appear at most once per box")
)

// BoxService implements the curation workflow: a stylist picks a customer
// and a set of products, and the pair becomes a Box with one BoxProduct row
// per product.
type BoxService struct {
	db *gorm.DB
}

func NewBoxService(db *gorm.DB) *BoxService {
	return &BoxService{db: db}
}

// newBoxID keeps the historical id shape the clients rely on.
func newBoxID() string {
	return fmt.Sprintf("FB%d", time.Now().UnixMilli())
}

// CreateBox creates the box and every product link inside one transaction;
// a failing link insert rolls the whole box back, so a box is either fully
// assembled or absent.
func (s *BoxService) CreateBox(customerID string, productIDs []string) (string, error) {
	if customerID == "" || len(productIDs) == 0 {
		return "", ErrEmptyBox
	}

	seen := make(map[string]struct{}, len(productIDs))
	for _, productID := range productIDs {
		if _, dup := seen[productID]; dup {
			return "", ErrDuplicateProduct
		}
		seen[productID] = struct{}{}
	}

	box := models.Box{ID: newBoxID(), CustomerID: customerID}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var customer models.User
		if err := tx.First(&customer, "id = ?", customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Product{}).Where("id IN ?", productIDs).Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(productIDs)) {
			return ErrProductMissing
		}

		if err := tx.Create(&box).Error; err != nil {
			return err
		}

		for _, productID := range productIDs {
			link := models.BoxProduct{BoxID: box.ID, ProductID: productID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return box.ID, nil
}

// ListBoxesFor returns joined box × product rows: everything for admins,
// only the requester's own boxes otherwise.
func (s *BoxService) ListBoxesFor(user *models.User) ([]dto.BoxRow, error) {
	query := s.db.Table("boxes").
		Select("boxes.id AS box_id, boxes.customer_id, boxes.created_at, boxes.updated_at, " +
			"products.id AS product_id, products.name, products.brand_name, products.price, products.category, products.image").
		Joins("INNER JOIN box_products ON box_products.box_id = boxes.id").
		Joins("INNER JOIN products ON products.id = box_products.product_id").
		Order("boxes.created_at DESC")

	if !user.IsAdmin() {
		query = query.Where("boxes.customer_id = ?", user.ID)
	}

	var rows []boxProductRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]dto.BoxRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.BoxRow{Box: row.box(), Product: row.product()})
	}
	return result, nil
}

// NewestBox returns the joined products of the customer's most recent box,
// or an empty slice when no box exists yet.
func (s *BoxService) NewestBox(customerID string) ([]dto.BoxItemRow, error) {
	var box models.Box
	err := s.db.Where("customer_id = ?", customerID).
		Order("created_at DESC").
		First(&box).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []dto.BoxItemRow{}, nil
		}
		return nil, err
	}

	var rows []boxProductRow
	err = s.db.Table("box_products").
		Select("box_products.box_id, box_products.product_id, " +
			"products.name, products.brand_name, products.price, products.category, products.image").
		Joins("INNER JOIN products ON products.id = box_products.product_id").
		Where("box_products.box_id = ?", box.ID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]dto.BoxItemRow, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.BoxItemRow{
			BoxProduct: models.BoxProduct{BoxID: row.BoxID, ProductID: row.ProductID},
			Product:    row.product(),
		})
	}
	return items, nil
}

// boxProductRow is the flat scan target for the joined queries.
type boxProductRow struct {
	BoxID      string
	CustomerID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ProductID  string
	Name       string
	BrandName  string
	Price      int
	Category   string
	Image      *string
}

func (r boxProductRow) box() models.Box {
	return models.Box{
		ID:         r.BoxID,
		CustomerID: r.CustomerID,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func (r boxProductRow) product() models.Product {
	return models.Product{
		ID:        r.ProductID,
		Name:      r.Name,
		BrandName: r.BrandName,
		Price:     r.Price,
		Category:  r.Category,
		Image:     r.Image,
	}
}
