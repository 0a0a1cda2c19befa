package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/erp_core_backend/internal/apperrors"
	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	"github.com/SscSPs/erp_core_backend/internal/core/events"
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_core_backend/internal/core/ports/services"
	"github.com/SscSPs/erp_core_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type ProductServiceTestSuite struct {
	suite.Suite
	repos          portsrepo.Container
	registry       *events.Registry
	svc            *portssvc.Container
	organizationID string
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.repos, suite.registry, suite.svc = newTestServices()
	suite.organizationID = uuid.NewString()
}

func (suite *ProductServiceTestSuite) createProduct(req dto.CreateProductRequest) (*domain.Product, error) {
	var product *domain.Product
	err := suite.svc.Coordinator.Run(context.Background(), func(txCtx context.Context, uow portssvc.UnitOfWork) error {
		var err error
		product, err = uow.Products().CreateProduct(txCtx, req)
		return err
	})
	return product, err
}

func (suite *ProductServiceTestSuite) TestCreateProduct_CreatesEmptyStockLevel() {
	product, err := suite.createProduct(dto.CreateProductRequest{
		OrganizationID:  suite.organizationID,
		SKU:             "SKU-001",
		Name:            "Laptop",
		MinimumQuantity: 5,
		MaximumQuantity: 50,
		Location:        "A-01",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.ProductActive, product.Status)

	level, err := suite.svc.Inventory.GetStockLevel(context.Background(), product.ProductID)
	suite.Require().NoError(err)
	suite.Equal(int64(0), level.Quantity)
	suite.Equal(int64(0), level.Reserved)
	suite.Equal(int64(5), level.MinimumQuantity)
	suite.Equal("A-01", level.Location)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_DuplicateSKU() {
	_, err := suite.createProduct(dto.CreateProductRequest{
		OrganizationID: suite.organizationID, SKU: "SKU-001", Name: "Laptop",
	})
	suite.Require().NoError(err)

	_, err = suite.createProduct(dto.CreateProductRequest{
		OrganizationID: suite.organizationID, SKU: "SKU-001", Name: "Another laptop",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_MaximumBelowMinimum() {
	_, err := suite.createProduct(dto.CreateProductRequest{
		OrganizationID:  suite.organizationID,
		SKU:             "SKU-001",
		Name:            "Laptop",
		MinimumQuantity: 10,
		MaximumQuantity: 5,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProductServiceTestSuite) TestUpdateProductStatus() {
	product, err := suite.createProduct(dto.CreateProductRequest{
		OrganizationID: suite.organizationID, SKU: "SKU-001", Name: "Laptop",
	})
	suite.Require().NoError(err)

	err = suite.svc.Coordinator.Run(context.Background(), func(txCtx context.Context, uow portssvc.UnitOfWork) error {
		return uow.Products().UpdateProductStatus(txCtx, product.ProductID, domain.ProductDiscontinued)
	})
	suite.Require().NoError(err)

	stored, err := suite.svc.Products.GetProductByID(context.Background(), product.ProductID)
	suite.Require().NoError(err)
	suite.Equal(domain.ProductDiscontinued, stored.Status)
}

func (suite *ProductServiceTestSuite) TestUpdateProductStatus_UnknownStatus() {
	product, err := suite.createProduct(dto.CreateProductRequest{
		OrganizationID: suite.organizationID, SKU: "SKU-001", Name: "Laptop",
	})
	suite.Require().NoError(err)

	err = suite.svc.Coordinator.Run(context.Background(), func(txCtx context.Context, uow portssvc.UnitOfWork) error {
		return uow.Products().UpdateProductStatus(txCtx, product.ProductID, "RETIRED")
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
