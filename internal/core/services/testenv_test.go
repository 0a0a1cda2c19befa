package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	"github.com/SscSPs/erp_core_backend/internal/core/events"
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_core_backend/internal/core/ports/services"
	"github.com/SscSPs/erp_core_backend/internal/core/services"
	"github.com/SscSPs/erp_core_backend/internal/dto"
	"github.com/SscSPs/erp_core_backend/internal/repositories/database/memory"
	"github.com/stretchr/testify/require"
)

// newTestServices wires the full service layer over the in-memory store, so
// suites can exercise real transactional behavior without a database.
func newTestServices() (portsrepo.Container, *events.Registry, *portssvc.Container) {
	repos := memory.NewRepositories(memory.NewStore())
	registry := events.NewRegistry(nil)
	return repos, registry, services.NewContainer(repos, registry, nil)
}

func createTestAccount(t *testing.T, svc *portssvc.Container, organizationID, code string, accountType domain.AccountType) domain.Account {
	t.Helper()
	var account *domain.Account
	err := svc.Coordinator.Run(context.Background(), func(txCtx context.Context, uow portssvc.UnitOfWork) error {
		var err error
		account, err = uow.Accounts().CreateAccount(txCtx, dto.CreateAccountRequest{
			OrganizationID: organizationID,
			Code:           code,
			Name:           "Account " + code,
			AccountType:    accountType,
		})
		return err
	})
	require.NoError(t, err)
	return *account
}

func createTestProduct(t *testing.T, svc *portssvc.Container, organizationID, sku string, minimumQuantity int64) domain.Product {
	t.Helper()
	var product *domain.Product
	err := svc.Coordinator.Run(context.Background(), func(txCtx context.Context, uow portssvc.UnitOfWork) error {
		var err error
		product, err = uow.Products().CreateProduct(txCtx, dto.CreateProductRequest{
			OrganizationID:  organizationID,
			SKU:             sku,
			Name:            "Product " + sku,
			MinimumQuantity: minimumQuantity,
		})
		return err
	})
	require.NoError(t, err)
	return *product
}

func adjustTestStock(t *testing.T, svc *portssvc.Container, productID string, delta int64, reason domain.MovementReason) {
	t.Helper()
	err := svc.Coordinator.Run(context.Background(), func(txCtx context.Context, uow portssvc.UnitOfWork) error {
		_, err := uow.Inventory().Adjust(txCtx, productID, delta, reason, "")
		return err
	})
	require.NoError(t, err)
}
