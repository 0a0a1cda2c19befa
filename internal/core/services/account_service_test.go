package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/erp_core_backend/internal/apperrors"
	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	"github.com/SscSPs/erp_core_backend/internal/core/events"
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_core_backend/internal/core/ports/services"
	"github.com/SscSPs/erp_core_backend/internal/core/services"
	"github.com/SscSPs/erp_core_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	repos          portsrepo.Container
	registry       *events.Registry
	svc            *portssvc.Container
	organizationID string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.repos, suite.registry, suite.svc = newTestServices()
	suite.organizationID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) createAccount(req dto.CreateAccountRequest) (*domain.Account, error) {
	var account *domain.Account
	err := suite.svc.Coordinator.Run(context.Background(), func(txCtx context.Context, uow portssvc.UnitOfWork) error {
		var err error
		account, err = uow.Accounts().CreateAccount(txCtx, req)
		return err
	})
	return account, err
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	account, err := suite.createAccount(dto.CreateAccountRequest{
		OrganizationID: suite.organizationID,
		Code:           "1000",
		Name:           "Cash",
		AccountType:    domain.Asset,
	})

	suite.Require().NoError(err)
	suite.True(account.IsActive)
	suite.True(account.Balance.IsZero())

	trail, err := suite.repos.AuditLog.ListByRecord(context.Background(), "Account", account.AccountID)
	suite.Require().NoError(err)
	suite.Require().Len(trail, 1)
	suite.Equal(domain.OpCreate, trail[0].Operation)
	suite.Nil(trail[0].OldValues)
	suite.NotNil(trail[0].NewValues)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	_, err := suite.createAccount(dto.CreateAccountRequest{
		OrganizationID: suite.organizationID, Code: "1000", Name: "Cash", AccountType: domain.Asset,
	})
	suite.Require().NoError(err)

	_, err = suite.createAccount(dto.CreateAccountRequest{
		OrganizationID: suite.organizationID, Code: "1000", Name: "Cash again", AccountType: domain.Asset,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SameCodeOtherOrganization() {
	_, err := suite.createAccount(dto.CreateAccountRequest{
		OrganizationID: suite.organizationID, Code: "1000", Name: "Cash", AccountType: domain.Asset,
	})
	suite.Require().NoError(err)

	_, err = suite.createAccount(dto.CreateAccountRequest{
		OrganizationID: uuid.NewString(), Code: "1000", Name: "Cash", AccountType: domain.Asset,
	})

	suite.NoError(err)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentFromOtherOrganization() {
	parent, err := suite.createAccount(dto.CreateAccountRequest{
		OrganizationID: uuid.NewString(), Code: "1000", Name: "Cash", AccountType: domain.Asset,
	})
	suite.Require().NoError(err)

	_, err = suite.createAccount(dto.CreateAccountRequest{
		OrganizationID:  suite.organizationID,
		Code:            "1010",
		Name:            "Petty cash",
		AccountType:     domain.Asset,
		ParentAccountID: &parent.AccountID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DetectsStoredCycle() {
	// Plant a corrupt two-node cycle directly in the store.
	now := time.Now().UTC()
	idA, idB := uuid.NewString(), uuid.NewString()
	fields := domain.AuditFields{CreatedAt: now, CreatedBy: "seed", LastUpdatedAt: now, LastUpdatedBy: "seed"}
	suite.Require().NoError(suite.repos.Accounts.SaveAccount(context.Background(), domain.Account{
		AccountID: idA, OrganizationID: suite.organizationID, Code: "9000", Name: "A",
		AccountType: domain.Asset, ParentAccountID: idB, IsActive: true, AuditFields: fields,
	}))
	suite.Require().NoError(suite.repos.Accounts.SaveAccount(context.Background(), domain.Account{
		AccountID: idB, OrganizationID: suite.organizationID, Code: "9001", Name: "B",
		AccountType: domain.Asset, ParentAccountID: idA, IsActive: true, AuditFields: fields,
	}))

	_, err := suite.createAccount(dto.CreateAccountRequest{
		OrganizationID:  suite.organizationID,
		Code:            "9002",
		Name:            "C",
		AccountType:     domain.Asset,
		ParentAccountID: &idA,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountCycle)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount() {
	account, err := suite.createAccount(dto.CreateAccountRequest{
		OrganizationID: suite.organizationID, Code: "1000", Name: "Cash", AccountType: domain.Asset,
	})
	suite.Require().NoError(err)

	err = suite.svc.Coordinator.Run(context.Background(), func(txCtx context.Context, uow portssvc.UnitOfWork) error {
		return uow.Accounts().DeactivateAccount(txCtx, account.AccountID)
	})
	suite.Require().NoError(err)

	stored, err := suite.svc.Accounts.GetAccountByID(context.Background(), account.AccountID)
	suite.Require().NoError(err)
	suite.False(stored.IsActive)

	// Deactivating twice is a validation error, not a silent no-op.
	err = suite.svc.Coordinator.Run(context.Background(), func(txCtx context.Context, uow portssvc.UnitOfWork) error {
		return uow.Accounts().DeactivateAccount(txCtx, account.AccountID)
	})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_OutsideUnitOfWork() {
	_, err := suite.svc.Accounts.CreateAccount(context.Background(), dto.CreateAccountRequest{
		OrganizationID: suite.organizationID, Code: "1000", Name: "Cash", AccountType: domain.Asset,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNoUnitOfWork)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
