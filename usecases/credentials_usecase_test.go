package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/opentransit/editor-backend/mocks"
	"github.com/opentransit/editor-backend/models"
	"github.com/opentransit/editor-backend/repositories"
)

type CredentialsUsecaseTestSuite struct {
	suite.Suite
	repository         *mocks.PrincipalRepository
	transactionFactory *mocks.TransactionFactory
	transaction        *mocks.Transaction
	jwtRepository      *repositories.JwtRepository

	principalId uuid.UUID
	principal   models.Principal
}

func (suite *CredentialsUsecaseTestSuite) SetupTest() {
	suite.repository = new(mocks.PrincipalRepository)
	suite.transaction = new(mocks.Transaction)
	suite.transactionFactory = &mocks.TransactionFactory{TxMock: suite.transaction}
	suite.jwtRepository = repositories.NewJwtRepository([]byte("test signing key"))

	suite.principalId = uuid.MustParse("0ae6fda7-f7b3-4218-9fc3-4efa329432a7")
	suite.principal = models.Principal{
		Id:        suite.principalId,
		Email:     "rider@transit.example",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
}

func (suite *CredentialsUsecaseTestSuite) makeUsecase() *CredentialsUseCase {
	return &CredentialsUseCase{
		transactionFactory:  suite.transactionFactory,
		repository:          suite.repository,
		jwtRepository:       suite.jwtRepository,
		tokenLifetimeMinute: 60,
	}
}

func (suite *CredentialsUsecaseTestSuite) makeToken() string {
	token, err := suite.jwtRepository.EncodePrincipalToken(time.Now().Add(time.Hour), suite.principalId)
	assert.NoError(suite.T(), err)
	return token
}

func (suite *CredentialsUsecaseTestSuite) Test_CredentialsFromToken_nominal() {
	t := suite.T()
	ctx := context.Background()

	// The grant snapshot must be read at repeatable read isolation, so the
	// usecase goes through the snapshot transaction path, never the plain one.
	suite.transactionFactory.On("SnapshotTransaction", ctx, mock.Anything).Return(nil)
	suite.repository.On("GetPrincipalById", ctx, suite.transaction, suite.principalId).
		Return(suite.principal, nil)

	creds, err := suite.makeUsecase().CredentialsFromToken(ctx, suite.makeToken())

	assert.NoError(t, err)
	assert.Equal(t, suite.principalId, creds.Principal.Id)
	assert.Equal(t, suite.principalId, creds.ActorIdentity.PrincipalId)
	assert.Equal(t, "rider@transit.example", creds.ActorIdentity.Email)

	suite.repository.AssertExpectations(t)
	suite.transactionFactory.AssertNotCalled(t, "Transaction", mock.Anything, mock.Anything)
}

func (suite *CredentialsUsecaseTestSuite) Test_CredentialsFromToken_invalid_token() {
	_, err := suite.makeUsecase().CredentialsFromToken(context.Background(), "not a jwt")

	t := suite.T()
	assert.ErrorIs(t, err, models.UnAuthorizedError)
	suite.repository.AssertNotCalled(t, "GetPrincipalById", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CredentialsUsecaseTestSuite) Test_CredentialsFromToken_deleted_principal() {
	ctx := context.Background()

	suite.transactionFactory.On("SnapshotTransaction", ctx, mock.Anything).Return(nil)
	suite.repository.On("GetPrincipalById", ctx, suite.transaction, suite.principalId).
		Return(models.Principal{}, errors.Wrap(models.NotFoundError, "principal not found"))

	_, err := suite.makeUsecase().CredentialsFromToken(ctx, suite.makeToken())

	assert.ErrorIs(suite.T(), err, models.ErrUnknownPrincipal)
}

func (suite *CredentialsUsecaseTestSuite) Test_RefreshToken_nominal() {
	t := suite.T()

	token, expiresAt, err := suite.makeUsecase().RefreshToken(
		context.Background(), suite.principal.IntoCredentials())

	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	decoded, err := suite.jwtRepository.ValidatePrincipalToken(token)
	assert.NoError(t, err)
	assert.Equal(t, suite.principalId, decoded)
}

func (suite *CredentialsUsecaseTestSuite) Test_RefreshToken_without_credentials() {
	_, _, err := suite.makeUsecase().RefreshToken(context.Background(), models.Credentials{})

	assert.ErrorIs(suite.T(), err, models.UnAuthorizedError)
}

func TestCredentialsUsecase(t *testing.T) {
	suite.Run(t, new(CredentialsUsecaseTestSuite))
}
