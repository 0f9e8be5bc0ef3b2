package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/go-otp-signup/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestCollectionName(t *testing.T) {
	assert.Equal(t, CollectionShopkeepers, collectionName(domain.RoleShopkeeper))
	assert.Equal(t, CollectionUsers, collectionName(domain.RoleUser))
	assert.Equal(t, CollectionUsers, collectionName(domain.Role("admin")))
}

func TestAccountDoc_ToDomain(t *testing.T) {
	oid := primitive.NewObjectID()
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	a := accountDoc{
		ID: oid, Name: "Ravi", Email: "r@x.com", Phone: "555", Password: "pw", CreatedAt: created,
	}.toDomain(domain.RoleShopkeeper)

	assert.Equal(t, oid.Hex(), a.AccountID)
	assert.Equal(t, domain.RoleShopkeeper, a.Role)
	assert.Equal(t, "pw", a.Password)
	assert.True(t, a.CreatedAt.Equal(created))
}

func newMockTest(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestInsert_DuplicateEmailIsConflict(t *testing.T) {
	mt := newMockTest(t)
	mt.Run("duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error collection: shopkeepers index: email_1",
		}))

		_, err := NewAccountRepo(mt.DB).Insert(context.Background(), domain.RoleShopkeeper, &domain.Account{Email: "r@x.com"})
		assert.ErrorIs(mt, err, domain.ErrConflict)
	})

	mt.Run("other write error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 121, Message: "Document failed validation",
		}))

		_, err := NewAccountRepo(mt.DB).Insert(context.Background(), domain.RoleUser, &domain.Account{Email: "a@x.com"})
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, domain.ErrConflict)
	})
}

func TestInsert_ReturnsObjectIDHex(t *testing.T) {
	mt := newMockTest(t)
	mt.Run("ok", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		acc := &domain.Account{Email: "a@x.com"}
		id, err := NewAccountRepo(mt.DB).Insert(context.Background(), domain.Role("admin"), acc)
		require.NoError(mt, err)
		_, err = primitive.ObjectIDFromHex(id)
		assert.NoError(mt, err)
		assert.Equal(mt, domain.RoleUser, acc.Role)
	})
}

func TestFindByCredentials_NoMatchIsNotFound(t *testing.T) {
	mt := newMockTest(t)
	mt.Run("empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+"."+CollectionUsers, mtest.FirstBatch))

		_, err := NewAccountRepo(mt.DB).FindByCredentials(context.Background(), domain.RoleUser, "a@x.com", "pw")
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})
}

func TestEnsureIndexes(t *testing.T) {
	mt := newMockTest(t)
	mt.Run("created", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		assert.NoError(mt, NewAccountRepo(mt.DB).EnsureIndexes(context.Background()))
	})

	mt.Run("failure is returned", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 13, Name: "Unauthorized", Message: "not authorized to create index",
		}))
		err := NewAccountRepo(mt.DB).EnsureIndexes(context.Background())
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), CollectionUsers)
	})
}
