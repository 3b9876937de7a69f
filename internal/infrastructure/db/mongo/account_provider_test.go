package mongo

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicdesk/emr-api/internal/core/domain"
)

const accountsNS = "emr.accounts"

func accountDoc(t testing.TB, id primitive.ObjectID, username, password, role string) bson.D {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "username", Value: username},
		{Key: "password_hash", Value: string(hash)},
		{Key: "role", Value: role},
	}
}

func startedCommands(mt *mtest.T) []string {
	var names []string
	for _, ev := range mt.GetAllStartedEvents() {
		names = append(names, ev.CommandName)
	}
	return names
}

func TestAccountProvider_Authenticate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("match returns role and hex id", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, accountsNS, mtest.FirstBatch,
			accountDoc(mt.T, oid, "frontdesk", "password", "frontdesk")))

		id, err := NewAccountProvider(mt.DB).Authenticate(ctx, "frontdesk", "password")
		if err != nil {
			mt.Fatalf("authenticate: %v", err)
		}
		if id.Username != "frontdesk" || id.Role != domain.RoleFrontDesk || id.AccountID != oid.Hex() {
			mt.Fatalf("unexpected identity: %+v", id)
		}
	})

	mt.Run("unknown username", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, accountsNS, mtest.FirstBatch))

		_, err := NewAccountProvider(mt.DB).Authenticate(ctx, "nobody", "password")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			mt.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	mt.Run("wrong password", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, accountsNS, mtest.FirstBatch,
			accountDoc(mt.T, primitive.NewObjectID(), "admin", "password", "admin")))

		_, err := NewAccountProvider(mt.DB).Authenticate(ctx, "admin", "Password")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			mt.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
		if err.Error() != "Invalid username or password" {
			mt.Fatalf("unexpected message: %q", err.Error())
		}
	})

	mt.Run("empty input skips the lookup", func(mt *mtest.T) {
		p := NewAccountProvider(mt.DB)
		for _, pair := range [][2]string{{"", "password"}, {"admin", ""}} {
			if _, err := p.Authenticate(ctx, pair[0], pair[1]); !errors.Is(err, domain.ErrInvalidCredentials) {
				mt.Fatalf("%q/%q: expected ErrInvalidCredentials, got %v", pair[0], pair[1], err)
			}
		}
		if cmds := startedCommands(mt); len(cmds) != 0 {
			mt.Fatalf("expected no commands, got %v", cmds)
		}
	})

	mt.Run("server error is not a credential failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad query",
		}))

		_, err := NewAccountProvider(mt.DB).Authenticate(ctx, "admin", "password")
		if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
			mt.Fatalf("expected a store error, got %v", err)
		}
	})

	mt.Run("stored account with unknown role", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, accountsNS, mtest.FirstBatch,
			accountDoc(mt.T, primitive.NewObjectID(), "janitor", "password", "janitor")))

		_, err := NewAccountProvider(mt.DB).Authenticate(ctx, "janitor", "password")
		if !errors.Is(err, domain.ErrUnknownRole) {
			mt.Fatalf("expected ErrUnknownRole, got %v", err)
		}
	})
}

func TestAccountProvider_Seed(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	accounts := []domain.Account{
		{Username: "admin", Password: "password", Role: domain.RoleAdmin},
		{Username: "doctor", Password: "password", Role: domain.RoleDoctor},
	}

	mt.Run("empty collection is seeded", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, accountsNS, mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		p := NewAccountProvider(mt.DB)
		p.cost = bcrypt.MinCost
		n, err := p.Seed(ctx, accounts)
		if err != nil {
			mt.Fatalf("seed: %v", err)
		}
		if n != len(accounts) {
			mt.Fatalf("expected %d inserted, got %d", len(accounts), n)
		}
		if cmds := startedCommands(mt); len(cmds) != 2 || cmds[1] != "insert" {
			mt.Fatalf("expected count then insert, got %v", cmds)
		}
	})

	mt.Run("non-empty collection is left alone", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, accountsNS, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: 1}, {Key: "n", Value: int64(3)}}))

		p := NewAccountProvider(mt.DB)
		p.cost = bcrypt.MinCost
		n, err := p.Seed(ctx, accounts)
		if err != nil {
			mt.Fatalf("seed: %v", err)
		}
		if n != 0 {
			mt.Fatalf("expected nothing inserted, got %d", n)
		}
		for _, cmd := range startedCommands(mt) {
			if cmd == "insert" {
				mt.Fatalf("insert sent to a non-empty collection")
			}
		}
	})

	mt.Run("unknown role aborts before writing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, accountsNS, mtest.FirstBatch))

		p := NewAccountProvider(mt.DB)
		p.cost = bcrypt.MinCost
		_, err := p.Seed(ctx, []domain.Account{{Username: "x", Password: "y", Role: "janitor"}})
		if !errors.Is(err, domain.ErrUnknownRole) {
			mt.Fatalf("expected ErrUnknownRole, got %v", err)
		}
	})
}

func TestNewMongoAccount_HashesPassword(t *testing.T) {
	acc, err := newMongoAccount(domain.Account{Username: "doctor", Password: "password", Role: domain.RoleDoctor}, bcrypt.MinCost, 42)
	if err != nil {
		t.Fatalf("newMongoAccount: %v", err)
	}
	if acc.PasswordHash == "password" {
		t.Fatalf("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte("password")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
	if acc.Role != "doctor" || acc.CreatedAt != 42 || acc.UpdatedAt != 42 {
		t.Fatalf("unexpected account: %+v", acc)
	}
}

func TestMongoAccount_Identity(t *testing.T) {
	oid := primitive.NewObjectID()
	acc := mongoAccount{ID: oid, Username: "doctor", Role: "Doctor"}

	id, err := acc.identity()
	if err != nil {
		t.Fatalf("identity returned error: %v", err)
	}
	if id.Username != "doctor" || id.Role != domain.RoleDoctor || id.AccountID != oid.Hex() {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestMongoAccount_IdentityRejectsUnknownRole(t *testing.T) {
	acc := mongoAccount{ID: primitive.NewObjectID(), Username: "x", Role: "janitor"}
	if _, err := acc.identity(); !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}
