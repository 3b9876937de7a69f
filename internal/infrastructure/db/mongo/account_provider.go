package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicdesk/emr-api/internal/core/domain"
)

const accountsCollection = "accounts"

// AccountProvider authenticates against bcrypt-hashed accounts stored in MongoDB.
type AccountProvider struct {
	coll *mongo.Collection
	cost int
}

func NewAccountProvider(db *mongo.Database) *AccountProvider {
	return &AccountProvider{coll: db.Collection(accountsCollection), cost: bcrypt.DefaultCost}
}

type mongoAccount struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

// Authenticate looks the account up by username and verifies the password hash.
// A missing account and a wrong password are indistinguishable to the caller.
func (p *AccountProvider) Authenticate(ctx context.Context, username, password string) (domain.Identity, error) {
	if username == "" || password == "" {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var acc mongoAccount
	if err := p.coll.FindOne(ctx, bson.M{"username": username}).Decode(&acc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Identity{}, domain.ErrInvalidCredentials
		}
		return domain.Identity{}, fmt.Errorf("find account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}

	return acc.identity()
}

func (a mongoAccount) identity() (domain.Identity, error) {
	role, err := domain.ParseRole(a.Role)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("account %s: %w", a.Username, err)
	}
	return domain.NewIdentity(a.Username, role, a.ID.Hex())
}

// Seed inserts accounts with hashed passwords when the collection is empty.
// It returns the number of accounts inserted.
func (p *AccountProvider) Seed(ctx context.Context, accounts []domain.Account) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	n, err := p.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	if n > 0 || len(accounts) == 0 {
		return 0, nil
	}

	now := time.Now().UTC().Unix()
	docs := make([]any, 0, len(accounts))
	for _, a := range accounts {
		doc, err := newMongoAccount(a, p.cost, now)
		if err != nil {
			return 0, err
		}
		docs = append(docs, doc)
	}

	if _, err := p.coll.InsertMany(ctx, docs); err != nil {
		return 0, fmt.Errorf("insert accounts: %w", err)
	}
	return len(docs), nil
}

func newMongoAccount(a domain.Account, cost int, now int64) (mongoAccount, error) {
	if !a.Role.Valid() {
		return mongoAccount{}, fmt.Errorf("seed %s: %w", a.Username, domain.ErrUnknownRole)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), cost)
	if err != nil {
		return mongoAccount{}, fmt.Errorf("hash password for %s: %w", a.Username, err)
	}
	return mongoAccount{
		Username:     a.Username,
		PasswordHash: string(hash),
		Role:         string(a.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// EnsureIndexes makes usernames unique.
func (p *AccountProvider) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := p.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
